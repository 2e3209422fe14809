package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/TimeAway/blog-design/components"
	"github.com/TimeAway/blog-design/components/alert"
	"github.com/TimeAway/blog-design/internal/apperror"
	"github.com/TimeAway/blog-design/internal/gallery"
	"github.com/TimeAway/blog-design/internal/middleware"
	"github.com/TimeAway/blog-design/internal/registry"
)

// closedEvent is sent in HX-Trigger after a successful close activation.
const closedEvent = "alert:closed"

var errWidgetUnavailable = errors.New("widget data unavailable")

type Handler struct {
	registry  *registry.Registry
	entries   []gallery.Entry
	banner    *components.Banner
	csrfToken func(context.Context) string
}

func NewHandler(reg *registry.Registry, entries []gallery.Entry, banner *components.Banner, csrfToken func(context.Context) string) *Handler {
	return &Handler{
		registry:  reg,
		entries:   entries,
		banner:    banner,
		csrfToken: csrfToken,
	}
}

func (h *Handler) HandleGallery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	mounted := make([]templ.Component, 0, len(h.entries))
	for _, e := range h.entries {
		props := e.Props()
		props.OnClose = logClose
		props.AfterClose = logRemoved(e.ID)

		a, appErr := h.registry.Mount(ctx, e.ID, props)
		if appErr != nil {
			renderError(w, appErr)
			return
		}
		mounted = append(mounted, a)
	}

	page := withLayout("Alerts", h.csrfToken(ctx), h.banner, galleryPage(mounted, boundaryDemo()))
	renderHTML(w, r, http.StatusOK, page)
}

func (h *Handler) HandleAlert(w http.ResponseWriter, r *http.Request) {
	a, appErr := h.registry.Get(r.PathValue("id"))
	if appErr != nil {
		renderError(w, appErr)
		return
	}
	renderHTML(w, r, http.StatusOK, a)
}

func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	a, appErr := h.registry.Close(r.Context(), r.PathValue("id"), r)
	if appErr != nil {
		renderError(w, appErr)
		return
	}
	w.Header().Set("HX-Trigger", closedEvent)
	renderHTML(w, r, http.StatusOK, a)
}

func (h *Handler) HandleTransitionEnd(w http.ResponseWriter, r *http.Request) {
	if appErr := h.registry.TransitionEnd(r.Context(), r.PathValue("id")); appErr != nil {
		renderError(w, appErr)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func logClose(ev alert.CloseEvent) {
	var requestID string
	if ev.Request != nil {
		requestID = middleware.GetRequestID(ev.Request.Context())
	}
	slog.Info("alert closed", "alert_id", ev.AlertID, "request_id", requestID)
}

func logRemoved(id string) func() {
	return func() {
		slog.Debug("alert exit transition finished", "fixture_id", id)
	}
}

// boundaryDemo wraps a widget that always fails. A fresh boundary per page
// load keeps the demo failing visibly on every render.
func boundaryDemo() templ.Component {
	widget := alert.Trace("BrokenWidget", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return errWidgetUnavailable
	}))
	return alert.NewErrorBoundary(alert.BoundaryProps{
		OnCatch: func(f alert.Failure) {
			slog.Warn("render failure caught", "error", f.Err, "component_stack", f.Stack)
		},
	}, alert.Trace("Gallery", widget))
}

func galleryPage(alerts []templ.Component, demo templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Alerts</h1><section class="gallery">`); err != nil {
			return err
		}
		for _, a := range alerts {
			if err := a.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</section><section class="boundary-demo"><h2>Error boundary</h2>`); err != nil {
			return err
		}
		if err := demo.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

func renderHTML(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	buf := templ.GetBuffer()
	defer templ.ReleaseBuffer(buf)

	// one script registry per response
	ctx := templ.InitializeContext(r.Context())
	if err := component.Render(ctx, buf); err != nil {
		renderError(w, apperror.Internal("Failed to render page", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func renderError(w http.ResponseWriter, appErr *apperror.Error) {
	status := apperror.HTTPStatus(appErr)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", appErr)
		http.Error(w, "internal server error", status)
		return
	}
	http.Error(w, appErr.Message, status)
}

func withLayout(title, csrfToken string, banner *components.Banner, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return components.Layout(title, csrfToken, banner).Render(
			templ.WithChildren(ctx, content), w,
		)
	})
}
