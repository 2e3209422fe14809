// Package registry tracks the alert instances mounted by the preview server
// and routes close and transition-end activations to them.
package registry

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/a-h/templ"

	"github.com/TimeAway/blog-design/components/alert"
	"github.com/TimeAway/blog-design/internal/apperror"
	"github.com/TimeAway/blog-design/internal/store"
	"github.com/TimeAway/blog-design/internal/ulid"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// CloseURL returns the path the close button posts to.
func CloseURL(id string) string {
	return "/alerts/" + id + "/close"
}

type Registry struct {
	store store.Store

	mu     sync.Mutex
	alerts map[string]*alert.Alert
}

func New(s store.Store) *Registry {
	if s == nil {
		s = store.NewMemoryStore()
	}
	return &Registry{
		store:  s,
		alerts: make(map[string]*alert.Alert),
	}
}

// Mount returns the alert mounted under id, creating it from props when it
// is not mounted yet. An empty id mounts a fresh instance. An instance the
// store already records as dismissed comes back dismissed.
func (r *Registry) Mount(ctx context.Context, id string, props alert.Props) (*alert.Alert, *apperror.Error) {
	if id == "" {
		id = ulid.New()
	}
	if !idPattern.MatchString(id) {
		return nil, apperror.Validation("id", "alert id must be 1-64 letters, digits, '-' or '_'")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.alerts[id]; ok {
		return a, nil
	}

	kind := alert.Resolve(props).Kind
	inst, err := r.store.Create(ctx, id, string(kind))
	if err != nil {
		return nil, apperror.Internal("Failed to mount alert", err)
	}

	closeAttrs := templ.Attributes{"data-close-url": CloseURL(id)}
	maps.Copy(closeAttrs, props.CloseAttrs)
	props.CloseAttrs = closeAttrs

	opts := []alert.Option{alert.WithID(id)}
	if inst.Dismissed() {
		opts = append(opts, alert.Restored())
	}
	a := alert.New(props, opts...)
	r.alerts[id] = a

	slog.Debug("alert mounted", "alert_id", id, "kind", kind, "restored", inst.Dismissed())
	return a, nil
}

func (r *Registry) Get(id string) (*alert.Alert, *apperror.Error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.alerts[id]
	if !ok {
		return nil, apperror.NotFound("alert", id)
	}
	return a, nil
}

// Close handles a close affordance activation. The store decides which
// activation wins, so OnClose runs once even when requests race.
func (r *Registry) Close(ctx context.Context, id string, req *http.Request) (*alert.Alert, *apperror.Error) {
	a, appErr := r.Get(id)
	if appErr != nil {
		return nil, appErr
	}

	now := time.Now()
	first, err := r.store.MarkDismissed(ctx, id, now)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("alert", id)
		}
		return nil, apperror.Internal("Failed to record dismissal", err)
	}
	if !first {
		slog.Debug("alert already dismissed", "alert_id", id)
		return a, nil
	}

	a.Close(alert.CloseEvent{AlertID: id, Time: now, Request: req})
	slog.Debug("alert dismissed", "alert_id", id)
	return a, nil
}

// TransitionEnd finishes the exit transition of a dismissed alert.
func (r *Registry) TransitionEnd(ctx context.Context, id string) *apperror.Error {
	a, appErr := r.Get(id)
	if appErr != nil {
		return appErr
	}
	if a.Visible() {
		return apperror.Conflict("alert has not been dismissed")
	}

	a.TransitionEnd()
	if _, err := r.store.MarkLeft(ctx, id, time.Now()); err != nil {
		return apperror.Internal("Failed to record transition end", err)
	}
	slog.Debug("alert removed", "alert_id", id)
	return nil
}
