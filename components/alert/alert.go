// Package alert renders notice banners and the error boundary that falls back
// to one when a descendant component fails to render.
//
// An Alert classifies itself from its Props (kind, icon, close affordance) and
// holds a single piece of state: whether it has been dismissed. Dismissal is
// one-way. The exit transition is delegated to a Motion, which also decides
// when AfterClose runs.
package alert

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/a-h/templ"

	"github.com/TimeAway/blog-design/components/theme"
	"github.com/TimeAway/blog-design/internal/ulid"
)

type Props struct {
	Message     templ.Component
	Description templ.Component
	Type        Kind
	Closable    bool
	// CloseText replaces the close glyph and implies Closable.
	CloseText templ.Component
	// ShowIcon is tri-state: nil means "not specified".
	ShowIcon *bool
	Banner   bool
	Icon     templ.Component

	OnClose    func(CloseEvent)
	AfterClose func()

	// Handlers render an inline script and on* attributes. Pages served with
	// a script-src 'self' policy block them; render with a context from
	// templ.InitializeContext so each script is written once per page.
	OnMouseEnter templ.ComponentScript
	OnMouseLeave templ.ComponentScript
	OnClick      templ.ComponentScript

	Role      string
	Style     templ.SafeCSS
	ClassName string
	PrefixCls string
	// Attrs passes through data-*, aria-* and role attributes only.
	Attrs templ.Attributes
	// CloseAttrs are added to the close button, e.g. hx-post wiring.
	CloseAttrs templ.Attributes
}

// CloseEvent describes a close affordance activation.
type CloseEvent struct {
	AlertID string
	Time    time.Time
	// Request is set when the activation arrived over HTTP.
	Request *http.Request
}

type Alert struct {
	id     string
	props  Props
	motion Motion

	mu        sync.Mutex
	dismissed bool
}

type Option func(*Alert)

func WithID(id string) Option {
	return func(a *Alert) { a.id = id }
}

func WithMotion(m Motion) Option {
	return func(a *Alert) { a.motion = m }
}

// Restored marks an instance whose dismissal already happened in an earlier
// life, e.g. before a restart. It renders nothing and runs no callbacks.
func Restored() Option {
	return func(a *Alert) { a.dismissed = true }
}

func New(props Props, opts ...Option) *Alert {
	a := &Alert{props: props}
	for _, opt := range opts {
		opt(a)
	}
	if a.id == "" {
		a.id = ulid.New()
	}
	if a.motion == nil {
		a.motion = NewCSSMotion("alert-motion")
	}
	if a.dismissed {
		a.motion.Leave(nil)
		a.motion.Finish()
	}
	return a
}

func (a *Alert) ID() string {
	return a.id
}

func (a *Alert) Classification() Classification {
	return Resolve(a.props)
}

// Visible reports whether the alert has not been dismissed.
func (a *Alert) Visible() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.dismissed
}

// Removed reports whether the exit transition has completed.
func (a *Alert) Removed() bool {
	return a.motion.Frame(a.Visible()).Removed
}

// Close dismisses the alert. Only the first call has an effect: it flips the
// state, runs OnClose synchronously and then starts the exit transition.
func (a *Alert) Close(ev CloseEvent) bool {
	a.mu.Lock()
	if a.dismissed {
		a.mu.Unlock()
		return false
	}
	a.dismissed = true
	a.mu.Unlock()

	if ev.AlertID == "" {
		ev.AlertID = a.id
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	if a.props.OnClose != nil {
		a.props.OnClose(ev)
	}
	a.motion.Leave(a.props.AfterClose)
	return true
}

// TransitionEnd reports that the exit transition finished on the client.
func (a *Alert) TransitionEnd() {
	if a.Visible() {
		return
	}
	a.motion.Finish()
}

func (a *Alert) Render(ctx context.Context, w io.Writer) error {
	visible := a.Visible()
	frame := a.motion.Frame(visible)
	if frame.Removed {
		return nil
	}

	cfg := theme.FromContext(ctx)
	prefixCls := cfg.PrefixCls("alert", a.props.PrefixCls)
	cls := Resolve(a.props)

	classes := templ.Classes(
		prefixCls,
		prefixCls+"-"+string(cls.Kind),
		templ.KV(prefixCls+"-with-description", cls.HasDescription),
		templ.KV(prefixCls+"-no-icon", !cls.ShowIcon),
		templ.KV(prefixCls+"-banner", cls.Banner),
		templ.KV(prefixCls+"-closable", cls.Closable),
		templ.KV(prefixCls+"-rtl", cfg.IsRTL()),
		strings.Fields(a.props.ClassName),
		strings.Fields(frame.Class),
	)

	if err := a.renderScripts(ctx, w); err != nil {
		return err
	}

	showValue := "true"
	if !visible {
		showValue = "false"
	}
	if err := writeStrings(w,
		`<div id="alert-`, templ.EscapeString(a.id),
		`" data-alert-id="`, templ.EscapeString(a.id),
		`" data-show="`, showValue,
		`" class="`, templ.EscapeString(classes.String()), `"`,
	); err != nil {
		return err
	}
	if style := joinStyles(string(a.props.Style), frame.Style); style != "" {
		if err := writeStrings(w, ` style="`, templ.EscapeString(style), `"`); err != nil {
			return err
		}
	}
	if err := a.renderHandlers(w); err != nil {
		return err
	}
	if err := writeStrings(w, ` role="`, templ.EscapeString(a.role()), `"`); err != nil {
		return err
	}
	if err := templ.RenderAttributes(ctx, w, dataOrAriaAttrs(a.props.Attrs)); err != nil {
		return err
	}
	if err := writeStrings(w, ">"); err != nil {
		return err
	}

	if cls.ShowIcon {
		if err := a.iconNode(prefixCls, cls).Render(ctx, w); err != nil {
			return err
		}
	}

	if err := renderSpan(ctx, w, prefixCls+"-message", a.props.Message); err != nil {
		return err
	}
	if err := renderSpan(ctx, w, prefixCls+"-description", a.props.Description); err != nil {
		return err
	}

	// the close affordance disappears with the first dismissal
	if cls.Closable && visible {
		if err := a.renderCloseButton(ctx, w, prefixCls); err != nil {
			return err
		}
	}

	return writeStrings(w, "</div>")
}

func (a *Alert) role() string {
	if role, ok := a.props.Attrs["role"].(string); ok && role != "" {
		return role
	}
	if a.props.Role != "" {
		return a.props.Role
	}
	return "alert"
}

func (a *Alert) handlers() []templ.KeyValue[string, templ.ComponentScript] {
	var out []templ.KeyValue[string, templ.ComponentScript]
	for _, h := range []templ.KeyValue[string, templ.ComponentScript]{
		templ.KV("onmouseenter", a.props.OnMouseEnter),
		templ.KV("onmouseleave", a.props.OnMouseLeave),
		templ.KV("onclick", a.props.OnClick),
	} {
		if h.Value.Call != "" {
			out = append(out, h)
		}
	}
	return out
}

func (a *Alert) renderScripts(ctx context.Context, w io.Writer) error {
	handlers := a.handlers()
	if len(handlers) == 0 {
		return nil
	}
	scripts := make([]templ.ComponentScript, len(handlers))
	for i, h := range handlers {
		scripts[i] = h.Value
	}
	return templ.RenderScriptItems(ctx, w, scripts...)
}

func (a *Alert) renderHandlers(w io.Writer) error {
	for _, h := range a.handlers() {
		// Call is already escaped for attribute use
		if err := writeStrings(w, ` `, h.Key, `="`, h.Value.Call, `"`); err != nil {
			return err
		}
	}
	return nil
}

func (a *Alert) iconNode(prefixCls string, cls Classification) templ.Component {
	iconCls := prefixCls + "-icon"
	icon := a.props.Icon
	if icon == nil {
		return cls.Glyph.Component(iconCls)
	}
	if merger, ok := icon.(ClassMerger); ok {
		return merger.WithClasses(MergeClasses(merger.Classes(), iconCls))
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return renderSpan(ctx, w, iconCls, icon)
	})
}

func (a *Alert) renderCloseButton(ctx context.Context, w io.Writer, prefixCls string) error {
	if err := writeStrings(w, `<button type="button" class="`, templ.EscapeString(prefixCls+"-close-icon"), `" tabindex="0"`); err != nil {
		return err
	}
	if len(a.props.CloseAttrs) > 0 {
		if err := templ.RenderAttributes(ctx, w, a.props.CloseAttrs); err != nil {
			return err
		}
	}
	if err := writeStrings(w, ">"); err != nil {
		return err
	}
	if a.props.CloseText != nil {
		if err := renderSpan(ctx, w, prefixCls+"-close-text", a.props.CloseText); err != nil {
			return err
		}
	} else if err := closeGlyph.Component("").Render(ctx, w); err != nil {
		return err
	}
	return writeStrings(w, "</button>")
}

func renderSpan(ctx context.Context, w io.Writer, class string, content templ.Component) error {
	if err := writeStrings(w, `<span class="`, templ.EscapeString(class), `">`); err != nil {
		return err
	}
	if content != nil {
		if err := content.Render(ctx, w); err != nil {
			return err
		}
	}
	return writeStrings(w, "</span>")
}

func dataOrAriaAttrs(attrs templ.Attributes) templ.Attributes {
	out := templ.Attributes{}
	for key, value := range attrs {
		if strings.HasPrefix(key, "data-") || strings.HasPrefix(key, "aria-") {
			out[key] = value
		}
	}
	return out
}

func joinStyles(styles ...string) string {
	var parts []string
	for _, s := range styles {
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ";"))
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "; ")
}
