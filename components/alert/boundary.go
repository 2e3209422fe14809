package alert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/a-h/templ"
)

// Failure is the state captured by a boundary when a descendant fails.
type Failure struct {
	Err   error
	Stack string
}

type FailureInfo struct {
	// ComponentStack lists the traced components the failure passed through,
	// or the goroutine stack when the failure was a panic.
	ComponentStack string
}

// Catcher is a component that intercepts render failures of its children.
type Catcher interface {
	templ.Component
	CatchRenderFailure(err error, info FailureInfo)
	// Failure returns nil until a failure has been caught.
	Failure() *Failure
}

type BoundaryProps struct {
	// Message and Description override the fallback text when non-nil.
	// Text("") counts as an explicit override.
	Message     templ.Component
	Description templ.Component
	// OnCatch is called once, after the failure has been stored.
	OnCatch func(Failure)
}

// ErrorBoundary renders its children until one of them fails, then renders an
// error alert for the rest of its life. A new boundary is the only reset.
type ErrorBoundary struct {
	props    BoundaryProps
	children templ.Component

	mu       sync.Mutex
	failure  *Failure
	fallback *Alert
}

var _ Catcher = (*ErrorBoundary)(nil)

// NewErrorBoundary wraps children. With nil children the boundary renders the
// children carried in the render context (templ.WithChildren).
func NewErrorBoundary(props BoundaryProps, children templ.Component) *ErrorBoundary {
	return &ErrorBoundary{props: props, children: children}
}

func (b *ErrorBoundary) Failure() *Failure {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failure == nil {
		return nil
	}
	f := *b.failure
	return &f
}

// CatchRenderFailure stores the first failure. Later calls are ignored.
func (b *ErrorBoundary) CatchRenderFailure(err error, info FailureInfo) {
	b.mu.Lock()
	if b.failure != nil {
		b.mu.Unlock()
		return
	}
	b.failure = &Failure{Err: err, Stack: info.ComponentStack}
	b.fallback = b.fallbackAlert(*b.failure)
	f := *b.failure
	b.mu.Unlock()

	if b.props.OnCatch != nil {
		b.props.OnCatch(f)
	}
}

func (b *ErrorBoundary) caught() *Alert {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fallback
}

func (b *ErrorBoundary) Render(ctx context.Context, w io.Writer) error {
	if fallback := b.caught(); fallback != nil {
		return fallback.Render(ctx, w)
	}

	children := b.children
	if children == nil {
		children = templ.GetChildren(ctx)
		ctx = templ.ClearChildren(ctx)
	}

	buf := templ.GetBuffer()
	defer templ.ReleaseBuffer(buf)

	if info, err := renderGuarded(ctx, buf, children); err != nil {
		b.CatchRenderFailure(err, info)
		return b.caught().Render(ctx, w)
	}

	_, err := buf.WriteTo(w)
	return err
}

// fallbackAlert is built once per caught failure so later renders repeat the
// same instance ID.
func (b *ErrorBoundary) fallbackAlert(f Failure) *Alert {
	message := b.props.Message
	if message == nil {
		var text string
		if f.Err != nil {
			text = f.Err.Error()
		}
		message = Text(text)
	}
	description := b.props.Description
	if description == nil {
		description = Text(f.Stack)
	}
	return New(Props{
		Type:        KindError,
		Message:     message,
		Description: Pre(description),
	}, WithMotion(&NoMotion{}))
}

func renderGuarded(ctx context.Context, w io.Writer, c templ.Component) (info FailureInfo, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &PanicError{Value: rec}
			info = FailureInfo{ComponentStack: string(debug.Stack())}
		}
	}()

	if err = c.Render(ctx, w); err != nil {
		var traced *TracedError
		if errors.As(err, &traced) {
			info.ComponentStack = traced.ComponentStack()
		}
		return info, err
	}
	return FailureInfo{}, nil
}

// PanicError is a panic recovered while rendering.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprint(e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

type traceKey struct{}

// Trace names c in the component stack reported when a descendant fails.
func Trace(name string, c templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		parent, _ := ctx.Value(traceKey{}).([]string)
		frames := make([]string, len(parent)+1)
		copy(frames, parent)
		frames[len(parent)] = name
		ctx = context.WithValue(ctx, traceKey{}, frames)

		err := c.Render(ctx, w)
		if err == nil {
			return nil
		}
		var traced *TracedError
		if errors.As(err, &traced) {
			return err
		}
		return &TracedError{Err: err, Frames: frames}
	})
}

// TracedError carries the component frames, outermost first, that were open
// when Err was returned.
type TracedError struct {
	Err    error
	Frames []string
}

func (e *TracedError) Error() string {
	return e.Err.Error()
}

func (e *TracedError) Unwrap() error {
	return e.Err
}

// ComponentStack lists the frames innermost first.
func (e *TracedError) ComponentStack() string {
	var sb strings.Builder
	for i := len(e.Frames) - 1; i >= 0; i-- {
		sb.WriteString("\n    in ")
		sb.WriteString(e.Frames[i])
	}
	return sb.String()
}
