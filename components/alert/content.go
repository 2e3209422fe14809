package alert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Text renders s as escaped text. Text("") is an explicit empty value, which
// differs from a nil component wherever a default would otherwise apply.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown renders src as HTML. Raw HTML in src is dropped by goldmark's
// default renderer.
func Markdown(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(src), &buf); err != nil {
			return fmt.Errorf("converting markdown: %w", err)
		}
		_, err := w.Write(bytes.TrimRight(buf.Bytes(), "\n"))
		return err
	})
}

// Pre wraps c in a preformatted block.
func Pre(c templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<pre>"); err != nil {
			return err
		}
		if c != nil {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</pre>")
		return err
	})
}

// ClassMerger is implemented by custom icons that can be re-rendered with
// extra classes instead of being wrapped.
type ClassMerger interface {
	templ.Component
	Classes() string
	WithClasses(classes string) templ.Component
}

// MergeClasses appends added to existing. Existing classes keep their order
// and duplicates are dropped.
func MergeClasses(existing string, added ...string) string {
	var classes []any
	for _, name := range strings.Fields(existing) {
		classes = append(classes, name)
	}
	for _, a := range added {
		for _, name := range strings.Fields(a) {
			classes = append(classes, name)
		}
	}
	return templ.Classes(classes...).String()
}

// Element is a single HTML element usable as a custom icon. Its classes are
// merged rather than replaced when the alert decorates it.
type Element struct {
	Tag      string
	Class    string
	Attrs    templ.Attributes
	Children templ.Component
}

func (e Element) Classes() string {
	return e.Class
}

func (e Element) WithClasses(classes string) templ.Component {
	e.Class = classes
	return e
}

var tagName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

// Render writes the element. A Tag that is not a plain element name renders
// as a span.
func (e Element) Render(ctx context.Context, w io.Writer) error {
	tag := e.Tag
	if !tagName.MatchString(tag) {
		tag = "span"
	}
	if err := writeStrings(w, "<", tag); err != nil {
		return err
	}
	if e.Class != "" {
		if err := writeStrings(w, ` class="`, templ.EscapeString(e.Class), `"`); err != nil {
			return err
		}
	}
	if len(e.Attrs) > 0 {
		if err := templ.RenderAttributes(ctx, w, e.Attrs); err != nil {
			return err
		}
	}
	if err := writeStrings(w, ">"); err != nil {
		return err
	}
	if e.Children != nil {
		if err := e.Children.Render(ctx, w); err != nil {
			return err
		}
	}
	return writeStrings(w, "</", tag, ">")
}
