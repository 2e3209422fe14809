package alert

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

type GlyphTheme string

const (
	Filled   GlyphTheme = "filled"
	Outlined GlyphTheme = "outlined"
)

// Glyph identifies a built-in icon. The zero value renders nothing.
type Glyph struct {
	Name  string
	Theme GlyphTheme
}

func (g Glyph) IsZero() bool {
	return g.Name == ""
}

var filledGlyphs = map[Kind]Glyph{
	KindSuccess: {Name: "check-circle", Theme: Filled},
	KindInfo:    {Name: "info-circle", Theme: Filled},
	KindError:   {Name: "close-circle", Theme: Filled},
	KindWarning: {Name: "exclamation-circle", Theme: Filled},
}

var outlinedGlyphs = map[Kind]Glyph{
	KindSuccess: {Name: "check-circle", Theme: Outlined},
	KindInfo:    {Name: "info-circle", Theme: Outlined},
	KindError:   {Name: "close-circle", Theme: Outlined},
	KindWarning: {Name: "exclamation-circle", Theme: Outlined},
}

var closeGlyph = Glyph{Name: "close", Theme: Outlined}

// marks drawn inside the circle, keyed by glyph name
var glyphMarks = map[string]string{
	"check-circle":       `<path d="M5 8.2l2 2 4-4.4" fill="none" stroke-width="1.4" stroke-linecap="round" stroke-linejoin="round"/>`,
	"info-circle":        `<path d="M8 7v4.2" fill="none" stroke-width="1.4" stroke-linecap="round"/><circle cx="8" cy="4.9" r="0.8"/>`,
	"close-circle":       `<path d="M5.6 5.6l4.8 4.8M10.4 5.6l-4.8 4.8" fill="none" stroke-width="1.4" stroke-linecap="round"/>`,
	"exclamation-circle": `<path d="M8 4.4v4.4" fill="none" stroke-width="1.4" stroke-linecap="round"/><circle cx="8" cy="11.1" r="0.8"/>`,
	"close":              `<path d="M3.5 3.5l9 9M12.5 3.5l-9 9" fill="none" stroke-width="1.4" stroke-linecap="round"/>`,
}

func (g Glyph) svg() string {
	mark := glyphMarks[g.Name]
	if g.Name == "close" {
		return `<svg viewBox="0 0 16 16" width="1em" height="1em" fill="currentColor" stroke="currentColor" aria-hidden="true" focusable="false">` + mark + `</svg>`
	}
	circle := `<circle cx="8" cy="8" r="7" fill="none" stroke-width="1.2"/>`
	if g.Theme == Filled {
		// filled glyphs knock the mark out of a solid disc
		circle = `<circle cx="8" cy="8" r="7.5" stroke="none"/>`
		mark = `<g stroke="#fff" fill="#fff">` + mark + `</g>`
	}
	return `<svg viewBox="0 0 16 16" width="1em" height="1em" fill="currentColor" stroke="currentColor" aria-hidden="true" focusable="false">` + circle + mark + `</svg>`
}

// Component renders the glyph as an icon span carrying class.
func (g Glyph) Component(class string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if g.IsZero() {
			return nil
		}
		classes := templ.Classes("anticon", "anticon-"+g.Name, templ.KV(class, class != "")).String()
		return writeStrings(w,
			`<span role="img" aria-label="`, templ.EscapeString(g.Name),
			`" class="`, templ.EscapeString(classes), `">`,
			g.svg(),
			`</span>`,
		)
	})
}

func writeStrings(w io.Writer, ss ...string) error {
	for _, s := range ss {
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}
	return nil
}
