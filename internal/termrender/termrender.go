// Package termrender prints alerts as styled terminal banners.
package termrender

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/TimeAway/blog-design/components/alert"
	"github.com/TimeAway/blog-design/internal/gallery"
)

// Palette maps alert kinds to ANSI 256 colors.
type Palette struct {
	Kinds       map[alert.Kind]lipgloss.Color
	Description lipgloss.Color
	Close       lipgloss.Color
}

var DefaultPalette = Palette{
	Kinds: map[alert.Kind]lipgloss.Color{
		alert.KindSuccess: lipgloss.Color("114"), // green
		alert.KindInfo:    lipgloss.Color("75"),  // blue
		alert.KindWarning: lipgloss.Color("220"), // amber
		alert.KindError:   lipgloss.Color("196"), // red
	},
	Description: lipgloss.Color("245"),
	Close:       lipgloss.Color("241"),
}

var glyphRunes = map[string]string{
	"check-circle":       "✔",
	"info-circle":        "ℹ",
	"exclamation-circle": "⚠",
	"close-circle":       "✖",
}

type Renderer struct {
	lip     *lipgloss.Renderer
	palette Palette
	width   int
}

// New creates a renderer writing with the given color profile. Use
// termenv.Ascii for uncolored output.
func New(w io.Writer, profile termenv.Profile, width int) *Renderer {
	lip := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	lip.SetColorProfile(profile)
	return &Renderer{lip: lip, palette: DefaultPalette, width: width}
}

// Render formats one fixture. Markdown content is printed as its source.
func (r *Renderer) Render(e gallery.Entry) string {
	cls := alert.Resolve(e.Props())
	color, ok := r.palette.Kinds[cls.Kind]
	if !ok {
		color = r.palette.Description
	}

	var head strings.Builder
	if cls.ShowIcon {
		if glyph, ok := glyphRunes[cls.Glyph.Name]; ok {
			head.WriteString(r.lip.NewStyle().Foreground(color).Render(glyph))
			head.WriteString(" ")
		}
	}
	head.WriteString(r.lip.NewStyle().Bold(true).Render(e.Message))
	if cls.Closable {
		closeLabel := "×"
		if e.CloseText != "" {
			closeLabel = e.CloseText
		}
		head.WriteString("  ")
		head.WriteString(r.lip.NewStyle().Foreground(r.palette.Close).Render("[" + closeLabel + "]"))
	}

	lines := []string{head.String()}
	if e.Description != "" {
		desc := r.lip.NewStyle().Foreground(r.palette.Description)
		if r.width > 4 {
			desc = desc.Width(r.width - 4)
		}
		lines = append(lines, desc.Render(strings.TrimSpace(e.Description)))
	}
	body := strings.Join(lines, "\n")

	box := r.lip.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(color).
		PaddingLeft(1)
	if cls.Banner {
		box = box.BorderStyle(lipgloss.NormalBorder()).BorderTop(true).BorderBottom(true).BorderRight(true)
	}
	return box.Render(body)
}

// RenderAll writes every entry separated by a blank line.
func (r *Renderer) RenderAll(w io.Writer, entries []gallery.Entry) error {
	for i, e := range entries {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, r.Render(e)+"\n"); err != nil {
			return err
		}
	}
	return nil
}
