package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/TimeAway/blog-design/components/alert"
	"github.com/TimeAway/blog-design/components/theme"
)

// Banner is a site-wide notice shown above the page content.
type Banner struct {
	Level   string
	Message string
}

// Layout renders the page shell around the children in ctx.
func Layout(title, csrfToken string, banner *Banner) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		cfg := theme.FromContext(ctx)
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en" dir="`+templ.EscapeString(string(cfg.Direction))+`"><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"><meta name="csrf-token" content="`+templ.EscapeString(csrfToken)+`"><title>`+templ.EscapeString(title)+`</title><link rel="stylesheet" href="/static/alert.css"><script src="/static/motion.js" defer></script></head><body>`); err != nil {
			return err
		}
		if banner != nil && banner.Message != "" {
			notice := alert.New(alert.Props{
				Type:    bannerKind(banner.Level),
				Message: alert.Text(banner.Message),
				Banner:  true,
			})
			if err := notice.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<main>`); err != nil {
			return err
		}
		if err := templ.GetChildren(ctx).Render(templ.ClearChildren(ctx), w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}
