package main

import (
	"context"
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/TimeAway/blog-design/components/alert"
	"github.com/TimeAway/blog-design/components/theme"
	"github.com/TimeAway/blog-design/internal/gallery"
	"github.com/TimeAway/blog-design/internal/termrender"
)

type renderOptions struct {
	fixtures string
	format   string
	dir      string
	prefix   string
	width    int
	noColor  bool

	entry gallery.Entry
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render alerts to stdout as HTML or ANSI text",
		Long: `Render the alerts in a fixtures file, the built-in fixtures, or a single
alert described by flags.

Examples:
  blogdesign render
  blogdesign render --format ansi --fixtures alerts.yaml
  blogdesign render --type error --message "Publishing failed" --closable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := opts.entries(cmd.Flags())
			if err != nil {
				return err
			}
			return opts.run(cmd.Context(), cmd.OutOrStdout(), entries)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.fixtures, "fixtures", "", "YAML fixtures file (default built-in fixtures)")
	f.StringVarP(&opts.format, "format", "f", "html", "output format (html, ansi)")
	f.StringVar(&opts.dir, "dir", "ltr", "layout direction (ltr, rtl)")
	f.StringVar(&opts.prefix, "prefix", theme.DefaultPrefix, "class name prefix")
	f.IntVar(&opts.width, "width", 80, "wrap width for ansi output")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colors in ansi output")
	addEntryFlags(f, &opts.entry)
	return cmd
}

// addEntryFlags binds the flags that describe a single alert.
func addEntryFlags(f *pflag.FlagSet, e *gallery.Entry) {
	f.StringVar(&e.Type, "type", "", "alert type (success, info, warning, error)")
	f.StringVar(&e.Message, "message", "", "alert message; renders a single alert instead of fixtures")
	f.StringVar(&e.Description, "description", "", "alert description")
	f.BoolVar(&e.Markdown, "markdown", false, "render message and description as markdown")
	f.BoolVar(&e.Closable, "closable", false, "show the close affordance")
	f.StringVar(&e.CloseText, "close-text", "", "close affordance text (implies --closable)")
	f.BoolVar(&e.Banner, "banner", false, "render as a banner")
	f.Bool("show-icon", false, "show the type icon (default: only for banners)")
	f.StringVar(&e.ClassName, "class", "", "extra class names")
}

func (o *renderOptions) entries(f *pflag.FlagSet) ([]gallery.Entry, error) {
	if o.entry.Message == "" {
		if f.Changed("type") || f.Changed("description") || f.Changed("close-text") {
			return nil, fmt.Errorf("--message is required when describing an alert with flags")
		}
		if o.fixtures == "" {
			return gallery.Default(), nil
		}
		return gallery.Load(o.fixtures)
	}

	e := o.entry
	if f.Changed("show-icon") {
		show, err := f.GetBool("show-icon")
		if err != nil {
			return nil, err
		}
		e.ShowIcon = &show
	}
	entries := []gallery.Entry{e}
	if err := gallery.Validate(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (o *renderOptions) run(ctx context.Context, w io.Writer, entries []gallery.Entry) error {
	switch o.format {
	case "html":
		return o.renderHTML(ctx, w, entries)
	case "ansi":
		profile := termenv.EnvColorProfile()
		if o.noColor {
			profile = termenv.Ascii
		}
		return termrender.New(w, profile, o.width).RenderAll(w, entries)
	default:
		return fmt.Errorf("unsupported format: %s (supported: html, ansi)", o.format)
	}
}

func (o *renderOptions) renderHTML(ctx context.Context, w io.Writer, entries []gallery.Entry) error {
	var dir theme.Direction
	switch theme.Direction(o.dir) {
	case theme.LTR, theme.RTL:
		dir = theme.Direction(o.dir)
	default:
		return fmt.Errorf("unsupported direction: %s (supported: ltr, rtl)", o.dir)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = theme.WithConfig(ctx, theme.Config{Prefix: o.prefix, Direction: dir})

	for _, e := range entries {
		var opts []alert.Option
		if e.ID != "" {
			opts = append(opts, alert.WithID(e.ID))
		}
		if err := alert.New(e.Props(), opts...).Render(ctx, w); err != nil {
			return fmt.Errorf("rendering alert: %w", err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
