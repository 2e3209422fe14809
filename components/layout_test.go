package components

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/TimeAway/blog-design/components/alert"
	"github.com/TimeAway/blog-design/components/theme"
)

func renderLayout(t *testing.T, ctx context.Context, banner *Banner) string {
	t.Helper()
	var buf bytes.Buffer
	ctx = templ.WithChildren(ctx, alert.Text("page body"))
	if err := Layout("Alerts", "tok<en>", banner).Render(ctx, &buf); err != nil {
		t.Fatalf("rendering layout: %v", err)
	}
	return buf.String()
}

func TestLayoutShell(t *testing.T) {
	out := renderLayout(t, context.Background(), nil)

	for _, want := range []string{
		`<html lang="en" dir="ltr">`,
		`<meta name="csrf-token" content="tok&lt;en&gt;">`,
		`<title>Alerts</title>`,
		`<link rel="stylesheet" href="/static/alert.css">`,
		`<main>page body</main>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected layout to contain %q", want)
		}
	}
	if strings.Contains(out, "ant-alert-banner") {
		t.Error("expected no banner without a message")
	}
}

func TestLayoutDirection(t *testing.T) {
	ctx := theme.WithConfig(context.Background(), theme.Config{Prefix: "ant", Direction: theme.RTL})

	out := renderLayout(t, ctx, &Banner{Level: "error", Message: "Read-only"})

	if !strings.Contains(out, `dir="rtl"`) {
		t.Error("expected rtl document direction")
	}
	if !strings.Contains(out, "ant-alert-rtl") {
		t.Error("expected banner to pick up rtl direction")
	}
}

func TestLayoutBannerKind(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{"error", "ant-alert-error"},
		{"success", "ant-alert-success"},
		{"info", "ant-alert-info"},
		{"warning", "ant-alert-warning"},
		{"unknown", "ant-alert-warning"},
		{"", "ant-alert-warning"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			out := renderLayout(t, context.Background(), &Banner{Level: tt.level, Message: "Notice"})
			if !strings.Contains(out, tt.want) {
				t.Errorf("expected banner class %q", tt.want)
			}
			if !strings.Contains(out, "ant-alert-banner") {
				t.Error("expected banner modifier")
			}
		})
	}
}
