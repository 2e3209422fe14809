package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRenderDefaultFixturesHTML(t *testing.T) {
	out, err := runRoot(t, "render")
	require.NoError(t, err)

	assert.Contains(t, out, `data-alert-id="disk-space"`)
	assert.Contains(t, out, `class="ant-alert ant-alert-success`)
	assert.Equal(t, 5, strings.Count(out, "data-alert-id="))
}

func TestRenderSingleAlertFromFlags(t *testing.T) {
	out, err := runRoot(t, "render",
		"--type", "error",
		"--message", "Publishing failed",
		"--close-text", "Got it",
		"--dir", "rtl",
		"--prefix", "bd",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "bd-alert-error")
	assert.Contains(t, out, "bd-alert-closable")
	assert.Contains(t, out, "bd-alert-rtl")
	assert.Contains(t, out, `<span class="bd-alert-close-text">Got it</span>`)
	assert.NotContains(t, out, "bd-alert-icon")
}

func TestRenderShowIconFlag(t *testing.T) {
	out, err := runRoot(t, "render", "--message", "Saved", "--show-icon")
	require.NoError(t, err)
	assert.Contains(t, out, "ant-alert-icon")

	out, err = runRoot(t, "render", "--message", "Maintenance", "--banner", "--show-icon=false")
	require.NoError(t, err)
	assert.Contains(t, out, "ant-alert-banner")
	assert.NotContains(t, out, "ant-alert-icon")
}

func TestRenderANSI(t *testing.T) {
	out, err := runRoot(t, "render", "--format", "ansi", "--no-color", "--message", "Low disk space", "--type", "warning", "--closable")
	require.NoError(t, err)

	assert.Contains(t, out, "Low disk space")
	assert.Contains(t, out, "[×]")
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderFixturesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("alerts:\n  - id: one\n    type: info\n    message: From file\n"), 0600))

	out, err := runRoot(t, "render", "--fixtures", path)
	require.NoError(t, err)

	assert.Contains(t, out, `data-alert-id="one"`)
	assert.Contains(t, out, "From file")
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown format", []string{"render", "--format", "pdf"}, "unsupported format"},
		{"unknown direction", []string{"render", "--dir", "up"}, "unsupported direction"},
		{"unknown type", []string{"render", "--message", "x", "--type", "fatal"}, "unknown alert type"},
		{"flags without message", []string{"render", "--type", "info"}, "--message is required"},
		{"missing fixtures", []string{"render", "--fixtures", "/does/not/exist.yaml"}, "reading fixtures"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runRoot(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLogLevel("debug").String())
	assert.Equal(t, "WARN", parseLogLevel("warn").String())
	assert.Equal(t, "INFO", parseLogLevel("bogus").String())
}
