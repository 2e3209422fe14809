// Package gallery loads alert fixtures from YAML. The preview server mounts
// them and the render command prints them.
package gallery

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/a-h/templ"
	"gopkg.in/yaml.v3"

	"github.com/TimeAway/blog-design/components/alert"
	"github.com/TimeAway/blog-design/internal/apperror"
)

//go:embed default.yaml
var defaultFixtures []byte

type Entry struct {
	ID          string `yaml:"id"`
	Type        string `yaml:"type"`
	Message     string `yaml:"message"`
	Description string `yaml:"description"`
	// Markdown renders message and description as markdown.
	Markdown  bool   `yaml:"markdown"`
	Closable  bool   `yaml:"closable"`
	CloseText string `yaml:"close_text"`
	ShowIcon  *bool  `yaml:"show_icon"`
	Banner    bool   `yaml:"banner"`
	ClassName string `yaml:"class_name"`
	PrefixCls string `yaml:"prefix_cls"`
	Role      string `yaml:"role"`
}

type file struct {
	Alerts []Entry `yaml:"alerts"`
}

func Default() []Entry {
	entries, err := Parse(defaultFixtures)
	if err != nil {
		panic(fmt.Sprintf("embedded fixtures are invalid: %v", err))
	}
	return entries
}

func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures: %w", err)
	}
	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing fixtures %s: %w", path, err)
	}
	return entries, nil
}

func Parse(data []byte) ([]Entry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	if err := Validate(f.Alerts); err != nil {
		return nil, err
	}
	return f.Alerts, nil
}

// Validate reports every problem in entries as one ValidationErrors.
func Validate(entries []Entry) error {
	ve := &apperror.ValidationErrors{}
	seen := make(map[string]bool)
	for i, e := range entries {
		field := fmt.Sprintf("alerts[%d]", i)
		if e.Message == "" {
			ve.Add(field+".message", "message is required")
		}
		if e.Type != "" && !alert.Kind(e.Type).Valid() {
			ve.Add(field+".type", fmt.Sprintf("unknown alert type %q", e.Type))
		}
		if e.ID != "" {
			if seen[e.ID] {
				ve.Add(field+".id", fmt.Sprintf("duplicate id %q", e.ID))
			}
			seen[e.ID] = true
		}
	}
	return ve.Err()
}

func (e Entry) content(s string) templ.Component {
	if e.Markdown {
		return alert.Markdown(s)
	}
	return alert.Text(s)
}

// Props converts the entry into alert props.
func (e Entry) Props() alert.Props {
	props := alert.Props{
		Type:      alert.Kind(e.Type),
		Message:   e.content(e.Message),
		Closable:  e.Closable,
		ShowIcon:  e.ShowIcon,
		Banner:    e.Banner,
		ClassName: e.ClassName,
		PrefixCls: e.PrefixCls,
		Role:      e.Role,
	}
	if e.Description != "" {
		props.Description = e.content(e.Description)
	}
	if e.CloseText != "" {
		props.CloseText = alert.Text(e.CloseText)
	}
	return props
}
