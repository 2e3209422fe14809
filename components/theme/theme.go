// Package theme carries the ambient configuration that components read while
// rendering: the class-name prefix and the layout direction.
package theme

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

const DefaultPrefix = "ant"

type Config struct {
	Prefix    string
	Direction Direction
}

func Default() Config {
	return Config{Prefix: DefaultPrefix, Direction: LTR}
}

// PrefixCls returns custom when set, otherwise "<prefix>-<suffix>".
func (c Config) PrefixCls(suffix, custom string) string {
	if custom != "" {
		return custom
	}
	prefix := c.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if suffix == "" {
		return prefix
	}
	return prefix + "-" + suffix
}

func (c Config) IsRTL() bool {
	return c.Direction == RTL
}

type contextKey string

const configContextKey contextKey = "theme_config"

func WithConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

// FromContext returns the config set by WithConfig, or Default.
func FromContext(ctx context.Context) Config {
	if cfg, ok := ctx.Value(configContextKey).(Config); ok {
		return cfg
	}
	return Default()
}

var rtlBases = map[string]bool{
	"ar":  true,
	"he":  true,
	"fa":  true,
	"ur":  true,
	"ps":  true,
	"sd":  true,
	"yi":  true,
	"dv":  true,
	"ckb": true,
}

// DirectionFromAcceptLanguage picks the layout direction of the most preferred
// language in an Accept-Language header. Unparseable headers fall back to LTR.
func DirectionFromAcceptLanguage(header string) Direction {
	if strings.TrimSpace(header) == "" {
		return LTR
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return LTR
	}
	return DirectionOf(tags[0])
}

func DirectionOf(tag language.Tag) Direction {
	base, _ := tag.Base()
	if rtlBases[base.String()] {
		return RTL
	}
	return LTR
}
