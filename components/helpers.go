package components

import "github.com/TimeAway/blog-design/components/alert"

// bannerKind maps a configured level to an alert kind. Unknown levels leave
// the kind unset so the banner falls back to its own default.
func bannerKind(level string) alert.Kind {
	switch level {
	case "error":
		return alert.KindError
	case "warning":
		return alert.KindWarning
	case "info":
		return alert.KindInfo
	case "success":
		return alert.KindSuccess
	default:
		return ""
	}
}
