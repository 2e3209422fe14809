package middleware

import (
	"net/http"

	"github.com/TimeAway/blog-design/components/theme"
)

// Theme injects the component theme config, with the layout direction taken
// from the request's Accept-Language header. A dir=rtl|ltr query parameter
// overrides the header.
func Theme(prefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			dir := theme.DirectionFromAcceptLanguage(r.Header.Get("Accept-Language"))
			switch theme.Direction(r.URL.Query().Get("dir")) {
			case theme.RTL:
				dir = theme.RTL
			case theme.LTR:
				dir = theme.LTR
			}
			ctx := theme.WithConfig(r.Context(), theme.Config{Prefix: prefix, Direction: dir})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
