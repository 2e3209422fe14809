package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/TimeAway/blog-design/components/alert"
)

// Recover turns a panic outside any error boundary into a 500. Browsers get
// the error as an alert; other clients get plain text.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			requestID := GetRequestID(r.Context())
			slog.Error("panic recovered",
				"panic", rec,
				"stack", string(debug.Stack()),
				"path", r.URL.Path,
				"method", r.Method,
				"request_id", requestID,
			)

			if !strings.Contains(r.Header.Get("Accept"), "text/html") {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			props := alert.Props{
				Type:    alert.KindError,
				Message: alert.Text("Internal Server Error"),
			}
			if requestID != "" {
				props.Description = alert.Text("Request " + requestID)
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusInternalServerError)
			alert.New(props, alert.WithMotion(&alert.NoMotion{})).Render(r.Context(), w)
		}()
		next.ServeHTTP(w, r)
	})
}
