package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
)

const (
	csrfTokenKey     contextKey = "csrf_token"
	csrfCookieName              = "_bd_csrf"
	csrfHeaderName              = "X-CSRF-Token"
	csrfNonceBytes              = 32
	csrfCookieMaxAge            = 7 * 24 * 60 * 60 // 7 days
)

// csrfGuard implements signed double-submit tokens: the cookie holds
// nonce.hmac and unsafe requests must echo it in the X-CSRF-Token header.
type csrfGuard struct {
	key    []byte
	secure bool
}

func CSRF(key string, secure bool) func(http.Handler) http.Handler {
	g := &csrfGuard{key: []byte(key), secure: secure}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if isSafeMethod(r.Method) {
				token = g.issue(w, r)
			} else {
				token = g.check(r)
				if token == "" {
					http.Error(w, "forbidden", http.StatusForbidden)
					return
				}
			}
			ctx := context.WithValue(r.Context(), csrfTokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetCSRFToken(ctx context.Context) string {
	if token, ok := ctx.Value(csrfTokenKey).(string); ok {
		return token
	}
	return ""
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

// issue returns the request's valid cookie token, minting a new one if needed.
func (g *csrfGuard) issue(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(csrfCookieName); err == nil && g.verify(cookie.Value) {
		return cookie.Value
	}
	token := g.mint()
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   csrfCookieMaxAge,
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return token
}

// check returns the token when the header matches a validly signed cookie.
func (g *csrfGuard) check(r *http.Request) string {
	cookie, err := r.Cookie(csrfCookieName)
	if err != nil {
		return ""
	}
	header := r.Header.Get(csrfHeaderName)
	if header == "" || !hmac.Equal([]byte(cookie.Value), []byte(header)) {
		return ""
	}
	if !g.verify(cookie.Value) {
		return ""
	}
	return cookie.Value
}

func (g *csrfGuard) mint() string {
	b := make([]byte, csrfNonceBytes)
	rand.Read(b)
	nonce := hex.EncodeToString(b)
	return nonce + "." + g.sign(nonce)
}

func (g *csrfGuard) sign(nonce string) string {
	h := hmac.New(sha256.New, g.key)
	h.Write([]byte(nonce))
	return hex.EncodeToString(h.Sum(nil))
}

func (g *csrfGuard) verify(token string) bool {
	nonce, mac, ok := strings.Cut(token, ".")
	if !ok || nonce == "" {
		return false
	}
	return hmac.Equal([]byte(mac), []byte(g.sign(nonce)))
}
