package auth

import (
	"net/http"
	"time"
)

// AccessTokenCookie carries the signed session token.
const AccessTokenCookie = "access_token"

// CookieHelper manages the session cookie.
type CookieHelper struct {
	secure bool
	ttl    time.Duration
}

func NewCookieHelper(secure bool, ttl time.Duration) *CookieHelper {
	return &CookieHelper{secure: secure, ttl: ttl}
}

// Set writes the session cookie.
func (h *CookieHelper) Set(w http.ResponseWriter, token string) {
	h.write(w, token, int(h.ttl/time.Second))
}

// Clear expires the session cookie.
func (h *CookieHelper) Clear(w http.ResponseWriter) {
	h.write(w, "", -1)
}

// Token returns the cookie value, or "" when absent.
func (h *CookieHelper) Token(r *http.Request) string {
	c, err := r.Cookie(AccessTokenCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func (h *CookieHelper) write(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
