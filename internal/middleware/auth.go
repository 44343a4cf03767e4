package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/ayush/employee-admin/internal/auth"
)

// Verifier checks a session token for the requesting user agent.
type Verifier interface {
	Verify(ctx context.Context, token, userAgent string) (*auth.Identity, error)
}

// RequireAuth is middleware that validates the session cookie and injects the
// identity into the request context. Rejected requests lose their cookie and are
// redirected to loginPath with the original URI hex-encoded in "cf".
func RequireAuth(v Verifier, cookies *auth.CookieHelper, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := v.Verify(r.Context(), cookies.Token(r), r.UserAgent())
			if err != nil {
				hlog.FromRequest(r).Debug().Err(err).Msg("session rejected")
				cookies.Clear(w)
				http.Redirect(w, r, auth.LoginRedirect(loginPath, r.URL.RequestURI()), http.StatusFound)
				return
			}

			ctx := auth.WithIdentity(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
