package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"portal/internal/auth"
	"portal/internal/httputil"
)

// Authenticate verifies the bearer token when one is sent and stores the caller
// in the request context. Requests without a token continue anonymously; a token
// that fails verification is rejected with 401.
func Authenticate(verifier auth.JWTVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "authorization header must be a bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("rejected bearer token", "path", r.URL.Path, "error", err)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithPrincipal(r, &httputil.Principal{
				UserID: claims.GetUserID(),
				Admin:  claims.IsAdmin(),
			}))
		})
	}
}
