package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-portfolio/internal/api"
	"github.com/ovaphlow/pitchfork/service-portfolio/internal/auth/entity"
)

// VerifyToken rejects requests without a valid bearer token (401) and puts
// the decoded claims into the request context.
func VerifyToken(tokens *TokenIssuer, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
				api.WriteError(w, r, logger, api.AuthenticationError("missing bearer token"))
				return
			}
			claims, err := tokens.Verify(strings.TrimSpace(h[7:]))
			if err != nil {
				logger.Debugw("token rejected", "err", err)
				api.WriteError(w, r, logger, api.AuthenticationError("invalid or expired token"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireAdmin must run after VerifyToken; it rejects any role but admin (403).
func RequireAdmin(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := FromContext(r.Context())
			if c == nil {
				api.WriteError(w, r, logger, api.AuthenticationError("missing bearer token"))
				return
			}
			if c.Role != entity.RoleAdmin {
				api.WriteError(w, r, logger, api.AuthorizationError("admin role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
