package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/web"
)

type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// RequireAdmin rejects requests without a valid bearer token. A nil
// verifier disables the check.
func RequireAdmin(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if verifier == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				web.WriteError(w, r, apperrors.NewUnauthorizedError("missing bearer token"))
				return
			}

			subject, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				web.Logger(r.Context()).Debug("token rejected", zap.Error(err))
				web.WriteError(w, r, apperrors.NewUnauthorizedError("invalid or expired token"))
				return
			}

			ctx := web.WithLogger(r.Context(), web.Logger(r.Context()).With(zap.String("admin", subject)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
