package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/simplishare/simplishare-server/api/responses"
	pkgAuth "github.com/simplishare/simplishare-server/pkg/auth"
	"github.com/simplishare/simplishare-server/pkg/config"
	pkgerrors "github.com/simplishare/simplishare-server/pkg/errors"
	"github.com/simplishare/simplishare-server/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// authenticated subject.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			parts := strings.Fields(raw)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, parts[1])
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token").
						WithAppCode(pkgerrors.AppInvalidToken))
				return
			}

			if claims.UserID == uuid.Nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token").
						WithAppCode(pkgerrors.AppInvalidToken))
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
