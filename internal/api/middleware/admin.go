package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/trendprints/storefront/internal/models"
	"github.com/trendprints/storefront/internal/utils/response"
)

type adminContextKey struct{}

type AdminAuthorizer interface {
	RequireAdmin(ctx context.Context, session *models.Session) (*models.AdminContext, error)
}

// AdminGate lets a request through only after the caller's role has been
// confirmed against the identity store.
func AdminGate(authz AdminAuthorizer) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			session, _ := SessionFromContext(r.Context())

			admin, err := authz.RequireAdmin(r.Context(), session)
			if err != nil {
				LoggerFromContext(r.Context()).Warn("Admin gate rejected request", slog.Any("error", err))
				response.Error(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), adminContextKey{}, admin)

			next(w, r.WithContext(ctx))
		}
	}
}

func AdminFromContext(ctx context.Context) (*models.AdminContext, bool) {
	admin, ok := ctx.Value(adminContextKey{}).(*models.AdminContext)
	return admin, ok && admin != nil
}
