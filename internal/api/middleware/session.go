package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/trendprints/storefront/internal/errors"
	"github.com/trendprints/storefront/internal/models"
	"github.com/trendprints/storefront/internal/utils/response"
)

type sessionContextKey struct{}

// SessionResolver turns the raw cookie value into a live session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*models.Session, error)
}

type SessionMiddleware struct {
	resolver   SessionResolver
	cookieName string
}

func NewSessionMiddleware(resolver SessionResolver, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{resolver: resolver, cookieName: cookieName}
}

// Load attaches the caller's session to the request context when the cookie
// resolves. Requests without a usable cookie continue anonymously.
func (m *SessionMiddleware) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		cookie, err := r.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		logger := LoggerFromContext(r.Context())

		session, err := m.resolver.Resolve(r.Context(), cookie.Value)
		if err != nil {
			logger.Debug("Session cookie did not resolve", slog.Any("error", err))
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey{}, session)
		ctx = WithLogger(ctx, logger.With(slog.String("userId", session.UserID.Hex())))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func WithSession(ctx context.Context, session *models.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*models.Session)
	return session, ok && session != nil
}

// RequireSession answers 401 for anonymous callers.
func RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if _, ok := SessionFromContext(r.Context()); !ok {
			LoggerFromContext(r.Context()).Warn("Anonymous request to a protected route")
			response.Error(w, errors.UnauthorizedError("Login required"))
			return
		}

		next(w, r)
	}
}
