package testutils

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/trendprints/storefront/internal/api/middleware"
	"github.com/trendprints/storefront/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestSession builds a live session for userID with the given role.
func TestSession(userID primitive.ObjectID, role models.Role) *models.Session {
	return &models.Session{
		ID:        "test-session",
		UserID:    userID,
		Username:  "testuser",
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
}

func CreateTestRequestWithContext(method, target string, body io.Reader, session *models.Session, pathParams map[string]string) *http.Request {
	req := CreateTestRequestWithoutContext(method, target, body, pathParams)

	return req.WithContext(middleware.WithSession(req.Context(), session))
}

func CreateTestRequestWithoutContext(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	ctx := middleware.WithLogger(req.Context(), discardLogger())

	return req.WithContext(ctx)
}
