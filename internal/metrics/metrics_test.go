package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/admin/orders/64b7f0c2a1b2c3d4e5f60718", "/api/admin/orders/{id}"},
		{"/api/cart", "/api/cart"},
		{"/uploads/naruto.jpg", "/uploads/{file}"},
		{"/images/gojo.jpg", "/{asset}"},
		{"/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, pathLabel(tt.path))
		})
	}
}

func scrape(t *testing.T) string {
	t.Helper()

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	return rr.Body.String()
}

func TestMiddleware(t *testing.T) {
	// Arrange
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	// Act
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/admin/orders/64b7f0c2a1b2c3d4e5f60718", nil))

	// Assert
	body := scrape(t)
	assert.Contains(t, body, `http_requests_total{code="418",method="GET",path="/api/admin/orders/{id}"} 1`)
	assert.Contains(t, body, `http_requests_in_flight 0`)
}

func TestBusinessCounters(t *testing.T) {
	OrderPlaced()
	LoginAttempt(LoginThrottled)

	body := scrape(t)
	assert.Contains(t, body, "storefront_orders_placed_total")
	assert.Contains(t, body, `storefront_login_attempts_total{outcome="throttled"}`)
}
