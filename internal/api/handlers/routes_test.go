package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trendprints/storefront/internal/api/handlers"
	"github.com/trendprints/storefront/internal/config"
	appErrors "github.com/trendprints/storefront/internal/errors"
	"github.com/trendprints/storefront/internal/models"
	"github.com/trendprints/storefront/internal/services/mocks"
	"github.com/trendprints/storefront/internal/testutils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type routeFixture struct {
	mux    *http.ServeMux
	admin  *mocks.AdminService
	carts  *mocks.CartService
	orders *mocks.OrderService
}

func newRouteFixture(t *testing.T) *routeFixture {
	t.Helper()

	static := config.Static{PublicDir: t.TempDir(), UploadsDir: t.TempDir()}
	for name, body := range map[string]string{"index.html": "home", "dashboard.html": "dashboard", "login.html": "login"} {
		require.NoError(t, os.WriteFile(filepath.Join(static.PublicDir, name), []byte(body), 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(static.UploadsDir, "print.jpg"), []byte("jpeg"), 0o600))

	f := &routeFixture{
		mux:    http.NewServeMux(),
		admin:  new(mocks.AdminService),
		carts:  new(mocks.CartService),
		orders: new(mocks.OrderService),
	}

	router := &handlers.Router{
		Auth:     handlers.NewAuthHandler(new(mocks.UserService), new(mocks.SessionService), cookieConfig),
		Products: handlers.NewProductHandler(new(mocks.ProductService)),
		Carts:    handlers.NewCartHandler(f.carts),
		Orders:   handlers.NewOrderHandler(f.orders),
		Admin:    handlers.NewAdminHandler(f.admin),
		Pages:    handlers.NewPageHandler(static),
		Gate:     f.admin,
	}
	router.Register(f.mux)

	return f
}

func TestRoutes(t *testing.T) {
	t.Run("Failure - Cart mutation requires login", func(t *testing.T) {
		f := newRouteFixture(t)
		rr := httptest.NewRecorder()

		f.mux.ServeHTTP(rr, testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/cart/add", nil, nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), `"error":"Login required"`)
		f.carts.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Checkout requires login", func(t *testing.T) {
		f := newRouteFixture(t)
		rr := httptest.NewRecorder()

		f.mux.ServeHTTP(rr, testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/orders", nil, nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Failure - Non admin gets no order data", func(t *testing.T) {
		// Arrange
		f := newRouteFixture(t)
		session := testutils.TestSession(primitive.NewObjectID(), models.RoleUser)
		f.admin.On("RequireAdmin", mock.Anything, session).Return(nil, appErrors.ForbiddenError("Admin access required")).Once()
		rr := httptest.NewRecorder()

		// Act
		f.mux.ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodGet, "/api/admin/orders", nil, session, nil))

		// Assert
		assert.Equal(t, http.StatusForbidden, rr.Code)
		f.admin.AssertNotCalled(t, "ListAllOrders", mock.Anything)
	})

	t.Run("Success - Admin reaches stats", func(t *testing.T) {
		f := newRouteFixture(t)
		session := testutils.TestSession(primitive.NewObjectID(), models.RoleAdmin)
		f.admin.On("RequireAdmin", mock.Anything, session).Return(&models.AdminContext{User: &models.User{Role: models.RoleAdmin}}, nil).Once()
		f.admin.On("GetStats", mock.Anything).Return(&models.Stats{}, nil).Once()
		rr := httptest.NewRecorder()

		f.mux.ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodGet, "/api/admin/stats", nil, session, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		f.admin.AssertExpectations(t)
	})

	t.Run("Success - Dashboard redirects anonymous callers", func(t *testing.T) {
		f := newRouteFixture(t)
		rr := httptest.NewRecorder()

		f.mux.ServeHTTP(rr, testutils.CreateTestRequestWithoutContext(http.MethodGet, "/dashboard", nil, nil))

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
	})

	t.Run("Success - Dashboard served with session", func(t *testing.T) {
		f := newRouteFixture(t)
		rr := httptest.NewRecorder()
		session := testutils.TestSession(primitive.NewObjectID(), models.RoleUser)

		f.mux.ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodGet, "/dashboard", nil, session, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "dashboard", rr.Body.String())
	})

	t.Run("Success - Pages and uploads", func(t *testing.T) {
		f := newRouteFixture(t)

		home := httptest.NewRecorder()
		f.mux.ServeHTTP(home, testutils.CreateTestRequestWithoutContext(http.MethodGet, "/", nil, nil))
		assert.Equal(t, "home", home.Body.String())

		upload := httptest.NewRecorder()
		f.mux.ServeHTTP(upload, testutils.CreateTestRequestWithoutContext(http.MethodGet, "/uploads/print.jpg", nil, nil))
		assert.Equal(t, http.StatusOK, upload.Code)
		assert.Equal(t, "jpeg", upload.Body.String())
	})
}
