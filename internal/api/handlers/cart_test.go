package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trendprints/storefront/internal/api/handlers"
	appErrors "github.com/trendprints/storefront/internal/errors"
	"github.com/trendprints/storefront/internal/models"
	"github.com/trendprints/storefront/internal/services/mocks"
	"github.com/trendprints/storefront/internal/testutils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetCart(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("Success - Anonymous gets empty cart", func(t *testing.T) {
		// Arrange
		carts := new(mocks.CartService)
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/cart", nil, nil)

		// Act
		handlers.NewCartHandler(carts).GetCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"items":[],"total":0}`, rr.Body.String())
		carts.AssertNotCalled(t, "GetCart", mock.Anything, mock.Anything)
	})

	t.Run("Success - Session cart", func(t *testing.T) {
		// Arrange
		carts := new(mocks.CartService)
		stored := &models.Cart{ID: primitive.NewObjectID(), UserID: userID, Items: []models.CartItem{{ProductID: "p1", Name: "Gojo Satoru", Price: 799, Quantity: 1, Size: "M"}}, Total: 799}
		carts.On("GetCart", mock.Anything, userID).Return(stored, nil).Once()
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/cart", nil, testutils.TestSession(userID, models.RoleUser), nil)

		// Act
		handlers.NewCartHandler(carts).GetCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var cart models.Cart
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cart))
		assert.Equal(t, 799.0, cart.Total)
		carts.AssertExpectations(t)
	})

	t.Run("Failure - Store error", func(t *testing.T) {
		carts := new(mocks.CartService)
		carts.On("GetCart", mock.Anything, userID).Return(nil, appErrors.DatabaseError("Failed to load cart")).Once()
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/cart", nil, testutils.TestSession(userID, models.RoleUser), nil)

		handlers.NewCartHandler(carts).GetCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "Failed to load cart")
	})
}

func TestAddItem(t *testing.T) {
	userID := primitive.NewObjectID()
	session := testutils.TestSession(userID, models.RoleUser)

	t.Run("Success - Item added", func(t *testing.T) {
		// Arrange
		carts := new(mocks.CartService)
		body := []byte(`{"productId":"p1","name":"Naruto Sage Mode","price":"799","image":"naruto.jpg"}`)
		expected := &models.Cart{ID: primitive.NewObjectID(), UserID: userID, Items: []models.CartItem{{ProductID: "p1", Name: "Naruto Sage Mode", Price: 799, Quantity: 1, Size: "M"}}, Total: 799}

		carts.On("AddItem", mock.Anything, userID, mock.MatchedBy(func(req *models.AddItemRequest) bool {
			return req.ProductID == "p1" && req.Price == "799" && req.Image == "naruto.jpg"
		})).Return(expected, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/cart/add", bytes.NewReader(body), session, nil)

		// Act
		handlers.NewCartHandler(carts).AddItem().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var cart models.Cart
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cart))
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 799.0, cart.Total)
		carts.AssertExpectations(t)
	})

	t.Run("Failure - Bad JSON", func(t *testing.T) {
		carts := new(mocks.CartService)
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/cart/add", bytes.NewReader([]byte("{oops")), session, nil)

		handlers.NewCartHandler(carts).AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		carts.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Validation from service", func(t *testing.T) {
		carts := new(mocks.CartService)
		carts.On("AddItem", mock.Anything, userID, mock.Anything).Return(nil, appErrors.ValidationError("Product ID is required")).Once()
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/cart/add", bytes.NewReader([]byte(`{"price":1}`)), session, nil)

		handlers.NewCartHandler(carts).AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Product ID is required")
	})
}

func TestRemoveItem(t *testing.T) {
	userID := primitive.NewObjectID()
	carts := new(mocks.CartService)
	carts.On("RemoveItem", mock.Anything, userID, &models.RemoveItemRequest{ProductID: "p1", Size: "L"}).
		Return(models.EmptyCart(), nil).Once()

	rr := httptest.NewRecorder()
	req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/cart/remove",
		bytes.NewReader([]byte(`{"productId":"p1","size":"L"}`)), testutils.TestSession(userID, models.RoleUser), nil)

	handlers.NewCartHandler(carts).RemoveItem().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"items":[],"total":0}`, rr.Body.String())
	carts.AssertExpectations(t)
}
