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

const checkoutBody = `{
	"items":[{"productId":"64b7f0c2a1b2c3d4e5f60718","name":"Naruto Sage Mode","price":799,"quantity":1,"size":"M"}],
	"total":799,
	"shippingAddress":{"fullName":"Iruka Umino","phone":"9999999999","address":"Academy Road","city":"Konoha","pincode":"110001"},
	"paymentMethod":"COD"
}`

func TestPlaceOrder(t *testing.T) {
	userID := primitive.NewObjectID()
	session := testutils.TestSession(userID, models.RoleUser)

	t.Run("Success - Order id returned", func(t *testing.T) {
		// Arrange
		orders := new(mocks.OrderService)
		placed := &models.Order{ID: primitive.NewObjectID(), UserID: userID, Total: 799, Status: models.OrderStatusPending}
		orders.On("PlaceOrder", mock.Anything, userID, mock.MatchedBy(func(req *models.PlaceOrderRequest) bool {
			return len(req.Items) == 1 && req.ShippingAddress.City == "Konoha"
		})).Return(placed, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/orders", bytes.NewReader([]byte(checkoutBody)), session, nil)

		// Act
		handlers.NewOrderHandler(orders).PlaceOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp models.PlaceOrderResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, placed.ID.Hex(), resp.OrderID)
		orders.AssertExpectations(t)
	})

	t.Run("Failure - No items", func(t *testing.T) {
		orders := new(mocks.OrderService)
		orders.On("PlaceOrder", mock.Anything, userID, mock.Anything).Return(nil, appErrors.ValidationError("No items in order")).Once()
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/orders", bytes.NewReader([]byte(`{"items":[]}`)), session, nil)

		handlers.NewOrderHandler(orders).PlaceOrder().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "No items in order")
	})

	t.Run("Failure - Store error", func(t *testing.T) {
		orders := new(mocks.OrderService)
		orders.On("PlaceOrder", mock.Anything, userID, mock.Anything).Return(nil, appErrors.DatabaseError("Failed to place order")).Once()
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/orders", bytes.NewReader([]byte(checkoutBody)), session, nil)

		handlers.NewOrderHandler(orders).PlaceOrder().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), `"error":"Failed to place order"`)
	})
}

func TestListMyOrders(t *testing.T) {
	t.Run("Success - Anonymous gets empty list", func(t *testing.T) {
		orders := new(mocks.OrderService)
		rr := httptest.NewRecorder()

		handlers.NewOrderHandler(orders).ListMyOrders().ServeHTTP(rr, testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/my-orders", nil, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
		orders.AssertNotCalled(t, "ListOrders", mock.Anything, mock.Anything)
	})

	t.Run("Success - Caller's orders", func(t *testing.T) {
		// Arrange
		userID := primitive.NewObjectID()
		orders := new(mocks.OrderService)
		orders.On("ListOrders", mock.Anything, userID).Return([]*models.Order{{ID: primitive.NewObjectID(), UserID: userID, Total: 899}}).Once()
		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/my-orders", nil, testutils.TestSession(userID, models.RoleUser), nil)

		// Act
		handlers.NewOrderHandler(orders).ListMyOrders().ServeHTTP(rr, req)

		// Assert
		var got []models.Order
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, 899.0, got[0].Total)
	})
}
