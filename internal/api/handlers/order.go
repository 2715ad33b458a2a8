package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/trendprints/storefront/internal/api/middleware"
	"github.com/trendprints/storefront/internal/metrics"
	"github.com/trendprints/storefront/internal/models"
	service "github.com/trendprints/storefront/internal/services"
	"github.com/trendprints/storefront/internal/utils"
	"github.com/trendprints/storefront/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// PlaceOrder turns the submitted checkout into an order and empties the cart.
func (h *OrderHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		session, _ := middleware.SessionFromContext(r.Context())
		logger := middleware.LoggerFromContext(r.Context())

		var req models.PlaceOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid place order input")
			return
		}

		order, err := h.orderService.PlaceOrder(r.Context(), session.UserID, &req)
		if err != nil {
			logger.Error("Failed to place order", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		metrics.OrderPlaced()
		logger.Info("Order placed", slog.String("orderId", order.ID.Hex()), slog.Float64("total", order.Total))
		writeJSON(w, r, http.StatusOK, models.PlaceOrderResponse{Success: true, OrderID: order.ID.Hex()})
	}
}

// ListMyOrders answers the caller's orders, newest first. Anonymous callers
// get an empty list.
func (h *OrderHandler) ListMyOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			writeJSON(w, r, http.StatusOK, []*models.Order{})
			return
		}

		writeJSON(w, r, http.StatusOK, h.orderService.ListOrders(r.Context(), session.UserID))
	}
}
