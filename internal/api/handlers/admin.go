package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/trendprints/storefront/internal/api/middleware"
	"github.com/trendprints/storefront/internal/models"
	service "github.com/trendprints/storefront/internal/services"
	"github.com/trendprints/storefront/internal/utils"
	"github.com/trendprints/storefront/internal/utils/response"
)

// AdminHandler serves the back office routes. Every route is expected to sit
// behind middleware.AdminGate.
type AdminHandler struct {
	adminService service.AdminService
	validator    *validator.Validate
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService, validator: validator.New()}
}

func (h *AdminHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		orders, err := h.adminService.ListAllOrders(r.Context())
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, orders)
	}
}

func (h *AdminHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id := r.PathValue("id")
		logger := middleware.LoggerFromContext(r.Context()).With(slog.String("orderId", id))

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid order status input")
			return
		}

		order, err := h.adminService.UpdateOrderStatus(r.Context(), id, req.Status)
		if err != nil {
			logger.Error("Failed to update order status", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order status updated", slog.String("status", order.Status))
		writeJSON(w, r, http.StatusOK, order)
	}
}

func (h *AdminHandler) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		stats, err := h.adminService.GetStats(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to compute stats", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, stats)
	}
}
