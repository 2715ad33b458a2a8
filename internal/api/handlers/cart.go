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

// emptyCart is the body answered when the caller has no stored cart.
type emptyCart struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
}

func writeCart(w http.ResponseWriter, r *http.Request, cart *models.Cart) {
	if cart == nil || cart.ID.IsZero() {
		writeJSON(w, r, http.StatusOK, emptyCart{Items: []models.CartItem{}})
		return
	}

	writeJSON(w, r, http.StatusOK, cart)
}

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart answers the caller's cart, creating it on first use. Anonymous
// callers get an empty cart.
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			writeCart(w, r, nil)
			return
		}

		logger := middleware.LoggerFromContext(r.Context())

		cart, err := h.cartService.GetCart(r.Context(), session.UserID)
		if err != nil {
			logger.Error("Failed to load cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		writeCart(w, r, cart)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		session, _ := middleware.SessionFromContext(r.Context())
		logger := middleware.LoggerFromContext(r.Context())

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add to cart input")
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), session.UserID, &req)
		if err != nil {
			logger.Error("Failed to add item", slog.String("productId", req.ProductID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.String("productId", req.ProductID), slog.Int("items", len(cart.Items)))
		writeJSON(w, r, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		session, _ := middleware.SessionFromContext(r.Context())
		logger := middleware.LoggerFromContext(r.Context())

		var req models.RemoveItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid remove from cart input")
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), session.UserID, &req)
		if err != nil {
			logger.Error("Failed to remove item", slog.String("productId", req.ProductID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		writeCart(w, r, cart)
	}
}
