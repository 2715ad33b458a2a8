package handlers

import (
	"log/slog"
	"net/http"

	"github.com/trendprints/storefront/internal/api/middleware"
	"github.com/trendprints/storefront/internal/models"
	service "github.com/trendprints/storefront/internal/services"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts answers the whole catalog, newest first. Failures yield an
// empty list.
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		products, err := h.productService.ListProducts(r.Context())
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			products = []*models.Product{}
		}

		writeJSON(w, r, http.StatusOK, products)
	}
}
