package handlers

import (
	"log/slog"
	"net/http"

	"github.com/trendprints/storefront/internal/api/middleware"
	"github.com/trendprints/storefront/internal/utils/response"
)

type Router struct {
	Auth     *AuthHandler
	Products *ProductHandler
	Carts    *CartHandler
	Orders   *OrderHandler
	Admin    *AdminHandler
	Pages    *PageHandler
	Gate     middleware.AdminAuthorizer
}

// Register mounts every storefront route on mux.
func (rt *Router) Register(mux *http.ServeMux) {

	adminOnly := middleware.AdminGate(rt.Gate)

	// pages
	mux.HandleFunc("GET /{$}", rt.Pages.Page("index.html"))
	mux.HandleFunc("GET /support", rt.Pages.Page("support.html"))
	mux.HandleFunc("GET /signup", rt.Pages.Page("signup.html"))
	mux.HandleFunc("GET /login", rt.Pages.Page("login.html"))
	mux.HandleFunc("GET /dashboard", rt.Pages.Dashboard())
	mux.Handle("GET /uploads/", rt.Pages.Uploads())
	mux.Handle("GET /", rt.Pages.Assets())

	// auth forms
	mux.HandleFunc("POST /signup", rt.Auth.Signup())
	mux.HandleFunc("POST /login", rt.Auth.Login())
	mux.HandleFunc("GET /logout", rt.Auth.Logout())
	mux.HandleFunc("POST /logout", rt.Auth.Logout())
	mux.HandleFunc("GET /api/check-session", rt.Auth.CheckSession())

	mux.HandleFunc("GET /api/products", rt.Products.ListProducts())

	mux.HandleFunc("GET /api/cart", rt.Carts.GetCart())
	mux.HandleFunc("POST /api/cart/add", middleware.RequireSession(rt.Carts.AddItem()))
	mux.HandleFunc("POST /api/cart/remove", middleware.RequireSession(rt.Carts.RemoveItem()))

	mux.HandleFunc("POST /api/orders", middleware.RequireSession(rt.Orders.PlaceOrder()))
	mux.HandleFunc("GET /api/my-orders", rt.Orders.ListMyOrders())

	mux.HandleFunc("GET /api/admin/orders", adminOnly(rt.Admin.ListOrders()))
	mux.HandleFunc("PUT /api/admin/orders/{id}", adminOnly(rt.Admin.UpdateOrderStatus()))
	mux.HandleFunc("GET /api/admin/stats", adminOnly(rt.Admin.Stats()))
}

func writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	if err := response.WriteJson(w, statusCode, data); err != nil {
		middleware.LoggerFromContext(r.Context()).Error("Failed to write response", slog.Any("error", err))
	}
}
