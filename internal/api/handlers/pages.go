package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/trendprints/storefront/internal/api/middleware"
	"github.com/trendprints/storefront/internal/config"
)

// PageHandler serves the storefront's static pages and assets.
type PageHandler struct {
	publicDir  string
	uploadsDir string
}

func NewPageHandler(cfg config.Static) *PageHandler {
	return &PageHandler{publicDir: cfg.PublicDir, uploadsDir: cfg.UploadsDir}
}

// Page answers the named HTML file from the public directory.
func (h *PageHandler) Page(name string) http.HandlerFunc {
	path := filepath.Join(h.publicDir, name)

	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, path)
	}
}

// Dashboard requires a session; anonymous callers are sent to the login page.
func (h *PageHandler) Dashboard() http.HandlerFunc {
	page := h.Page("dashboard.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.SessionFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		page(w, r)
	}
}

func (h *PageHandler) Assets() http.Handler {
	return http.FileServer(http.Dir(h.publicDir))
}

func (h *PageHandler) Uploads() http.Handler {
	return http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.uploadsDir)))
}
