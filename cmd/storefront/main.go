package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/trendprints/storefront/internal/api/handlers"
	"github.com/trendprints/storefront/internal/api/middleware"
	"github.com/trendprints/storefront/internal/cache"
	"github.com/trendprints/storefront/internal/config"
	"github.com/trendprints/storefront/internal/health"
	"github.com/trendprints/storefront/internal/metrics"
	redisRepo "github.com/trendprints/storefront/internal/repositories/redis"
	service "github.com/trendprints/storefront/internal/services"
	"github.com/trendprints/storefront/internal/session"
	"github.com/trendprints/storefront/internal/storage"
	"github.com/trendprints/storefront/internal/tracing"
	"github.com/trendprints/storefront/pkg/sendgrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx := context.Background()

	shutdownTracing, err := tracing.Init(ctx, cfg.Otel, cfg.Env)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdownTracing(flushCtx); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	if err := storage.EnsureDirs(cfg.Static); err != nil {
		slog.Error("❌ Error creating static folders", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	store, err := storage.New(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("driver", cfg.Storage.Driver), slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := store.Close(context.Background()); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := redisRepo.NewRedisClient(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	var emailService sendgrid.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailService = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	} else {
		slog.Warn("SENDGRID_API_KEY not set, order confirmation emails disabled")
	}

	catalogCache := cache.NewRedisCache(redisClient, cfg.Cache)
	codec := session.NewCodec(cfg.Security.SessionSecret, cfg.Security.SessionTTL)

	userService := service.NewUserService(store.User, redisRepo.NewRateLimitRepo(redisClient, cfg.RateConfig), cfg.Security.BcryptCost)
	sessionService := service.NewSessionService(redisRepo.NewSessionRepo(redisClient), codec)
	productService := service.NewProductService(store.Product, catalogCache, cfg.Cache.DefaultTTL)
	cartService := service.NewCartService(store.Cart)
	notificationService := service.NewNotificationService(store.User, emailService)
	orderService := service.NewOrderService(store.Order, notificationService)
	adminService := service.NewAdminService(store.User, store.Order, productService)

	// Start-up seeding
	if _, err := productService.SeedProducts(ctx); err != nil {
		slog.Error("⚠️ Product seeding failed", slog.String("error", err.Error()))
	}

	if err := userService.EnsureAdminExists(ctx, cfg.Admin); err != nil {
		slog.Error("⚠️ Admin bootstrap failed", slog.String("error", err.Error()))
	}

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Setup router
	routerMux := http.NewServeMux()
	router := &handlers.Router{
		Auth:     handlers.NewAuthHandler(userService, sessionService, cfg.Security),
		Products: handlers.NewProductHandler(productService),
		Carts:    handlers.NewCartHandler(cartService),
		Orders:   handlers.NewOrderHandler(orderService),
		Admin:    handlers.NewAdminHandler(adminService),
		Pages:    handlers.NewPageHandler(cfg.Static),
		Gate:     adminService,
	}
	router.Register(routerMux)
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = otelhttp.NewHandler(routerMux, "storefront")
	handler = middleware.NewSessionMiddleware(sessionService, cfg.Security.CookieName).Load(handler)
	handler = middleware.NewRateLimiter(cfg.APIRate).Limit(handler)
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)
	handler = cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", middleware.RequestIDHeader},
		AllowCredentials: true,
	}).Handler(handler)

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {

		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	base := "http://localhost" + cfg.Addr
	if !strings.HasPrefix(cfg.Addr, ":") {
		base = "http://" + cfg.Addr
	}

	slog.Info("🚀 TRENDPRINTS SERVER READY",
		slog.String("env", cfg.Env),
		slog.String("driver", cfg.Storage.Driver),
		slog.String("home", base),
		slog.String("support", base+"/support"),
		slog.String("login", base+"/login"),
		slog.String("signup", base+"/signup"),
		slog.String("dashboard", base+"/dashboard"),
	)

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
