package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/trendprints/storefront/internal/api/middleware"
	"github.com/trendprints/storefront/internal/cache"
	"github.com/trendprints/storefront/internal/errors"
	"github.com/trendprints/storefront/internal/models"
	repository "github.com/trendprints/storefront/internal/repositories"
)

type ProductService interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	// SeedProducts fills an empty catalog and reports how many products it inserted.
	SeedProducts(ctx context.Context) (int, error)
}

type productService struct {
	repo  repository.ProductRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewProductService builds the catalog service. A nil cache reads straight
// from the store.
func NewProductService(repo repository.ProductRepository, c cache.Cache, ttl time.Duration) ProductService {
	return &productService{repo: repo, cache: c, ttl: ttl}
}

func seedCatalog() []*models.Product {
	return []*models.Product{
		{Name: "Naruto Sage Mode", Price: 799, Image: "naruto.jpg", Category: "Naruto", Description: "Sage Mode Naruto print on a heavyweight cotton tee.", Stock: 50},
		{Name: "Goku Ultra Instinct", Price: 899, Image: "goku.jpg", Category: "Dragon Ball", Description: "Ultra Instinct Goku with silver aura print.", Stock: 50},
		{Name: "Luffy Gear 5", Price: 849, Image: "luffy.jpg", Category: "One Piece", Description: "Gear 5 Luffy in full Sun God form.", Stock: 50},
		{Name: "Levi Ackerman", Price: 999, Image: "levi.jpg", Category: "Attack on Titan", Description: "Captain Levi with ODM gear, premium print.", Stock: 30},
		{Name: "Gojo Satoru", Price: 799, Image: "gojo.jpg", Category: "Jujutsu Kaisen", Description: "Gojo Satoru unblindfolded, Infinity motif.", Stock: 50},
		{Name: "Itachi Uchiha", Price: 899, Image: "itachi.jpg", Category: "Naruto", Description: "Itachi Uchiha with crows and Sharingan.", Stock: 40},
	}
}

func (s *productService) ListProducts(ctx context.Context) (products []*models.Product, err error) {

	ctx, span := tracer.Start(ctx, "ProductService.ListProducts")
	defer func() { endSpan(span, err) }()

	load := func(ctx context.Context) ([]*models.Product, error) {
		return s.repo.ListProducts(ctx)
	}

	if s.cache != nil {
		products, err = cache.Remember(ctx, s.cache, cache.ProductListKey, s.ttl, load)
	} else {
		products, err = load(ctx)
	}

	if err != nil {
		return nil, errors.DatabaseError("Failed to list products").WithError(err)
	}

	if products == nil {
		products = []*models.Product{}
	}

	return products, nil
}

func (s *productService) CountProducts(ctx context.Context) (int64, error) {

	load := func(ctx context.Context) (int64, error) {
		return s.repo.CountProducts(ctx)
	}

	var (
		count int64
		err   error
	)

	if s.cache != nil {
		count, err = cache.Remember(ctx, s.cache, cache.ProductCountKey, s.ttl, load)
	} else {
		count, err = load(ctx)
	}

	if err != nil {
		return 0, errors.DatabaseError("Failed to count products").WithError(err)
	}

	return count, nil
}

func (s *productService) SeedProducts(ctx context.Context) (int, error) {

	logger := middleware.LoggerFromContext(ctx)

	count, err := s.repo.CountProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	if count > 0 {
		logger.Info(fmt.Sprintf("✅ %d PRODUCTS LOADED", count))
		return 0, nil
	}

	products := seedCatalog()

	if err := s.repo.InsertProducts(ctx, products); err != nil {
		return 0, fmt.Errorf("failed to seed products: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cache.ProductListKey, cache.ProductCountKey); err != nil {
			logger.Warn("Failed to invalidate catalog cache", slog.Any("error", err))
		}
	}

	logger.Info(fmt.Sprintf("✅ %d PRODUCTS CREATED", len(products)))

	return len(products), nil
}
