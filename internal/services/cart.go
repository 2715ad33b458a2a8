package service

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"strings"

	"github.com/trendprints/storefront/internal/api/middleware"
	"github.com/trendprints/storefront/internal/errors"
	"github.com/trendprints/storefront/internal/models"
	repository "github.com/trendprints/storefront/internal/repositories"
	"github.com/trendprints/storefront/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartService is the per-user cart engine. Every mutation recomputes the
// total from the lines and writes the whole cart back.
type CartService interface {
	GetCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	AddItem(ctx context.Context, userID primitive.ObjectID, req *models.AddItemRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID primitive.ObjectID, req *models.RemoveItemRequest) (*models.Cart, error)
	ClearCart(ctx context.Context, userID primitive.ObjectID) error
}

type cartService struct {
	repo repository.CartRepository
}

func NewCartService(repo repository.CartRepository) CartService {
	return &cartService{repo: repo}
}

func CartTotal(items []models.CartItem) float64 {
	var total float64

	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}

	return total
}

func sizeOrDefault(size string) string {
	if size = strings.TrimSpace(size); size == "" {
		return models.DefaultSize
	}

	return size
}

func imageOrDefault(image string) string {
	if image = strings.TrimSpace(image); image == "" {
		return models.DefaultImage
	}

	return image
}

func (s *cartService) GetCart(ctx context.Context, userID primitive.ObjectID) (cart *models.Cart, err error) {

	ctx, span := tracer.Start(ctx, "CartService.GetCart")
	defer func() { endSpan(span, err) }()

	cart, err = s.repo.GetCartByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}

	if !stdErrors.Is(err, repository.ErrNotFound) {
		return nil, errors.DatabaseError("Failed to retrieve cart").WithError(err)
	}

	cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}

	if err := s.repo.CreateCart(ctx, cart); err != nil {
		if !stdErrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.DatabaseError("Failed to create cart").WithError(err)
		}

		// another request created it first
		cart, err = s.repo.GetCartByUserID(ctx, userID)
		if err != nil {
			return nil, errors.DatabaseError("Failed to retrieve cart").WithError(err)
		}
	}

	middleware.LoggerFromContext(ctx).Info("Cart created", slog.String("cartId", cart.ID.Hex()))

	return cart, nil
}

// loadCart returns the stored cart or an unsaved empty one.
func (s *cartService) loadCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, bool, error) {

	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}}, false, nil
		}

		return nil, false, errors.DatabaseError("Failed to retrieve cart").WithError(err)
	}

	return cart, true, nil
}

func (s *cartService) AddItem(ctx context.Context, userID primitive.ObjectID, req *models.AddItemRequest) (cart *models.Cart, err error) {

	ctx, span := tracer.Start(ctx, "CartService.AddItem")
	defer func() { endSpan(span, err) }()

	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		return nil, errors.ValidationError("Product ID is required")
	}

	price, err := toAmount(req.Price)
	if err != nil {
		return nil, errors.ValidationError("Price must be a number").WithError(err)
	}

	size := sizeOrDefault(req.Size)

	cart, _, err = s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := false

	for i := range cart.Items {
		line := &cart.Items[i]
		if line.ProductID == productID && sizeOrDefault(line.Size) == size {
			line.Quantity++
			merged = true

			break
		}
	}

	if !merged {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: productID,
			Name:      utils.SanitizeText(req.Name),
			Price:     price,
			Quantity:  1,
			Image:     imageOrDefault(req.Image),
			Size:      size,
		})
	}

	cart.Total = CartTotal(cart.Items)

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return nil, errors.DatabaseError("Failed to update cart").WithError(err)
	}

	middleware.LoggerFromContext(ctx).Info("Item added to cart",
		slog.String("productId", productID), slog.String("size", size), slog.Bool("merged", merged))

	return cart, nil
}

// RemoveItem drops every line matching the product and size. An empty size
// drops the product in all sizes.
func (s *cartService) RemoveItem(ctx context.Context, userID primitive.ObjectID, req *models.RemoveItemRequest) (cart *models.Cart, err error) {

	ctx, span := tracer.Start(ctx, "CartService.RemoveItem")
	defer func() { endSpan(span, err) }()

	cart, exists, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !exists {
		return models.EmptyCart(), nil
	}

	productID := strings.TrimSpace(req.ProductID)
	size := strings.TrimSpace(req.Size)

	kept := make([]models.CartItem, 0, len(cart.Items))

	for _, line := range cart.Items {
		if line.ProductID == productID && (size == "" || sizeOrDefault(line.Size) == size) {
			continue
		}

		kept = append(kept, line)
	}

	if len(kept) == len(cart.Items) {
		return cart, nil
	}

	cart.Items = kept
	cart.Total = CartTotal(kept)

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return nil, errors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) ClearCart(ctx context.Context, userID primitive.ObjectID) error {

	if err := s.repo.ClearCart(ctx, userID); err != nil {
		return errors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}
