package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/trendprints/storefront/internal/api/middleware"
	"github.com/trendprints/storefront/internal/errors"
	"github.com/trendprints/storefront/internal/models"
	repository "github.com/trendprints/storefront/internal/repositories"
	"github.com/trendprints/storefront/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// confirmationTimeout bounds the confirmation mail, which outlives the request.
const confirmationTimeout = 15 * time.Second

// OrderService turns a checkout payload into an order and empties the cart.
type OrderService interface {
	PlaceOrder(ctx context.Context, userID primitive.ObjectID, req *models.PlaceOrderRequest) (*models.Order, error)
	// ListOrders never fails; lookup errors yield an empty list.
	ListOrders(ctx context.Context, userID primitive.ObjectID) []*models.Order
}

type orderService struct {
	repo     repository.OrderRepository
	notifier NotificationService
}

func NewOrderService(repo repository.OrderRepository, notifier NotificationService) OrderService {
	return &orderService{repo: repo, notifier: notifier}
}

func sanitizeAddress(a models.Address) models.Address {
	return models.Address{
		FullName: utils.SanitizeText(a.FullName),
		Phone:    utils.SanitizeText(a.Phone),
		Address:  utils.SanitizeText(a.Address),
		City:     utils.SanitizeText(a.City),
		Pincode:  utils.SanitizeText(a.Pincode),
	}
}

func normalizeOrderItem(item models.PlaceOrderItem) (models.OrderItem, error) {

	price, err := toAmount(item.Price)
	if err != nil {
		return models.OrderItem{}, errors.ValidationError("Item price must be a number").WithError(err)
	}

	quantity, err := toQuantity(item.Quantity)
	if err != nil {
		return models.OrderItem{}, errors.ValidationError("Item quantity must be a positive whole number").WithError(err)
	}

	normalized := models.OrderItem{
		Name:     utils.SanitizeText(item.Name),
		Price:    price,
		Quantity: quantity,
		Image:    imageOrDefault(item.Image),
		Size:     sizeOrDefault(item.Size),
	}

	// references that are not store ids are dropped rather than rejected
	if id := strings.TrimSpace(item.ProductID); utils.IsObjectIDHex(id) {
		oid, err := primitive.ObjectIDFromHex(id)
		if err == nil {
			normalized.ProductID = &oid
		}
	}

	return normalized, nil
}

func (s *orderService) PlaceOrder(ctx context.Context, userID primitive.ObjectID, req *models.PlaceOrderRequest) (order *models.Order, err error) {

	ctx, span := tracer.Start(ctx, "OrderService.PlaceOrder")
	defer func() { endSpan(span, err) }()

	logger := middleware.LoggerFromContext(ctx)

	if len(req.Items) == 0 {
		return nil, errors.ValidationError("No items in order")
	}

	address := sanitizeAddress(req.ShippingAddress)
	if !address.Complete() {
		return nil, errors.ValidationError("Incomplete address")
	}

	items := make([]models.OrderItem, 0, len(req.Items))

	for _, item := range req.Items {
		normalized, err := normalizeOrderItem(item)
		if err != nil {
			return nil, err
		}

		items = append(items, normalized)
	}

	// the client total is persisted as sent
	total, err := toAmount(req.Total)
	if err != nil {
		return nil, errors.ValidationError("Total must be a number").WithError(err)
	}

	paymentMethod := utils.SanitizeText(req.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = models.DefaultPaymentMethod
	}

	order = &models.Order{
		UserID:          userID,
		Items:           items,
		Total:           total,
		Status:          models.OrderStatusPending,
		PaymentMethod:   paymentMethod,
		ShippingAddress: address,
	}

	if err := s.repo.PlaceOrder(ctx, order); err != nil {
		logger.Error("Failed to place order", slog.Any("error", err))
		return nil, errors.DatabaseError("Failed to place order").WithError(err)
	}

	logger.Info("Order placed", slog.String("orderId", order.ID.Hex()), slog.Float64("total", order.Total), slog.Int("items", len(order.Items)))

	if s.notifier != nil {
		go func(ctx context.Context, placed *models.Order) {
			ctx, cancel := context.WithTimeout(ctx, confirmationTimeout)
			defer cancel()

			s.notifier.OrderPlaced(ctx, placed)
		}(context.WithoutCancel(ctx), order)
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, userID primitive.ObjectID) []*models.Order {

	ctx, span := tracer.Start(ctx, "OrderService.ListOrders")
	defer span.End()

	orders, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		middleware.LoggerFromContext(ctx).Error("Failed to list orders", slog.Any("error", err))

		return []*models.Order{}
	}

	if orders == nil {
		return []*models.Order{}
	}

	return orders
}
