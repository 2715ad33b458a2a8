package service

import (
	"context"
	stdErrors "errors"
	"log/slog"

	"github.com/trendprints/storefront/internal/api/middleware"
	"github.com/trendprints/storefront/internal/errors"
	"github.com/trendprints/storefront/internal/models"
	repository "github.com/trendprints/storefront/internal/repositories"
	"github.com/trendprints/storefront/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminService is the role checked read path over orders, products and users.
type AdminService interface {
	RequireAdmin(ctx context.Context, session *models.Session) (*models.AdminContext, error)
	ListAllOrders(ctx context.Context) ([]*models.AdminOrder, error)
	UpdateOrderStatus(ctx context.Context, id string, status string) (*models.Order, error)
	GetStats(ctx context.Context) (*models.Stats, error)
}

type adminService struct {
	users    repository.UserRepository
	orders   repository.OrderRepository
	products ProductService
}

func NewAdminService(users repository.UserRepository, orders repository.OrderRepository, products ProductService) AdminService {
	return &adminService{users: users, orders: orders, products: products}
}

// RequireAdmin checks the role stored for the session's user, not the role
// cached in the session.
func (s *adminService) RequireAdmin(ctx context.Context, session *models.Session) (*models.AdminContext, error) {

	if session == nil {
		return nil, errors.UnauthorizedError("Login required")
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.UnauthorizedError("Login required").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to verify user").WithError(err)
	}

	if !user.IsAdmin() {
		return nil, errors.ForbiddenError("Admin access required")
	}

	return &models.AdminContext{User: user}, nil
}

func (s *adminService) ListAllOrders(ctx context.Context) (orders []*models.AdminOrder, err error) {

	ctx, span := tracer.Start(ctx, "AdminService.ListAllOrders")
	defer func() { endSpan(span, err) }()

	orders, err = s.orders.ListAllOrders(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list orders").WithError(err)
	}

	if orders == nil {
		orders = []*models.AdminOrder{}
	}

	return orders, nil
}

// UpdateOrderStatus overwrites the status unconditionally; any text is accepted.
func (s *adminService) UpdateOrderStatus(ctx context.Context, id string, status string) (order *models.Order, err error) {

	ctx, span := tracer.Start(ctx, "AdminService.UpdateOrderStatus")
	defer func() { endSpan(span, err) }()

	status = utils.SanitizeText(status)
	if status == "" {
		return nil, errors.ValidationError("Status is required")
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	order, err = s.orders.UpdateOrderStatus(ctx, oid, status)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Order not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to update order").WithError(err)
	}

	middleware.LoggerFromContext(ctx).Info("Order status updated", slog.String("orderId", id), slog.String("status", status))

	return order, nil
}

// GetStats sums revenue over every order whatever its status.
func (s *adminService) GetStats(ctx context.Context) (stats *models.Stats, err error) {

	ctx, span := tracer.Start(ctx, "AdminService.GetStats")
	defer func() { endSpan(span, err) }()

	stats = &models.Stats{}

	if stats.TotalOrders, err = s.orders.CountOrders(ctx); err != nil {
		return nil, errors.DatabaseError("Failed to load stats").WithError(err)
	}

	if stats.TotalProducts, err = s.products.CountProducts(ctx); err != nil {
		return nil, err
	}

	if stats.TotalUsers, err = s.users.CountUsers(ctx); err != nil {
		return nil, errors.DatabaseError("Failed to load stats").WithError(err)
	}

	if stats.TotalRevenue, err = s.orders.TotalRevenue(ctx); err != nil {
		return nil, errors.DatabaseError("Failed to load stats").WithError(err)
	}

	return stats, nil
}
