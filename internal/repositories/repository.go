package repository

import (
	"context"
	"errors"

	"github.com/trendprints/storefront/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique key.
	ErrDuplicate = errors.New("duplicate record")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	CountUsers(ctx context.Context) (int64, error)
	CountUsersByRole(ctx context.Context, role models.Role) (int64, error)
}

type ProductRepository interface {
	CountProducts(ctx context.Context) (int64, error)
	InsertProducts(ctx context.Context, products []*models.Product) error
	// ListProducts returns the catalog newest first.
	ListProducts(ctx context.Context) ([]*models.Product, error)
}

type CartRepository interface {
	GetCartByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	CreateCart(ctx context.Context, cart *models.Cart) error
	// SaveCart replaces the stored cart of cart.UserID, creating it if needed.
	SaveCart(ctx context.Context, cart *models.Cart) error
	ClearCart(ctx context.Context, userID primitive.ObjectID) error
}

type OrderRepository interface {
	// PlaceOrder persists the order and empties the owner's cart as one unit.
	PlaceOrder(ctx context.Context, order *models.Order) error
	ListOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Order, error)
	ListAllOrders(ctx context.Context) ([]*models.AdminOrder, error)
	UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error)
	CountOrders(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
}

// Repositories groups the stores behind one storage driver.
type Repositories struct {
	User    UserRepository
	Product ProductRepository
	Cart    CartRepository
	Order   OrderRepository
}
