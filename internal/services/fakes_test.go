package service_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/trendprints/storefront/internal/models"
	repository "github.com/trendprints/storefront/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memCartRepo is an in-memory CartRepository storing copies of each cart.
type memCartRepo struct {
	mu    sync.Mutex
	carts map[primitive.ObjectID]*models.Cart
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[primitive.ObjectID]*models.Cart)}
}

func cloneCart(c *models.Cart) *models.Cart {
	cp := *c
	cp.Items = slices.Clone(c.Items)

	if cp.Items == nil {
		cp.Items = []models.CartItem{}
	}

	return &cp
}

func (r *memCartRepo) GetCartByUserID(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}

	return cloneCart(cart), nil
}

func (r *memCartRepo) CreateCart(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[cart.UserID]; ok {
		return repository.ErrDuplicate
	}

	cart.ID = primitive.NewObjectID()
	r.carts[cart.UserID] = cloneCart(cart)

	return nil
}

func (r *memCartRepo) SaveCart(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}

	cart.UpdatedAt = time.Now().UTC()
	r.carts[cart.UserID] = cloneCart(cart)

	return nil
}

func (r *memCartRepo) ClearCart(_ context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart, ok := r.carts[userID]; ok {
		cart.Items = []models.CartItem{}
		cart.Total = 0
	}

	return nil
}

// memOrderRepo places orders and clears carts held by a memCartRepo.
type memOrderRepo struct {
	mu     sync.Mutex
	carts  *memCartRepo
	orders []*models.Order
}

func (r *memOrderRepo) PlaceOrder(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now().UTC()
	order.UpdatedAt = order.CreatedAt
	r.orders = append(r.orders, order)
	r.mu.Unlock()

	return r.carts.ClearCart(ctx, order.UserID)
}

func (r *memOrderRepo) ListOrdersByUser(_ context.Context, userID primitive.ObjectID) ([]*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Order

	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID == userID {
			out = append(out, r.orders[i])
		}
	}

	return out, nil
}

func (r *memOrderRepo) ListAllOrders(context.Context) ([]*models.AdminOrder, error) {
	return nil, nil
}

func (r *memOrderRepo) UpdateOrderStatus(context.Context, primitive.ObjectID, string) (*models.Order, error) {
	return nil, repository.ErrNotFound
}

func (r *memOrderRepo) CountOrders(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.orders)), nil
}

func (r *memOrderRepo) TotalRevenue(context.Context) (float64, error) {
	return 0, nil
}
