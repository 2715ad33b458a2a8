// Package mocks holds testify mocks of the service interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/trendprints/storefront/internal/config"
	"github.com/trendprints/storefront/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService struct {
	mock.Mock
}

func (m *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*models.User)

	return user, args.Error(1)
}

func (m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*models.LoginResult)

	return result, args.Error(1)
}

func (m *UserService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)

	return user, args.Error(1)
}

func (m *UserService) EnsureAdminExists(ctx context.Context, admin config.Admin) error {
	return m.Called(ctx, admin).Error(0)
}

type SessionService struct {
	mock.Mock
}

func (m *SessionService) Start(ctx context.Context, user *models.User) (string, error) {
	args := m.Called(ctx, user)

	return args.String(0), args.Error(1)
}

func (m *SessionService) Resolve(ctx context.Context, token string) (*models.Session, error) {
	args := m.Called(ctx, token)
	session, _ := args.Get(0).(*models.Session)

	return session, args.Error(1)
}

func (m *SessionService) End(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *SessionService) TTL() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

type ProductService struct {
	mock.Mock
}

func (m *ProductService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]*models.Product)

	return products, args.Error(1)
}

func (m *ProductService) CountProducts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductService) SeedProducts(ctx context.Context) (int, error) {
	args := m.Called(ctx)

	return args.Int(0), args.Error(1)
}

type CartService struct {
	mock.Mock
}

func (m *CartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	cart, _ := args.Get(0).(*models.Cart)

	return cart, args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, userID primitive.ObjectID, req *models.AddItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, req)
	cart, _ := args.Get(0).(*models.Cart)

	return cart, args.Error(1)
}

func (m *CartService) RemoveItem(ctx context.Context, userID primitive.ObjectID, req *models.RemoveItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, req)
	cart, _ := args.Get(0).(*models.Cart)

	return cart, args.Error(1)
}

func (m *CartService) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	return m.Called(ctx, userID).Error(0)
}

type OrderService struct {
	mock.Mock
}

func (m *OrderService) PlaceOrder(ctx context.Context, userID primitive.ObjectID, req *models.PlaceOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, userID, req)
	order, _ := args.Get(0).(*models.Order)

	return order, args.Error(1)
}

func (m *OrderService) ListOrders(ctx context.Context, userID primitive.ObjectID) []*models.Order {
	orders, _ := m.Called(ctx, userID).Get(0).([]*models.Order)

	return orders
}

type AdminService struct {
	mock.Mock
}

func (m *AdminService) RequireAdmin(ctx context.Context, session *models.Session) (*models.AdminContext, error) {
	args := m.Called(ctx, session)
	admin, _ := args.Get(0).(*models.AdminContext)

	return admin, args.Error(1)
}

func (m *AdminService) ListAllOrders(ctx context.Context) ([]*models.AdminOrder, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*models.AdminOrder)

	return orders, args.Error(1)
}

func (m *AdminService) UpdateOrderStatus(ctx context.Context, id string, status string) (*models.Order, error) {
	args := m.Called(ctx, id, status)
	order, _ := args.Get(0).(*models.Order)

	return order, args.Error(1)
}

func (m *AdminService) GetStats(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*models.Stats)

	return stats, args.Error(1)
}

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) OrderPlaced(ctx context.Context, order *models.Order) {
	m.Called(ctx, order)
}
