package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/trendprints/storefront/internal/models"
	"github.com/trendprints/storefront/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `o.id, o.user_id, o.items, o.total, o.status, o.payment_method, o.shipping_address, o.created_at, o.updated_at`

/*
Insert the order
Empty the owner's cart
Both or neither
*/
func (r *orderRepository) PlaceOrder(ctx context.Context, order *models.Order) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}

	order.CreatedAt = now
	order.UpdatedAt = now

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	addressJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping address: %w", err)
	}

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO orders (id, user_id, items, total, status, payment_method, shipping_address, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err := tx.ExecContext(dbCtx, query, order.ID.Hex(), order.UserID.Hex(), itemsJSON, order.Total, order.Status, order.PaymentMethod, addressJSON, order.CreatedAt, order.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	if err := clearCart(dbCtx, tx, order.UserID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.user_id = $1 ORDER BY o.created_at DESC, o.id DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, userID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*models.Order{}

	for rows.Next() {
		order := &models.Order{}

		if err := scanOrder(rows, order); err != nil {
			return nil, err
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) ListAllOrders(ctx context.Context) ([]*models.AdminOrder, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + `, u.username, u.email FROM orders o LEFT JOIN users u ON u.id = o.user_id ORDER BY o.created_at DESC, o.id DESC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*models.AdminOrder{}

	for rows.Next() {
		order := &models.AdminOrder{}

		var username, email sql.NullString

		if err := scanOrder(rows, &order.Order, &username, &email); err != nil {
			return nil, err
		}

		// owner may have been removed, orders keep a weak reference
		if username.Valid {
			order.User = &models.OrderOwner{Username: username.String, Email: email.String}
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE orders o SET status = $1, updated_at = $2 WHERE o.id = $3 RETURNING ` + orderColumns

	order := &models.Order{}

	if err := scanOrder(r.DB.QueryRowContext(dbCtx, query, status, time.Now().UTC(), id.Hex()), order); err != nil {
		return nil, translate(err)
	}

	return order, nil
}

func (r *orderRepository) CountOrders(ctx context.Context) (int64, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int64
	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders`).Scan(&count)

	return count, translate(err)
}

// TotalRevenue sums every order total regardless of status.
func (r *orderRepository) TotalRevenue(ctx context.Context) (float64, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var revenue float64
	err := r.DB.QueryRowContext(dbCtx, `SELECT COALESCE(SUM(total), 0) FROM orders`).Scan(&revenue)

	return revenue, translate(err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner, order *models.Order, extra ...any) error {

	var itemsJSON, addressJSON []byte

	dest := []any{scanID(&order.ID), scanID(&order.UserID), &itemsJSON, &order.Total, &order.Status, &order.PaymentMethod, &addressJSON, &order.CreatedAt, &order.UpdatedAt}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return err
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	if err := json.Unmarshal(addressJSON, &order.ShippingAddress); err != nil {
		return fmt.Errorf("failed to unmarshal shipping address: %w", err)
	}

	return nil
}
