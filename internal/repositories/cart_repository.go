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

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, user_id, items, total, created_at, updated_at FROM carts WHERE user_id = $1`

	cart := &models.Cart{}

	var itemsJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, userID.Hex()).Scan(scanID(&cart.ID), scanID(&cart.UserID), &itemsJSON, &cart.Total, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}

	if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	return cart, nil
}

func (r *cartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	prepareCart(cart)

	itemsJSON, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `INSERT INTO carts (id, user_id, items, total, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.DB.ExecContext(dbCtx, query, cart.ID.Hex(), cart.UserID.Hex(), itemsJSON, cart.Total, cart.CreatedAt, cart.UpdatedAt)

	return translate(err)
}

func (r *cartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	prepareCart(cart)
	cart.UpdatedAt = time.Now().UTC()

	itemsJSON, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	// last write wins on the whole document
	query := `INSERT INTO carts (id, user_id, items, total, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET items = EXCLUDED.items, total = EXCLUDED.total, updated_at = EXCLUDED.updated_at`

	if _, err := r.DB.ExecContext(dbCtx, query, cart.ID.Hex(), cart.UserID.Hex(), itemsJSON, cart.Total, cart.CreatedAt, cart.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save the cart: %w", err)
	}

	return nil
}

func (r *cartRepository) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return clearCart(dbCtx, r.DB, userID)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func clearCart(ctx context.Context, db execer, userID primitive.ObjectID) error {

	query := `UPDATE carts SET items = '[]'::jsonb, total = 0, updated_at = $1 WHERE user_id = $2`

	if _, err := db.ExecContext(ctx, query, time.Now().UTC(), userID.Hex()); err != nil {
		return fmt.Errorf("failed to clear the cart: %w", err)
	}

	return nil
}

func prepareCart(cart *models.Cart) {
	now := time.Now().UTC()

	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}

	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}

	if cart.UpdatedAt.IsZero() {
		cart.UpdatedAt = now
	}

	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
}
