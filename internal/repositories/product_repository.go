package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/trendprints/storefront/internal/models"
	"github.com/trendprints/storefront/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) CountProducts(ctx context.Context) (int64, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int64
	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM products`).Scan(&count)

	return count, translate(err)
}

func (r *productRepository) InsertProducts(ctx context.Context, products []*models.Product) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO products (id, name, price, image, category, description, stock, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now().UTC()

	for _, p := range products {

		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}

		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}

		if _, err := tx.ExecContext(dbCtx, query, p.ID.Hex(), p.Name, p.Price, p.Image, p.Category, p.Description, p.Stock, p.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert product %q: %w", p.Name, translate(err))
		}
	}

	return tx.Commit()
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, name, price, image, category, description, stock, created_at FROM products ORDER BY created_at DESC, id DESC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}

	for rows.Next() {
		p := &models.Product{}

		if err := rows.Scan(scanID(&p.ID), &p.Name, &p.Price, &p.Image, &p.Category, &p.Description, &p.Stock, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
