// Package mongodb implements the repository interfaces on a MongoDB database.
package mongodb

import (
	"errors"
	"fmt"

	repository "github.com/trendprints/storefront/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	UsersCollection    = "users"
	ProductsCollection = "products"
	CartsCollection    = "carts"
	OrdersCollection   = "orders"
)

// Options tunes how the stores use the deployment.
type Options struct {
	// Transactions wraps order placement in a multi document transaction.
	// Requires a replica set.
	Transactions bool
}

func NewRepositories(db *mongo.Database, opts Options) *repository.Repositories {
	return &repository.Repositories{
		User:    NewUserRepo(db),
		Product: NewProductRepo(db),
		Cart:    NewCartRepo(db),
		Order:   NewOrderRepo(db, opts.Transactions),
	}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	default:
		return err
	}
}
