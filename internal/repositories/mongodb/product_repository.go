package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/trendprints/storefront/internal/models"
	repository "github.com/trendprints/storefront/internal/repositories"
	"github.com/trendprints/storefront/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type productRepository struct {
	coll *mongo.Collection
}

func NewProductRepo(db *mongo.Database) repository.ProductRepository {
	return &productRepository{coll: db.Collection(ProductsCollection)}
}

func (r *productRepository) CountProducts(ctx context.Context) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	count, err := r.coll.CountDocuments(dbCtx, bson.M{})

	return count, translate(err)
}

func (r *productRepository) InsertProducts(ctx context.Context, products []*models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	docs := make([]any, 0, len(products))

	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}

		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}

		docs = append(docs, p)
	}

	if _, err := r.coll.InsertMany(dbCtx, docs); err != nil {
		return fmt.Errorf("failed to insert products: %w", translate(err))
	}

	return nil
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.coll.Find(dbCtx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := []*models.Product{}
	if err := cursor.All(dbCtx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}
