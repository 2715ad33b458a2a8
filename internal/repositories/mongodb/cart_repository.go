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

type cartRepository struct {
	coll *mongo.Collection
}

func NewCartRepo(db *mongo.Database) repository.CartRepository {
	return &cartRepository{coll: db.Collection(CartsCollection)}
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var cart models.Cart
	if err := r.coll.FindOne(dbCtx, bson.M{"userId": userID}).Decode(&cart); err != nil {
		return nil, translate(err)
	}

	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	return &cart, nil
}

func (r *cartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()

	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}

	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	cart.CreatedAt = now
	cart.UpdatedAt = now

	_, err := r.coll.InsertOne(dbCtx, cart)

	return translate(err)
}

func (r *cartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	cart.UpdatedAt = time.Now().UTC()

	// last write wins on the whole document
	update := bson.M{
		"$set": bson.M{
			"items":     cart.Items,
			"total":     cart.Total,
			"updatedAt": cart.UpdatedAt,
		},
		"$setOnInsert": bson.M{"createdAt": cart.UpdatedAt},
	}

	if _, err := r.coll.UpdateOne(dbCtx, bson.M{"userId": cart.UserID}, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to save the cart: %w", err)
	}

	return nil
}

func (r *cartRepository) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return clearCart(dbCtx, r.coll, userID)
}

func clearCart(ctx context.Context, coll *mongo.Collection, userID primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"items": bson.A{}, "total": 0.0, "updatedAt": time.Now().UTC()}}

	if _, err := coll.UpdateOne(ctx, bson.M{"userId": userID}, update); err != nil {
		return fmt.Errorf("failed to clear the cart: %w", err)
	}

	return nil
}
