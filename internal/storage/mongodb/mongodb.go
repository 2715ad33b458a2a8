// Package mongodb connects to the document store and keeps its collections
// validated and indexed.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/trendprints/storefront/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const namespaceExists = 48

// Connect dials the deployment and waits for a primary to answer.
func Connect(ctx context.Context, cfg config.Mongo) (*mongo.Client, error) {

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI).SetTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return client, nil
}

type collectionSpec struct {
	name    string
	schema  bson.M
	indexes []mongo.IndexModel
}

var collections = []collectionSpec{
	{
		name: "users",
		schema: bson.M{
			"bsonType": "object",
			"required": bson.A{"username", "email", "password", "role"},
			"properties": bson.M{
				"username": bson.M{"bsonType": "string"},
				"email":    bson.M{"bsonType": "string"},
				"password": bson.M{"bsonType": "string"},
				"role":     bson.M{"enum": bson.A{"user", "admin"}},
			},
		},
		indexes: []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		},
	},
	{
		name: "products",
		schema: bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "price"},
			"properties": bson.M{
				"name":  bson.M{"bsonType": "string"},
				"price": bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}, "exclusiveMinimum": true, "minimum": 0},
				"stock": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
			},
		},
		indexes: []mongo.IndexModel{
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	},
	{
		name: "carts",
		schema: bson.M{
			"bsonType": "object",
			"required": bson.A{"userId", "items", "total"},
			"properties": bson.M{
				"userId": bson.M{"bsonType": "objectId"},
				"items": bson.M{
					"bsonType": "array",
					"items": bson.M{
						"bsonType": "object",
						"required": bson.A{"productId", "quantity"},
						"properties": bson.M{
							"quantity": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 1},
						},
					},
				},
			},
		},
		indexes: []mongo.IndexModel{
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	},
	{
		name: "orders",
		schema: bson.M{
			"bsonType": "object",
			"required": bson.A{"userId", "items", "total", "status", "paymentMethod", "shippingAddress"},
			"properties": bson.M{
				"userId": bson.M{"bsonType": "objectId"},
				"items":  bson.M{"bsonType": "array", "minItems": 1},
				"status": bson.M{"bsonType": "string"},
				"shippingAddress": bson.M{
					"bsonType": "object",
					"required": bson.A{"fullName", "phone", "address", "city", "pincode"},
				},
			},
		},
		indexes: []mongo.IndexModel{
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	},
}

// Migrate creates each collection with its validator, or refreshes the
// validator of an existing one, and ensures the indexes.
func Migrate(ctx context.Context, db *mongo.Database) error {

	for _, coll := range collections {

		validator := bson.M{"$jsonSchema": coll.schema}

		err := db.CreateCollection(ctx, coll.name, options.CreateCollection().SetValidator(validator))

		var cmdErr mongo.CommandError
		switch {
		case err == nil:
		case errors.As(err, &cmdErr) && cmdErr.Code == namespaceExists:
			if err := db.RunCommand(ctx, bson.D{{Key: "collMod", Value: coll.name}, {Key: "validator", Value: validator}}).Err(); err != nil {
				return fmt.Errorf("failed to update validator of %s: %w", coll.name, err)
			}
		default:
			return fmt.Errorf("failed to create collection %s: %w", coll.name, err)
		}

		if _, err := db.Collection(coll.name).Indexes().CreateMany(ctx, coll.indexes); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll.name, err)
		}
	}

	return nil
}
