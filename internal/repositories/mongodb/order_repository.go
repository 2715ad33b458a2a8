package mongodb

import (
	"context"
	"errors"
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

type orderRepository struct {
	orders       *mongo.Collection
	carts        *mongo.Collection
	transactions bool
}

func NewOrderRepo(db *mongo.Database, transactions bool) repository.OrderRepository {
	return &orderRepository{
		orders:       db.Collection(OrdersCollection),
		carts:        db.Collection(CartsCollection),
		transactions: transactions,
	}
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

func (r *orderRepository) PlaceOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}

	order.CreatedAt = now
	order.UpdatedAt = now

	if !r.transactions {
		return r.placeOrder(dbCtx, order, true)
	}

	session, err := r.orders.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(dbCtx)

	_, err = session.WithTransaction(dbCtx, func(sc mongo.SessionContext) (any, error) {
		return nil, r.placeOrder(sc, order, false)
	})

	return err
}

// placeOrder inserts then clears. Without a transaction, compensate removes
// the inserted order again when the cart cannot be cleared.
func (r *orderRepository) placeOrder(ctx context.Context, order *models.Order, compensate bool) error {
	if _, err := r.orders.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	err := clearCart(ctx, r.carts, order.UserID)
	if err == nil || !compensate {
		return err
	}

	undoCtx, cancel := utils.WithDBTimeout(context.WithoutCancel(ctx))
	defer cancel()

	if _, delErr := r.orders.DeleteOne(undoCtx, bson.M{"_id": order.ID}); delErr != nil {
		return errors.Join(err, fmt.Errorf("failed to remove order %s: %w", order.ID.Hex(), delErr))
	}

	return err
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cursor, err := r.orders.Find(dbCtx, bson.M{"userId": userID}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := []*models.Order{}
	if err := cursor.All(dbCtx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) ListAllOrders(ctx context.Context) ([]*models.AdminOrder, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: newestFirst}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: UsersCollection},
			{Key: "localField", Value: "userId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "user.password", Value: 0},
			{Key: "user.role", Value: 0},
			{Key: "user.createdAt", Value: 0},
			{Key: "user._id", Value: 0},
		}}},
	}

	cursor, err := r.orders.Aggregate(dbCtx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := []*models.AdminOrder{}
	if err := cursor.All(dbCtx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	if err := r.orders.FindOneAndUpdate(dbCtx, bson.M{"_id": id}, update, opts).Decode(&order); err != nil {
		return nil, translate(err)
	}

	return &order, nil
}

func (r *orderRepository) CountOrders(ctx context.Context) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	count, err := r.orders.CountDocuments(dbCtx, bson.M{})

	return count, translate(err)
}

// TotalRevenue sums every order total regardless of status.
func (r *orderRepository) TotalRevenue(ctx context.Context) (float64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$total"}}},
		}}},
	}

	cursor, err := r.orders.Aggregate(dbCtx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}

	var result []struct {
		Total float64 `bson:"total"`
	}

	if err := cursor.All(dbCtx, &result); err != nil {
		return 0, fmt.Errorf("failed to decode revenue: %w", err)
	}

	if len(result) == 0 {
		return 0, nil
	}

	return result[0].Total, nil
}
