package mongodb

import (
	"context"
	"time"

	"github.com/trendprints/storefront/internal/models"
	repository "github.com/trendprints/storefront/internal/repositories"
	"github.com/trendprints/storefront/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepository struct {
	coll *mongo.Collection
}

func NewUserRepo(db *mongo.Database) repository.UserRepository {
	return &userRepository{coll: db.Collection(UsersCollection)}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := r.coll.InsertOne(dbCtx, user)

	return translate(err)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(dbCtx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(dbCtx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (r *userRepository) CountUsers(ctx context.Context) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	count, err := r.coll.CountDocuments(dbCtx, bson.M{})

	return count, translate(err)
}

func (r *userRepository) CountUsersByRole(ctx context.Context, role models.Role) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	count, err := r.coll.CountDocuments(dbCtx, bson.M{"role": role})

	return count, translate(err)
}
