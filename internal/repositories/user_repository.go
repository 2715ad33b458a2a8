package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/trendprints/storefront/internal/models"
	"github.com/trendprints/storefront/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
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

	query := `INSERT INTO users (id, username, email, password, role, created_at) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(dbCtx, query, user.ID.Hex(), user.Username, user.Email, user.Password, string(user.Role), user.CreatedAt)

	return translate(err)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, username, email, password, role, created_at FROM users WHERE email = $1`

	return r.scanUser(r.DB.QueryRowContext(dbCtx, query, email))
}

func (r *userRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, username, email, password, role, created_at FROM users WHERE id = $1`

	return r.scanUser(r.DB.QueryRowContext(dbCtx, query, id.Hex()))
}

func (r *userRepository) CountUsers(ctx context.Context) (int64, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int64
	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM users`).Scan(&count)

	return count, translate(err)
}

func (r *userRepository) CountUsersByRole(ctx context.Context, role models.Role) (int64, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int64
	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM users WHERE role = $1`, string(role)).Scan(&count)

	return count, translate(err)
}

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {

	user := &models.User{}
	var role string

	if err := row.Scan(scanID(&user.ID), &user.Username, &user.Email, &user.Password, &role, &user.CreatedAt); err != nil {
		return nil, translate(err)
	}

	user.Role = models.Role(role)

	return user, nil
}
