package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/trendprints/storefront/internal/api/middleware"
	"github.com/trendprints/storefront/internal/config"
	"github.com/trendprints/storefront/internal/errors"
	"github.com/trendprints/storefront/internal/models"
	repository "github.com/trendprints/storefront/internal/repositories"
	"github.com/trendprints/storefront/internal/repositories/redis"
	"github.com/trendprints/storefront/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	EnsureAdminExists(ctx context.Context, admin config.Admin) error
}

type userService struct {
	repo       repository.UserRepository
	limiter    redis.RateLimitRepository
	bcryptCost int
}

func NewUserService(repo repository.UserRepository, limiter redis.RateLimitRepository, bcryptCost int) UserService {
	return &userService{repo: repo, limiter: limiter, bcryptCost: bcryptCost}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Signup(ctx context.Context, req *models.SignupRequest) (user *models.User, err error) {

	ctx, span := tracer.Start(ctx, "UserService.Signup")
	defer func() { endSpan(span, err) }()

	logger := middleware.LoggerFromContext(ctx)

	username := utils.SanitizeText(req.Username)
	if username == "" {
		return nil, errors.ValidationError("Username is required")
	}

	email := normalizeEmail(req.Email)

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !stdErrors.Is(err, repository.ErrNotFound) {
		return nil, errors.DatabaseError("Failed to check email").WithError(err)
	}

	if existing != nil {
		return nil, errors.DuplicateEntryError("Email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	user = &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		// lost a race with a concurrent signup for the same address
		if stdErrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.DuplicateEntryError("Email already exists").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	logger.Info("User signed up", slog.String("userId", user.ID.Hex()))

	return user, nil
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (result *models.LoginResult, err error) {

	ctx, span := tracer.Start(ctx, "UserService.Login")
	defer func() { endSpan(span, err) }()

	email := normalizeEmail(req.Email)
	remaining := -1

	if s.limiter != nil {
		allowed, left, retryAfter, err := s.limiter.CheckLoginRateLimit(ctx, email)
		if err != nil {
			return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
		}

		if !allowed {
			return &models.LoginResult{
				Message:    "Too many login attempts. Please try again later.",
				RetryAfter: retryAfter,
			}, nil
		}

		remaining = left
	}

	invalid := &models.LoginResult{Message: "Invalid email or password", RemainingTries: remaining}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return invalid, nil
		}

		return nil, errors.DatabaseError("Failed to load user").WithError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return invalid, nil
	}

	return &models.LoginResult{Success: true, User: user, RemainingTries: remaining}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("User not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to load user").WithError(err)
	}

	return user, nil
}

// EnsureAdminExists creates the configured admin account unless an admin
// is already present.
func (s *userService) EnsureAdminExists(ctx context.Context, admin config.Admin) error {

	logger := middleware.LoggerFromContext(ctx)

	count, err := s.repo.CountUsersByRole(ctx, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}

	if count > 0 {
		logger.Info("Admin account present", slog.Int64("admins", count))
		return nil
	}

	if admin.Password == "" {
		logger.Warn("No admin account exists and ADMIN_PASSWORD is not set, skipping bootstrap")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := &models.User{
		Username: admin.Username,
		Email:    normalizeEmail(admin.Email),
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if stdErrors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("admin email %s already belongs to a regular account: %w", user.Email, err)
		}

		return fmt.Errorf("failed to create admin: %w", err)
	}

	logger.Info("✅ Admin account created", slog.String("email", user.Email))

	return nil
}
