package service

import (
	"context"
	stdErrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/trendprints/storefront/internal/errors"
	"github.com/trendprints/storefront/internal/models"
	repository "github.com/trendprints/storefront/internal/repositories"
	"github.com/trendprints/storefront/internal/repositories/redis"
	"github.com/trendprints/storefront/internal/session"
)

// SessionService binds signed cookie tokens to session payloads kept in Redis.
type SessionService interface {
	Start(ctx context.Context, user *models.User) (string, error)
	Resolve(ctx context.Context, token string) (*models.Session, error)
	End(ctx context.Context, token string) error
	TTL() time.Duration
}

type sessionService struct {
	repo  redis.SessionRepository
	codec *session.Codec
}

func NewSessionService(repo redis.SessionRepository, codec *session.Codec) SessionService {
	return &sessionService{repo: repo, codec: codec}
}

func (s *sessionService) TTL() time.Duration {
	return s.codec.TTL()
}

// Start persists a fresh session for user and returns the cookie token.
func (s *sessionService) Start(ctx context.Context, user *models.User) (string, error) {

	sess := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateSession(ctx, sess, s.codec.TTL()); err != nil {
		return "", errors.ThirdPartyError("Failed to start session").WithError(err)
	}

	token, err := s.codec.Encode(sess.ID)
	if err != nil {
		return "", errors.InternalError("Failed to start session").WithError(err)
	}

	return token, nil
}

func (s *sessionService) Resolve(ctx context.Context, token string) (*models.Session, error) {

	id, err := s.codec.Decode(token)
	if err != nil {
		return nil, errors.UnauthorizedError("Invalid session").WithError(err)
	}

	sess, err := s.repo.GetSession(ctx, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.UnauthorizedError("Session expired").WithError(err)
		}

		return nil, errors.ThirdPartyError("Session store unavailable").WithError(err)
	}

	return sess, nil
}

// End destroys the session behind token. Unreadable tokens have nothing to end.
func (s *sessionService) End(ctx context.Context, token string) error {

	id, err := s.codec.Decode(token)
	if err != nil {
		return nil
	}

	if err := s.repo.DeleteSession(ctx, id); err != nil {
		return errors.ThirdPartyError("Failed to end session").WithError(err)
	}

	return nil
}
