// Package session implements admin sign-in, session lookup and the gate that
// protects admin views.
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"katalog/internal/metrics"
	"katalog/internal/model"
	"katalog/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is enforced when provisioning admins.
const MinPasswordLength = 8

// Service issues, checks and revokes admin sessions.
type Service interface {
	// GetSession returns the live session for token, or nil when there is none.
	GetSession(ctx context.Context, token string) (*model.Session, error)

	// SignInWithPassword exchanges credentials for a new session.
	SignInWithPassword(ctx context.Context, email, password string) (*model.Session, error)

	// SignOut revokes the session for token.
	SignOut(ctx context.Context, token string) error
}

type service struct {
	users  repository.AdminUserRepository
	store  TokenStore
	ttl    time.Duration
	logger zerolog.Logger

	// dummyHash is compared against when the email is unknown so that both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

// NewService creates a session service.
func NewService(users repository.AdminUserRepository, store TokenStore, ttl time.Duration, logger zerolog.Logger) Service {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("katalog-dummy-password"), bcrypt.DefaultCost)
	return &service{
		users:     users,
		store:     store,
		ttl:       ttl,
		logger:    logger.With().Str("service", "session").Logger(),
		dummyHash: dummy,
	}
}

func (s *service) GetSession(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, nil
	}

	sess, err := s.store.Load(ctx, token)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load session")
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return sess, nil
}

func (s *service) SignInWithPassword(ctx context.Context, email, password string) (*model.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		metrics.SignInsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, model.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, model.NewBackendError("failed to look up admin", err)
	}

	hash := s.dummyHash
	if user != nil {
		hash = []byte(user.PasswordHash)
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil || user == nil {
		metrics.SignInsTotal.WithLabelValues("invalid_credentials").Inc()
		s.logger.Warn().Str("email", email).Msg("sign-in rejected")
		return nil, model.ErrInvalidCredentials
	}

	sess := model.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := s.store.Save(ctx, sess, s.ttl); err != nil {
		metrics.SignInsTotal.WithLabelValues(metrics.ResultError).Inc()
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to store session")
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	metrics.SignInsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	s.logger.Info().Int64("user_id", user.ID).Msg("admin signed in")

	return &sess, nil
}

func (s *service) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.store.Delete(ctx, token); err != nil {
		s.logger.Error().Err(err).Msg("failed to revoke session")
		return fmt.Errorf("failed to sign out: %w", err)
	}

	s.logger.Info().Msg("admin signed out")
	return nil
}

// CreateAdmin provisions an admin account with a bcrypt-hashed password.
func CreateAdmin(ctx context.Context, users repository.AdminUserRepository, email, password string) (*model.AdminUser, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, model.NewValidationError("a valid email is required")
	}
	if len(password) < MinPasswordLength {
		return nil, model.NewValidationError(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return users.Create(ctx, email, string(hash))
}
