package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"katalog/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type adminUserRepository struct {
	db     DB
	logger zerolog.Logger
}

// NewAdminUserRepository creates a PostgreSQL-backed admin account repository.
func NewAdminUserRepository(db DB, logger zerolog.Logger) AdminUserRepository {
	return &adminUserRepository{
		db:     db,
		logger: logger.With().Str("repository", "admin_user").Logger(),
	}
}

// Create inserts a new admin. Emails are stored lower-cased.
func (r *adminUserRepository) Create(ctx context.Context, email, passwordHash string) (*model.AdminUser, error) {
	query := `
		INSERT INTO admin_users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email, password_hash, created_at
	`

	var u model.AdminUser
	err := r.db.QueryRow(ctx, query, normaliseEmail(email), passwordHash).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to insert admin user")
		return nil, fmt.Errorf("failed to insert admin user: %w", err)
	}

	return &u, nil
}

// GetByEmail retrieves an admin by email.
func (r *adminUserRepository) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM admin_users
		WHERE email = $1
	`

	var u model.AdminUser
	err := r.db.QueryRow(ctx, query, normaliseEmail(email)).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query admin user")
		return nil, fmt.Errorf("failed to query admin user: %w", err)
	}

	return &u, nil
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
