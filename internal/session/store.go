package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"katalog/internal/model"

	"github.com/redis/go-redis/v9"
)

// TokenStore keeps live sessions keyed by their opaque token.
type TokenStore interface {
	// Save stores the session; it expires after ttl.
	Save(ctx context.Context, s model.Session, ttl time.Duration) error

	// Load returns the session for token, or nil when it is absent or expired.
	Load(ctx context.Context, token string) (*model.Session, error)

	// Delete removes the session for token. Deleting an absent token succeeds.
	Delete(ctx context.Context, token string) error
}

// redisTokenStore stores each session as a hash under session:<token>.
type redisTokenStore struct {
	client redis.Cmdable
}

// NewRedisTokenStore creates a Redis-backed token store.
func NewRedisTokenStore(client redis.Cmdable) TokenStore {
	return &redisTokenStore{client: client}
}

func (s *redisTokenStore) key(token string) string {
	return "session:" + token
}

func (s *redisTokenStore) Save(ctx context.Context, sess model.Session, ttl time.Duration) error {
	key := s.key(sess.Token)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			"user_id", sess.UserID,
			"email", sess.Email,
			"created_at", sess.CreatedAt.Unix(),
		)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *redisTokenStore) Load(ctx context.Context, token string) (*model.Session, error) {
	fields, err := s.client.HGetAll(ctx, s.key(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	userID, err := strconv.ParseInt(fields["user_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("load session: corrupt user_id: %w", err)
	}
	createdAt, err := strconv.ParseInt(fields["created_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("load session: corrupt created_at: %w", err)
	}

	return &model.Session{
		Token:     token,
		UserID:    userID,
		Email:     fields["email"],
		CreatedAt: time.Unix(createdAt, 0).UTC(),
	}, nil
}

func (s *redisTokenStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
