// Package storage holds the object storage drivers for product images.
package storage

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"katalog/internal/config"

	"github.com/rs/zerolog"
)

// ObjectStore stores binary objects under keys and exposes them at public URLs.
type ObjectStore interface {
	// Upload stores data under key, replacing nothing: keys are expected to be new.
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// PublicURL returns the URL at which key can be fetched anonymously.
	PublicURL(key string) string

	// Remove deletes the object stored under key.
	Remove(ctx context.Context, key string) error
}

// ErrInvalidKey is returned for keys that are empty or contain path elements.
var ErrInvalidKey = errors.New("invalid object key")

func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return ErrInvalidKey
	}
	return nil
}

// joinURL appends an escaped key to a base URL or path.
func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(key)
}

// Open builds the store selected by cfg.Driver. For the local driver the
// returned handler serves the stored files and localBase is used when no
// public base URL is configured; for S3 the handler is nil.
func Open(ctx context.Context, cfg config.StorageConfig, localBase string, logger zerolog.Logger) (ObjectStore, http.Handler, error) {
	if cfg.Driver == config.StorageDriverS3 {
		store, err := NewS3Store(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("bucket", cfg.Bucket).Msg("using S3 object storage for images")
		return store, nil, nil
	}

	base := cfg.PublicBaseURL
	if base == "" {
		base = localBase
	}
	local, err := NewLocalStore(cfg.LocalDir, base, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Str("dir", cfg.LocalDir).Msg("using local file system for images")
	return local, local.Handler(), nil
}
