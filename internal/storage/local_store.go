package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// LocalStore implements ObjectStore on a directory of the local file system.
// It is meant for development; objects are served by Handler.
type LocalStore struct {
	dir           string
	publicBaseURL string
	logger        zerolog.Logger
}

// NewLocalStore creates a directory-backed store. publicBaseURL is the URL or
// path prefix under which Handler is mounted.
func NewLocalStore(dir, publicBaseURL string, logger zerolog.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir %s: %w", dir, err)
	}

	return &LocalStore{
		dir:           dir,
		publicBaseURL: publicBaseURL,
		logger:        logger.With().Str("component", "local-object-store").Logger(),
	}, nil
}

// Upload writes data to a file named key. The write goes through a temporary
// file so readers never see a partial object.
func (s *LocalStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if err := validateKey(key); err != nil {
		return fmt.Errorf("upload %q: %w", key, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to create temp file")
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.logger.Error().Err(err).Str("key", key).Msg("failed to write object")
		return fmt.Errorf("failed to write object %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close object %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, key)); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to move object into place")
		return fmt.Errorf("failed to store object %s: %w", key, err)
	}

	s.logger.Debug().
		Str("key", key).
		Str("content_type", contentType).
		Int("bytes", len(data)).
		Msg("object stored")

	return nil
}

// PublicURL returns the URL of key under the configured prefix.
func (s *LocalStore) PublicURL(key string) string {
	return joinURL(s.publicBaseURL, key)
}

// Remove deletes the file named key. Removing a missing object succeeds, as it
// does on S3.
func (s *LocalStore) Remove(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to remove object")
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}

	return nil
}

// Handler serves stored objects. Mount it with http.StripPrefix. Directory
// listings are not served.
func (s *LocalStore) Handler() http.Handler {
	files := http.FileServer(http.Dir(s.dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") || r.URL.Path == "" {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
