// Package asset manages the lifecycle of product images: upload to object
// storage, public URL resolution and removal.
package asset

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"katalog/internal/metrics"
	"katalog/internal/model"
	"katalog/internal/storage"

	"github.com/rs/zerolog"
)

// Pipeline uploads, resolves and removes product images.
type Pipeline interface {
	// Upload stores data under a fresh key and returns its public URL.
	// Identical content uploaded twice yields two objects and two URLs.
	Upload(ctx context.Context, data []byte, fileNameHint string) (string, error)

	// ResolveURL turns a stored image reference into a fetchable URL.
	ResolveURL(ref string) string

	// Remove deletes the object behind a stored image reference. References
	// the store does not hold are left alone.
	Remove(ctx context.Context, ref string) error

	// Owns reports whether ref addresses an object in this pipeline's store.
	Owns(ref string) bool
}

type pipeline struct {
	store    storage.ObjectStore
	keys     *KeyGenerator
	maxBytes int64
	logger   zerolog.Logger
}

// NewPipeline creates an image pipeline on top of an object store. Uploads
// larger than maxBytes are rejected; maxBytes <= 0 disables the limit.
func NewPipeline(store storage.ObjectStore, keys *KeyGenerator, maxBytes int64, logger zerolog.Logger) Pipeline {
	if keys == nil {
		keys = NewKeyGenerator(nil)
	}
	return &pipeline{
		store:    store,
		keys:     keys,
		maxBytes: maxBytes,
		logger:   logger.With().Str("component", "asset-pipeline").Logger(),
	}
}

// Upload stores data under a time-derived key and returns its public URL.
func (p *pipeline) Upload(ctx context.Context, data []byte, fileNameHint string) (string, error) {
	if len(data) == 0 {
		return "", model.NewValidationError("image file is empty")
	}
	if p.maxBytes > 0 && int64(len(data)) > p.maxBytes {
		return "", model.NewValidationError(fmt.Sprintf("image exceeds the %d byte limit", p.maxBytes))
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", model.NewValidationError(fmt.Sprintf("file is not an image (%s)", contentType))
	}

	key := p.keys.Next(fileNameHint)
	if err := p.store.Upload(ctx, key, data, contentType); err != nil {
		metrics.AssetOperationsTotal.WithLabelValues("upload", metrics.ResultError).Inc()
		p.logger.Error().Err(err).Str("key", key).Msg("image upload failed")
		return "", model.NewAssetError("failed to upload image", err)
	}

	metrics.AssetOperationsTotal.WithLabelValues("upload", metrics.ResultSuccess).Inc()
	metrics.AssetUploadBytes.Observe(float64(len(data)))

	url := p.ResolveURL(key)
	p.logger.Info().
		Str("key", key).
		Str("content_type", contentType).
		Int("bytes", len(data)).
		Str("url", url).
		Msg("image uploaded")

	return url, nil
}

// ResolveURL passes absolute URLs and rooted paths through unchanged and
// prefixes bare keys with the store's public base.
func (p *pipeline) ResolveURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || isAbsoluteURL(ref) || strings.HasPrefix(ref, "/") {
		return ref
	}
	return p.store.PublicURL(ref)
}

// Remove deletes the object named by the trailing segment of ref.
func (p *pipeline) Remove(ctx context.Context, ref string) error {
	key := KeyFromRef(ref)
	if key == "" {
		return model.NewAssetError(fmt.Sprintf("cannot derive storage key from %q", ref), nil)
	}

	if !p.Owns(ref) {
		p.logger.Debug().Str("ref", ref).Msg("image is not held by this store, skipping removal")
		return nil
	}

	if err := p.store.Remove(ctx, key); err != nil {
		metrics.AssetOperationsTotal.WithLabelValues("remove", metrics.ResultError).Inc()
		return model.NewAssetError("failed to remove image", err)
	}

	metrics.AssetOperationsTotal.WithLabelValues("remove", metrics.ResultSuccess).Inc()
	p.logger.Info().Str("key", key).Msg("image removed")

	return nil
}

// Owns treats bare keys and rooted paths as stored objects. An absolute URL
// is owned only when it is the store's public URL for its trailing key.
func (p *pipeline) Owns(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return false
	}
	if !isAbsoluteURL(ref) {
		return true
	}

	key := KeyFromRef(ref)
	if key == "" {
		return false
	}

	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String() == p.store.PublicURL(key)
}
