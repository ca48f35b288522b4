package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"katalog/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_UploadAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/images", zerolog.Nop())
	require.NoError(t, err)

	ctx := context.Background()

	err = store.Upload(ctx, "1700000000.png", []byte("png-bytes"), "image/png")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "1700000000.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")

	require.NoError(t, store.Remove(ctx, "1700000000.png"))
	_, err = os.Stat(filepath.Join(dir, "1700000000.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Remove(ctx, "1700000000.png"), "removing a missing object succeeds")
}

func TestLocalStore_RejectsInvalidKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/images", zerolog.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	for _, key := range []string{"", "..", "../escape.png", "nested/key.png", `back\slash.png`} {
		assert.ErrorIs(t, store.Upload(ctx, key, []byte("x"), "image/png"), ErrInvalidKey, key)
		assert.ErrorIs(t, store.Remove(ctx, key), ErrInvalidKey, key)
	}
}

func TestLocalStore_PublicURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		key      string
		expected string
	}{
		{name: "Path prefix", base: "/images", key: "1.jpg", expected: "/images/1.jpg"},
		{name: "Trailing slash", base: "/images/", key: "1.jpg", expected: "/images/1.jpg"},
		{name: "Absolute base", base: "http://localhost:8080/images", key: "1.jpg", expected: "http://localhost:8080/images/1.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewLocalStore(t.TempDir(), tt.base, zerolog.Nop())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, store.PublicURL(tt.key))
		})
	}
}

func TestLocalStore_Handler(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/images", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, store.Upload(context.Background(), "42.txt", []byte("hello"), "text/plain"))

	handler := http.StripPrefix("/images/", store.Handler())

	t.Run("Serves stored object", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/images/42.txt", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "hello", w.Body.String())
	})

	t.Run("No directory listing", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/images/", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestOpen_LocalDriver(t *testing.T) {
	cfg := config.StorageConfig{Driver: config.StorageDriverLocal, LocalDir: t.TempDir()}

	store, handler, err := Open(context.Background(), cfg, "/images/", zerolog.Nop())

	require.NoError(t, err)
	assert.NotNil(t, handler)
	assert.Equal(t, "/images/a.png", store.PublicURL("a.png"))
}

func TestOpen_LocalDriverWithPublicBase(t *testing.T) {
	cfg := config.StorageConfig{
		Driver:        config.StorageDriverLocal,
		LocalDir:      t.TempDir(),
		PublicBaseURL: "http://localhost:8080/images",
	}

	store, _, err := Open(context.Background(), cfg, "/images/", zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/images/a.png", store.PublicURL("a.png"))
}
