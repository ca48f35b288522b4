package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"katalog/internal/asset"
	"katalog/internal/model"
	"katalog/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProductService_DeleteKeepsOtherProductsImages runs the façade against a
// real local store so image files can be observed on disk and over HTTP.
func TestProductService_DeleteKeepsOtherProductsImages(t *testing.T) {
	ctx := context.Background()

	store, err := storage.NewLocalStore(t.TempDir(), "/images/", zerolog.Nop())
	require.NoError(t, err)
	images := asset.NewPipeline(store, nil, 1<<20, zerolog.Nop())
	svc := NewProductService(newMemoryProductRepository(), images, zerolog.Nop())

	files := http.StripPrefix("/images/", store.Handler())
	fetch := func(ref string) int {
		w := httptest.NewRecorder()
		files.ServeHTTP(w, httptest.NewRequest(http.MethodGet, ref, nil))
		return w.Code
	}

	esTeh := model.ProductFields{Name: "Es Teh Manis", Category: "minuman", Price: 5000}

	a, err := svc.Create(ctx, nasiGoreng(), model.PendingImage(imageBytes, "nasi.png"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, fetch(a.ImageRef))

	t.Run("Create cannot reuse a stored image", func(t *testing.T) {
		_, err := svc.Create(ctx, esTeh, model.ExistingImage(a.ImageRef))

		assert.Equal(t, model.KindValidation, model.KindOf(err))
	})

	b, err := svc.Create(ctx, esTeh, model.PendingImage(imageBytes, "teh.png"))
	require.NoError(t, err)

	t.Run("Update cannot point at another product's image", func(t *testing.T) {
		_, err := svc.Update(ctx, b.ID, b.Fields(), model.ExistingImage(a.ImageRef))

		assert.Equal(t, model.KindValidation, model.KindOf(err))

		got, err := svc.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ImageRef, got.ImageRef)
	})

	// An absolute URL that happens to end in A's key is not held by the
	// store, so deleting its product must not touch A's file.
	c, err := svc.Create(ctx, esTeh, model.ExistingImage("http://katalog.example.com"+a.ImageRef))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, b.ID, b.ImageRef))
	require.NoError(t, svc.Delete(ctx, c.ID, c.ImageRef))

	assert.Equal(t, http.StatusNotFound, fetch(b.ImageRef))
	assert.Equal(t, http.StatusOK, fetch(a.ImageRef))

	survivor, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, fetch(survivor.ImageRef))
}
