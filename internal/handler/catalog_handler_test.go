package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"katalog/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogHandler_Bestsellers(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Lists bestsellers only", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewCatalogHandler(mockService, logger)

		bestsellers := []model.Product{testProducts()[2]}
		mockService.On("ListBestsellers", mock.Anything).Return(bestsellers, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
		w := httptest.NewRecorder()

		handler.Bestsellers(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var view model.CatalogView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		require.Len(t, view.Products, 1)
		assert.True(t, view.Products[0].Bestseller)
		assert.Equal(t, []string{"makanan"}, view.Categories)
		mockService.AssertNotCalled(t, "ListAll", mock.Anything)
	})

	t.Run("Service error", func(t *testing.T) {
		mockService := new(MockProductService)
		handler := NewCatalogHandler(mockService, logger)

		mockService.On("ListBestsellers", mock.Anything).
			Return(nil, model.NewBackendError("failed to list products", errors.New("database error")))

		req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
		w := httptest.NewRecorder()

		handler.Bestsellers(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestWriteDomainError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"Validation", model.NewValidationError("price is required"), http.StatusBadRequest, model.ErrCodeValidation},
		{"Not found", model.ErrProductNotFound, http.StatusNotFound, model.ErrCodeProductNotFound},
		{"Auth", model.ErrInvalidCredentials, http.StatusUnauthorized, model.ErrCodeInvalidCreds},
		{"Asset", model.NewAssetError("failed to upload image", nil), http.StatusBadGateway, model.ErrCodeAsset},
		{"Backend", model.NewBackendError("failed to list products", errors.New("boom")), http.StatusInternalServerError, model.ErrCodeBackend},
		{"Plain error", errors.New("boom"), http.StatusInternalServerError, model.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			writeDomainError(w, tt.err, zerolog.Nop())

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
		})
	}
}
