package handler

import (
	"net/http"

	"katalog/internal/catalog"
	"katalog/internal/model"
	"katalog/internal/service"

	"github.com/rs/zerolog"
)

// CatalogHandler serves the public bestseller catalogue.
type CatalogHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new public catalogue handler.
func NewCatalogHandler(service service.ProductService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// Bestsellers handles GET /api/catalog requests. The list is scoped to
// bestsellers by the query; no client filter is applied.
func (h *CatalogHandler) Bestsellers(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListBestsellers(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.CatalogView{
		Products:   products,
		Categories: catalog.Categories(products),
		Category:   catalog.AllCategories,
		Total:      len(products),
	})
}
