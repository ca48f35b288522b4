package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"katalog/internal/catalog"
	"katalog/internal/model"
	"katalog/internal/service"

	"github.com/rs/zerolog"
)

// formOverheadBytes is allowed on top of the image limit for the other
// multipart fields and boundaries.
const formOverheadBytes = 1 << 20

// ProductHandler handles the admin product endpoints.
type ProductHandler struct {
	service service.ProductService
	maxBody int64
	logger  zerolog.Logger
}

// mutationResponse is returned by create, update and delete. Catalog is the
// list refetched after the write; it is omitted when the refetch fails.
type mutationResponse struct {
	Product *model.Product     `json:"product,omitempty"`
	Catalog *model.CatalogView `json:"catalog,omitempty"`
}

// NewProductHandler creates a new product handler. maxUploadBytes bounds the
// image part of create and update requests.
func NewProductHandler(service service.ProductService, maxUploadBytes int64, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		maxBody: maxUploadBytes + formOverheadBytes,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /admin/api/products?search=&category= requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListAll(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	view := buildView(products, r)
	writeJSON(w, http.StatusOK, view)
}

// GetByID handles GET /admin/api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid product ID", h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /admin/api/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, image, err := h.readForm(w, r)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), fields, image)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, mutationResponse{Product: product, Catalog: h.refresh(r)})
}

// Update handles PUT /admin/api/products/{id} requests. Every field is
// replaced; an omitted image keeps the stored one.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid product ID", h.logger)
		return
	}

	fields, image, err := h.readForm(w, r)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	product, err := h.service.Update(r.Context(), id, fields, image)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, mutationResponse{Product: product, Catalog: h.refresh(r)})
}

// Delete handles DELETE /admin/api/products/{id} requests. The image to
// remove is taken from the stored row, not from the client.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid product ID", h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id, product.ImageRef); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, mutationResponse{Catalog: h.refresh(r)})
}

// refresh refetches the full list after a mutation, keeping the caller's
// search and category.
func (h *ProductHandler) refresh(r *http.Request) *model.CatalogView {
	products, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("failed to refetch products after mutation")
		return nil
	}

	view := buildView(products, r)
	return &view
}

// readForm decodes a multipart or urlencoded product form.
func (h *ProductHandler) readForm(w http.ResponseWriter, r *http.Request) (model.ProductFields, model.ImageSource, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(h.maxBody)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return model.ProductFields{}, model.ImageSource{}, model.NewValidationError(fmt.Sprintf("request exceeds %d bytes", tooLarge.Limit))
		}
		return model.ProductFields{}, model.ImageSource{}, model.NewValidationError("invalid form body")
	}

	fields, err := model.ProductInput{
		Name:       r.FormValue("name"),
		Category:   r.FormValue("category"),
		Price:      r.FormValue("price"),
		Bestseller: formBool(r.FormValue("bestseller")),
	}.Parse()
	if err != nil {
		return model.ProductFields{}, model.ImageSource{}, err
	}

	image, err := readImage(r)
	if err != nil {
		return model.ProductFields{}, model.ImageSource{}, err
	}

	return fields, image, nil
}

// readImage resolves the image field: an uploaded "image" file, else an
// "image_ref" pointing at an already stored asset, else nothing.
func readImage(r *http.Request) (model.ImageSource, error) {
	if r.MultipartForm != nil {
		file, header, err := r.FormFile("image")
		switch {
		case err == nil:
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				return model.ImageSource{}, model.NewValidationError("failed to read image file")
			}
			return model.PendingImage(data, header.Filename), nil
		case !errors.Is(err, http.ErrMissingFile):
			return model.ImageSource{}, model.NewValidationError("invalid image file")
		}
	}

	if ref := strings.TrimSpace(r.FormValue("image_ref")); ref != "" {
		return model.ExistingImage(ref), nil
	}

	return model.NoImage(), nil
}

// buildView derives the admin list from the canonical products and the
// request's search and category parameters.
func buildView(products []model.Product, r *http.Request) model.CatalogView {
	q := r.URL.Query()

	c := catalog.NewController()
	c.SetCanonicalList(products)
	c.SetSearchTerm(q.Get("search"))
	c.SetCategory(q.Get("category"))

	return c.Snapshot()
}

func formBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}
