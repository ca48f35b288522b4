package service

import (
	"context"

	"katalog/internal/model"
)

// ProductService is the product repository façade used by the admin and
// public views. It composes record storage with the image asset pipeline.
type ProductService interface {
	// ListAll retrieves every product, newest id first.
	ListAll(ctx context.Context) ([]model.Product, error)

	// ListBestsellers retrieves the products flagged as bestsellers, newest
	// id first. The bestseller scope is applied by the query itself.
	ListBestsellers(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create uploads a pending image if there is one, then inserts the
	// product. A failed upload aborts before anything is inserted.
	Create(ctx context.Context, fields model.ProductFields, image model.ImageSource) (*model.Product, error)

	// Update replaces every field of the product. A pending image is uploaded
	// first; the previous asset is left in storage.
	Update(ctx context.Context, id int64, fields model.ProductFields, image model.ImageSource) (*model.Product, error)

	// Delete removes the image behind imageRef on a best-effort basis, then
	// deletes the record regardless of the removal outcome.
	Delete(ctx context.Context, id int64, imageRef string) error

	// Categories returns the distinct categories of the full list in
	// first-appearance order.
	Categories(ctx context.Context) ([]string, error)
}
