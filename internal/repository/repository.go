package repository

import (
	"context"

	"katalog/internal/model"
)

// ProductFilter narrows a product select. The zero value selects everything.
type ProductFilter struct {
	// BestsellerOnly scopes the query to bestseller = true.
	BestsellerOnly bool
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// Select retrieves products matching the filter, newest id first.
	Select(ctx context.Context, filter ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	// Returns nil without error when the product does not exist.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Insert stores a new product and returns it with its assigned ID.
	Insert(ctx context.Context, fields model.ProductFields) (*model.Product, error)

	// Update replaces every writable column of the product with the given ID.
	// Returns nil without error when the product does not exist.
	Update(ctx context.Context, id int64, fields model.ProductFields) (*model.Product, error)

	// Delete removes the product with the given ID and reports whether a row
	// was deleted.
	Delete(ctx context.Context, id int64) (bool, error)
}

// AdminUserRepository defines data access for admin accounts.
type AdminUserRepository interface {
	// Create inserts a new admin with an already hashed password.
	Create(ctx context.Context, email, passwordHash string) (*model.AdminUser, error)

	// GetByEmail retrieves an admin by email.
	// Returns nil without error when no admin has that email.
	GetByEmail(ctx context.Context, email string) (*model.AdminUser, error)
}
