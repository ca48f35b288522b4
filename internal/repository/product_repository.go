package repository

import (
	"context"
	"errors"
	"fmt"

	"katalog/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	db     DB
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db DB, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		db:     db,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// Select retrieves products matching the filter, newest id first.
func (r *productRepository) Select(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	if filter.BestsellerOnly {
		query += ` WHERE bestseller = true`
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).
			Bool("bestseller_only", filter.BestsellerOnly).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Insert stores a new product and returns it with its assigned ID.
func (r *productRepository) Insert(ctx context.Context, fields model.ProductFields) (*model.Product, error) {
	query := `
		INSERT INTO products (name, category, price, image, bestseller)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRow(ctx, query,
		fields.Name, fields.Category, fields.Price, fields.ImageRef, fields.Bestseller))
	if err != nil {
		r.logger.Error().Err(err).Str("name", fields.Name).Msg("failed to insert product")
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	r.logger.Debug().Int64("product_id", p.ID).Msg("product inserted")

	return &p, nil
}

// Update replaces every writable column of the product with the given ID.
func (r *productRepository) Update(ctx context.Context, id int64, fields model.ProductFields) (*model.Product, error) {
	query := `
		UPDATE products
		SET name = $2, category = $3, price = $4, image = $5, bestseller = $6
		WHERE id = $1
		RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRow(ctx, query,
		id, fields.Name, fields.Category, fields.Price, fields.ImageRef, fields.Bestseller))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product to update not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &p, nil
}

// Delete removes the product with the given ID.
func (r *productRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().Int64("product_id", id).Msg("no product deleted")
		return false, nil
	}

	return true, nil
}
