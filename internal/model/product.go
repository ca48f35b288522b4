package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Product represents a food or beverage item in the catalogue.
type Product struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Category   string    `json:"category" db:"category"`
	Price      int64     `json:"price" db:"price"`
	ImageRef   string    `json:"image" db:"image"`
	Bestseller bool      `json:"bestseller" db:"bestseller"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Fields returns the mutable part of the product, ready to be edited and
// written back with a full-replace update.
func (p Product) Fields() ProductFields {
	return ProductFields{
		Name:       p.Name,
		Category:   p.Category,
		Price:      p.Price,
		ImageRef:   p.ImageRef,
		Bestseller: p.Bestseller,
	}
}

// ProductFields is the full set of writable product columns. Updates always
// resend every field.
type ProductFields struct {
	Name       string `json:"name" validate:"required"`
	Category   string `json:"category" validate:"required"`
	Price      int64  `json:"price" validate:"gte=0"`
	ImageRef   string `json:"image"`
	Bestseller bool   `json:"bestseller"`
}

// ProductInput is the raw admin form payload. Price arrives as text and must
// parse to a whole number.
type ProductInput struct {
	Name       string
	Category   string
	Price      string
	Bestseller bool
}

// Parse converts form input into ProductFields. A price that is not a base-10
// integer is rejected here so nothing malformed reaches storage.
func (in ProductInput) Parse() (ProductFields, error) {
	raw := strings.TrimSpace(in.Price)
	if raw == "" {
		return ProductFields{}, NewValidationError("price is required")
	}

	price, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return ProductFields{}, NewValidationError(fmt.Sprintf("price must be a whole number, got %q", in.Price))
	}

	return ProductFields{
		Name:       strings.TrimSpace(in.Name),
		Category:   strings.TrimSpace(in.Category),
		Price:      price,
		Bestseller: in.Bestseller,
	}, nil
}

// CatalogView is the admin list payload: the filtered products plus the
// categories present in the unfiltered list.
type CatalogView struct {
	Products   []Product `json:"products"`
	Categories []string  `json:"categories"`
	Search     string    `json:"search"`
	Category   string    `json:"category"`
	Total      int       `json:"total"`
}
