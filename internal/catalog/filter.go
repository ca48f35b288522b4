// Package catalog derives the displayed product list from the canonical
// catalogue and the user's search and category selection.
package catalog

import (
	"strings"

	"katalog/internal/model"
)

// AllCategories disables the category predicate.
const AllCategories = "all"

// Filter returns the products whose name contains searchTerm, ignoring case,
// and whose category equals category. An empty searchTerm matches every name
// and AllCategories matches every category. Input order is preserved and the
// input slice is never modified.
func Filter(products []model.Product, searchTerm, category string) []model.Product {
	needle := strings.ToLower(searchTerm)
	anyCategory := category == AllCategories

	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if !anyCategory && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories returns the distinct categories of products in order of first
// appearance.
func Categories(products []model.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := []string{}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
