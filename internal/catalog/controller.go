package catalog

import (
	"sync"

	"katalog/internal/model"
)

// Controller owns the list state of a catalogue view. State changes only
// through its actions and the filtered view is recomputed after each one.
type Controller struct {
	mu         sync.RWMutex
	canonical  []model.Product
	searchTerm string
	category   string
	view       []model.Product
}

// NewController returns a controller with an empty list, no search term and
// the category set to AllCategories.
func NewController() *Controller {
	c := &Controller{category: AllCategories}
	c.recompute()
	return c
}

// SetCanonicalList replaces the full product list, typically after a refetch.
func (c *Controller) SetCanonicalList(products []model.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.canonical = append([]model.Product(nil), products...)
	c.recompute()
}

// SetSearchTerm changes the name search.
func (c *Controller) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchTerm = term
	c.recompute()
}

// SetCategory changes the category selection. An empty value selects
// AllCategories.
func (c *Controller) SetCategory(category string) {
	if category == "" {
		category = AllCategories
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.category = category
	c.recompute()
}

// View returns a copy of the filtered list.
func (c *Controller) View() []model.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.Product{}, c.view...)
}

// Snapshot returns the current view together with the categories of the
// canonical list and the active selection.
func (c *Controller) Snapshot() model.CatalogView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return model.CatalogView{
		Products:   append([]model.Product{}, c.view...),
		Categories: Categories(c.canonical),
		Search:     c.searchTerm,
		Category:   c.category,
		Total:      len(c.canonical),
	}
}

// recompute must be called with mu held for writing.
func (c *Controller) recompute() {
	c.view = Filter(c.canonical, c.searchTerm, c.category)
}
