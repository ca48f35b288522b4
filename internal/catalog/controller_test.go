package catalog

import (
	"sync"
	"testing"

	"katalog/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestController_Actions(t *testing.T) {
	c := NewController()
	assert.Empty(t, c.View())

	c.SetCanonicalList(sampleProducts())
	assert.Equal(t, []int64{6, 5, 4, 3, 2, 1}, ids(c.View()))

	c.SetSearchTerm("goreng")
	assert.Equal(t, []int64{5, 3, 2}, ids(c.View()))

	c.SetCategory("makanan")
	assert.Equal(t, []int64{5, 3, 2}, ids(c.View()))

	c.SetSearchTerm("nasi")
	assert.Equal(t, []int64{5, 2}, ids(c.View()))

	c.SetCategory("")
	assert.Equal(t, []int64{5, 2}, ids(c.View()), "empty category selects all")

	// A refetch after a delete recomputes with the current predicates.
	refetched := sampleProducts()[:4]
	c.SetCanonicalList(refetched)
	assert.Equal(t, []int64{5}, ids(c.View()))
}

func TestController_ViewIsACopy(t *testing.T) {
	c := NewController()
	c.SetCanonicalList(sampleProducts())

	view := c.View()
	view[0].Name = "changed"

	assert.Equal(t, "Jus Alpukat", c.View()[0].Name)
}

func TestController_CanonicalListIsCopied(t *testing.T) {
	list := sampleProducts()
	c := NewController()
	c.SetCanonicalList(list)

	list[0].Name = "changed"

	assert.Equal(t, "Jus Alpukat", c.View()[0].Name)
}

func TestController_Snapshot(t *testing.T) {
	c := NewController()
	c.SetCanonicalList(sampleProducts())
	c.SetCategory("minuman")
	c.SetSearchTerm("teh")

	snap := c.Snapshot()

	assert.Equal(t, model.CatalogView{
		Products:   []model.Product{sampleProducts()[2]},
		Categories: []string{"minuman", "makanan", "camilan"},
		Search:     "teh",
		Category:   "minuman",
		Total:      6,
	}, snap)
}

func TestController_ConcurrentUse(t *testing.T) {
	c := NewController()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func() { defer wg.Done(); c.SetCanonicalList(sampleProducts()) }()
		go func() { defer wg.Done(); c.SetSearchTerm("goreng") }()
		go func() { defer wg.Done(); _ = c.View() }()
	}
	wg.Wait()

	assert.Equal(t, []int64{5, 3, 2}, ids(c.View()))
}
