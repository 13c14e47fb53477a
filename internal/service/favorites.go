package service

import (
	"github.com/shopwise-ai/assistant-core/internal/model"
)

// FavoritesManager owns the favorited product set for one session. Not safe
// for concurrent use; the orchestrator serializes access.
type FavoritesManager struct {
	byID  map[string]model.Product
	order []string
}

// NewFavoritesManager creates an empty favorites set.
func NewFavoritesManager() *FavoritesManager {
	return &FavoritesManager{
		byID: make(map[string]model.Product),
	}
}

// Toggle adds the product when absent and removes it when present,
// returning whether the product is a favorite afterwards.
func (f *FavoritesManager) Toggle(product model.Product) bool {
	if _, ok := f.byID[product.ID]; ok {
		f.remove(product.ID)
		return false
	}
	f.byID[product.ID] = product
	f.order = append(f.order, product.ID)
	return true
}

// IsFavorite reports membership for the product id.
func (f *FavoritesManager) IsFavorite(productID string) bool {
	_, ok := f.byID[productID]
	return ok
}

// Get returns the backing product for a favorited id.
func (f *FavoritesManager) Get(productID string) (model.Product, bool) {
	p, ok := f.byID[productID]
	return p, ok
}

// List returns favorited products in the order they were added.
func (f *FavoritesManager) List() []model.Product {
	out := make([]model.Product, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out
}

// Len returns the number of favorites.
func (f *FavoritesManager) Len() int {
	return len(f.byID)
}

func (f *FavoritesManager) remove(productID string) {
	delete(f.byID, productID)
	for i, id := range f.order {
		if id == productID {
			f.order = append(f.order[:i], f.order[i+1:]...)
			return
		}
	}
}
