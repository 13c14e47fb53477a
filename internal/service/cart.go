package service

import (
	"github.com/shopspring/decimal"

	"github.com/shopwise-ai/assistant-core/internal/model"
)

// CartManager owns the cart entry collection for one session. It is not
// safe for concurrent use; the orchestrator serializes access.
type CartManager struct {
	entries []model.CartEntry
	index   map[string]int
}

// NewCartManager creates an empty cart.
func NewCartManager() *CartManager {
	return &CartManager{
		index: make(map[string]int),
	}
}

// AddItem merges the product into the cart: an existing entry has its
// quantity incremented in place, otherwise a new entry with quantity 1 is
// appended. Stock status is advisory and never checked here.
func (c *CartManager) AddItem(product model.Product) {
	if i, ok := c.index[product.ID]; ok {
		c.entries[i].Quantity++
		return
	}
	c.index[product.ID] = len(c.entries)
	c.entries = append(c.entries, model.CartEntry{
		Product:  product,
		Quantity: 1,
	})
}

// RemoveItem deletes the entry for the product id. Removing an absent id is
// a no-op, not an error.
func (c *CartManager) RemoveItem(productID string) bool {
	i, ok := c.index[productID]
	if !ok {
		return false
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	delete(c.index, productID)
	for j := i; j < len(c.entries); j++ {
		c.index[c.entries[j].Product.ID] = j
	}
	return true
}

// Get returns the entry for the product id, if present.
func (c *CartManager) Get(productID string) (model.CartEntry, bool) {
	i, ok := c.index[productID]
	if !ok {
		return model.CartEntry{}, false
	}
	return c.entries[i], true
}

// Total sums price times quantity over all entries. Empty carts total
// exactly zero.
func (c *CartManager) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.entries {
		total = total.Add(e.Subtotal())
	}
	return total
}

// Entries returns the cart entries in insertion order.
func (c *CartManager) Entries() []model.CartEntry {
	out := make([]model.CartEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of distinct entries.
func (c *CartManager) Len() int {
	return len(c.entries)
}
