package model

import (
	"github.com/shopspring/decimal"
)

// CartEntry is a product plus the quantity the user intends to purchase.
// At most one entry exists per product id; quantity is always >= 1.
type CartEntry struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price times quantity for this entry.
func (e CartEntry) Subtotal() decimal.Decimal {
	return e.Product.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// CartView is the cart portion of a session snapshot.
type CartView struct {
	Entries []CartEntry     `json:"entries"`
	Total   decimal.Decimal `json:"total"`
}
