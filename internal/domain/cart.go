package domain

import "github.com/shopspring/decimal"

// CartItem is a purchase intent for one format of one book. Price is the unit
// price captured when the item was first added.
type CartItem struct {
	BookID   string          `json:"bookId"`
	Format   Format          `json:"format"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CartKey identifies a cart entry.
type CartKey struct {
	BookID string
	Format Format
}

// Key returns the uniqueness key of the item.
func (i CartItem) Key() CartKey {
	return CartKey{BookID: i.BookID, Format: i.Format}
}

// LineTotal is price times quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
