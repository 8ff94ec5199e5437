package models

import "time"

// CatalogItem is an immutable menu entry.
type CatalogItem struct {
	ID          int
	Name        string
	Description string
	Price       Money
	Glyph       string
	Category    string
}

// CartLine is one distinct item in the cart. Item is a snapshot of the
// catalog entry taken when the line was first added.
type CartLine struct {
	Item     CatalogItem
	Quantity int
}

// Subtotal returns the line price times its quantity.
func (l CartLine) Subtotal() Money {
	return l.Item.Price.Times(l.Quantity)
}

// Order is the confirmation produced by a checkout or a single-item order.
// Orders are not persisted.
type Order struct {
	ID       string
	PlacedAt time.Time
	Customer string
	Lines    []CartLine
	Total    Money
}
