// Package catalog provides the read-only menu of orderable items.
//
// The built-in menu is returned by Default. A menu can also be loaded from a
// JSON file with Load:
//
//	[
//	  {"id": 1, "name": "Margherita Pizza", "description": "...",
//	   "price": 12.99, "glyph": "🍕", "category": "pizza"}
//	]
//
// Prices in the file are decimal amounts and are converted to cents once.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/deliciousbites/internal/common"
	"github.com/dmitrijs2005/deliciousbites/internal/models"
)

// Catalog is an ordered, immutable set of items with unique ids.
type Catalog struct {
	items []models.CatalogItem
	byID  map[int]int
}

// New validates items and builds a Catalog. Ids must be unique, names
// non-empty and prices non-negative.
func New(items []models.CatalogItem) (*Catalog, error) {
	c := &Catalog{
		items: make([]models.CatalogItem, 0, len(items)),
		byID:  make(map[int]int, len(items)),
	}
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			return nil, fmt.Errorf("%w: item %d has no name", common.ErrInvalidCatalog, it.ID)
		}
		if it.Price < 0 {
			return nil, fmt.Errorf("%w: item %d has a negative price", common.ErrInvalidCatalog, it.ID)
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate item id %d", common.ErrInvalidCatalog, it.ID)
		}
		c.byID[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}
	return c, nil
}

// Default returns the built-in six-item menu.
func Default() *Catalog {
	c, err := New(defaultItems)
	if err != nil {
		panic(err)
	}
	return c
}

// Items returns a copy of all items in menu order.
func (c *Catalog) Items() []models.CatalogItem {
	out := make([]models.CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

// Lookup returns the item with the given id.
func (c *Catalog) Lookup(id int) (models.CatalogItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.CatalogItem{}, false
	}
	return c.items[i], true
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

type jsonItem struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Glyph       string  `json:"glyph"`
	Category    string  `json:"category"`
}

// Load reads a catalog from a JSON file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON catalog document.
func Parse(data []byte) (*Catalog, error) {
	var raw []jsonItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidCatalog, err)
	}
	items := make([]models.CatalogItem, 0, len(raw))
	for _, r := range raw {
		price, ok := models.ParseCents(r.Price)
		if !ok {
			return nil, fmt.Errorf("%w: item %d price %v is not a whole number of cents", common.ErrInvalidCatalog, r.ID, r.Price)
		}
		items = append(items, models.CatalogItem{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Price:       price,
			Glyph:       r.Glyph,
			Category:    r.Category,
		})
	}
	return New(items)
}
