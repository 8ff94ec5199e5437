// Package cart implements the shopping cart: an ordered set of lines keyed by
// catalog item id, each holding an item snapshot and a positive quantity.
//
// Every mutation requires an authenticated session, checked through Gate.
package cart

import (
	"time"

	"github.com/dmitrijs2005/deliciousbites/internal/common"
	"github.com/dmitrijs2005/deliciousbites/internal/models"
	"github.com/google/uuid"
)

// Menu resolves catalog items by id.
type Menu interface {
	Lookup(id int) (models.CatalogItem, bool)
}

// Gate reports the authenticated account, if any.
type Gate interface {
	Current() (models.Account, bool)
}

type Cart struct {
	menu  Menu
	gate  Gate
	lines []models.CartLine

	newID func() string
	now   func() time.Time
}

func New(menu Menu, gate Gate) *Cart {
	return &Cart{
		menu:  menu,
		gate:  gate,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

func (c *Cart) authorize() (models.Account, error) {
	acc, ok := c.gate.Current()
	if !ok {
		return models.Account{}, common.ErrNotAuthenticated
	}
	return acc, nil
}

func (c *Cart) index(itemID int) int {
	for i, l := range c.lines {
		if l.Item.ID == itemID {
			return i
		}
	}
	return -1
}

// Add increments the line for itemID, inserting it with quantity 1 and a
// snapshot of the catalog item if absent. It returns the updated line.
func (c *Cart) Add(itemID int) (models.CartLine, error) {
	if _, err := c.authorize(); err != nil {
		return models.CartLine{}, err
	}
	item, ok := c.menu.Lookup(itemID)
	if !ok {
		return models.CartLine{}, common.ErrUnknownItem
	}

	if i := c.index(itemID); i >= 0 {
		c.lines[i].Quantity++
		return c.lines[i], nil
	}
	line := models.CartLine{Item: item, Quantity: 1}
	c.lines = append(c.lines, line)
	return line, nil
}

// Remove decrements the line for itemID and drops it when it reaches zero.
// Removing an item that is not in the cart is a no-op.
func (c *Cart) Remove(itemID int) error {
	if _, err := c.authorize(); err != nil {
		return err
	}
	i := c.index(itemID)
	if i < 0 {
		return nil
	}
	if c.lines[i].Quantity > 1 {
		c.lines[i].Quantity--
		return nil
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return nil
}

// Total is the exact sum of price times quantity over all lines.
func (c *Cart) Total() models.Money {
	var total models.Money
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// ItemCount is the sum of quantities.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Checkout turns the cart into an order and empties it.
func (c *Cart) Checkout() (models.Order, error) {
	acc, err := c.authorize()
	if err != nil {
		return models.Order{}, err
	}
	if len(c.lines) == 0 {
		return models.Order{}, common.ErrEmptyCart
	}

	order := c.order(acc, c.Lines(), c.Total())
	c.lines = nil
	return order, nil
}

// OrderNow places a single-unit order for itemID without touching the cart.
func (c *Cart) OrderNow(itemID int) (models.Order, error) {
	acc, err := c.authorize()
	if err != nil {
		return models.Order{}, err
	}
	item, ok := c.menu.Lookup(itemID)
	if !ok {
		return models.Order{}, common.ErrUnknownItem
	}
	line := models.CartLine{Item: item, Quantity: 1}
	return c.order(acc, []models.CartLine{line}, line.Subtotal()), nil
}

// Clear drops all lines without placing an order.
func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) order(acc models.Account, lines []models.CartLine, total models.Money) models.Order {
	return models.Order{
		ID:       c.newID(),
		PlacedAt: c.now(),
		Customer: acc.Email,
		Lines:    lines,
		Total:    total,
	}
}
