package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/deliciousbites/internal/models"
	"github.com/dmitrijs2005/deliciousbites/internal/storefront"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$12.99", formatMoney(1299))
	assert.Equal(t, "$0.05", formatMoney(5))
	assert.Equal(t, "$100.00", formatMoney(10000))
}

func TestRenderCart_Empty(t *testing.T) {
	var buf bytes.Buffer
	renderCart(&buf, storefront.Snapshot{})
	assert.Equal(t, "Your cart is empty\n", buf.String())
}

func TestRenderMenu(t *testing.T) {
	var buf bytes.Buffer
	renderMenu(&buf, []models.CatalogItem{{ID: 7, Name: "Soup", Description: "Hot", Price: 450, Glyph: "🥣"}})
	assert.Contains(t, buf.String(), "7. 🥣 Soup")
	assert.Contains(t, buf.String(), "$4.50")
	assert.Contains(t, buf.String(), "Hot")
}

func TestStatus(t *testing.T) {
	acc := &models.Account{Name: "Bob"}
	assert.Equal(t, "", status(storefront.Snapshot{}))
	assert.Equal(t, "(Bob)", status(storefront.Snapshot{Account: acc}))
	assert.Equal(t, "(Bob, cart 2)", status(storefront.Snapshot{Account: acc, ItemCount: 2}))
}
