package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/deliciousbites/internal/models"
	"github.com/dmitrijs2005/deliciousbites/internal/storage"
	"github.com/dmitrijs2005/deliciousbites/internal/storefront"
)

func formatMoney(m models.Money) string {
	return "$" + m.String()
}

func renderMenu(w io.Writer, items []models.CatalogItem) {
	for _, it := range items {
		fmt.Fprintf(w, "%3d. %s %-24s %8s\n", it.ID, it.Glyph, it.Name, formatMoney(it.Price))
		if it.Description != "" {
			fmt.Fprintf(w, "       %s\n", it.Description)
		}
	}
}

func renderCart(w io.Writer, snap storefront.Snapshot) {
	if len(snap.Lines) == 0 {
		fmt.Fprintln(w, "Your cart is empty")
		return
	}
	for _, l := range snap.Lines {
		fmt.Fprintf(w, "%3d. %s %-24s %s x %d = %s\n",
			l.Item.ID, l.Item.Glyph, l.Item.Name, formatMoney(l.Item.Price), l.Quantity, formatMoney(l.Subtotal()))
	}
	fmt.Fprintf(w, "Total: %s (%d items)\n", formatMoney(snap.Total), snap.ItemCount)
}

func renderOrder(w io.Writer, o *models.Order) {
	if o == nil {
		return
	}
	fmt.Fprintf(w, "Order %s for %s\n", o.ID, o.Customer)
	for _, l := range o.Lines {
		fmt.Fprintf(w, "  %s x %d  %s\n", l.Item.Name, l.Quantity, formatMoney(l.Subtotal()))
	}
	fmt.Fprintf(w, "  Total: %s\n", formatMoney(o.Total))
}

// status is the prompt decoration: "(Alice, cart 3)" or "" when logged out.
func status(snap storefront.Snapshot) string {
	if snap.Account == nil {
		return ""
	}
	parts := []string{snap.Account.Name}
	if snap.ItemCount > 0 {
		parts = append(parts, fmt.Sprintf("cart %d", snap.ItemCount))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func renderRecords(w io.Writer, recs []storage.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No stored records")
		return
	}
	for _, r := range recs {
		fmt.Fprintf(w, "%-8s %-24s %6d bytes\n", r.Scope, r.Key, r.Size)
	}
}
