package views

import (
	"fmt"
	"strings"

	"pantry/internal/domain"
	"pantry/internal/items"
)

// CartRenderer handles rendering of the cart screen
type CartRenderer struct {
	styles *Styles
}

// NewCartRenderer creates a new cart renderer
func NewCartRenderer(styles *Styles) *CartRenderer {
	return &CartRenderer{styles: styles}
}

// Render renders every cart line and the total
func (r *CartRenderer) Render(lines []domain.CartLine, selected int, loggedIn bool) string {
	if !loggedIn {
		return r.styles.Dim.Render("Not logged in. Run `pantry login USER` to use the cart.")
	}
	if len(lines) == 0 {
		return r.styles.Dim.Render("Your cart is empty. Press a on an ingredient to add it.")
	}

	var b strings.Builder
	total := 0.0
	for i, l := range lines {
		name := fmt.Sprintf("item #%d", l.ItemID)
		price := 0.0
		if l.Item != nil {
			name = l.Item.Name
			price = l.Item.Price
		}
		subtotal := price * float64(l.Quantity)
		total += subtotal

		cursor := "  "
		row := fmt.Sprintf("%3d × %-20s %8s %9s", l.Quantity, name, items.FormatPrice(price), items.FormatPrice(subtotal))
		if i == selected {
			cursor = "▸ "
			row = r.styles.SelectionBg.Render(row)
		}
		b.WriteString(cursor + row + "\n")
	}
	b.WriteString("\n")
	b.WriteString(r.styles.Section.Render(fmt.Sprintf("Total: %s", items.FormatPrice(total))))
	return b.String()
}
