package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pantry/internal/domain"
	"pantry/internal/items"
)

// RecipeRenderer handles rendering of recipe rows and their ingredients
type RecipeRenderer struct {
	styles *Styles
}

// NewRecipeRenderer creates a new recipe renderer
func NewRecipeRenderer(styles *Styles) *RecipeRenderer {
	return &RecipeRenderer{styles: styles}
}

// RenderRow renders one recipe on a single line
func (r *RecipeRenderer) RenderRow(recipe domain.Recipe, isSelected, isMatch bool, width int) string {
	cursor := "  "
	if isSelected {
		cursor = "▸ "
	}

	nameStyle := lipgloss.NewStyle()
	if isMatch {
		nameStyle = r.styles.Highlight
	}
	tagStyle := r.styles.Tag
	if isSelected {
		nameStyle = nameStyle.Inherit(r.styles.SelectionBg)
		tagStyle = tagStyle.Inherit(r.styles.SelectionBg)
	}

	line := cursor + nameStyle.Render(recipe.Name)
	if tags := items.Tags(recipe); len(tags) > 0 {
		line += "  " + tagStyle.Render(strings.Join(tags, " · "))
	}
	if width > 0 && lipgloss.Width(line) > width {
		line = cursor + nameStyle.Render(truncate(recipe.Name, width-lipgloss.Width(cursor)))
	}
	return line
}

// RenderIngredients renders the ingredient panel for the selected recipe
func (r *RecipeRenderer) RenderIngredients(recipe domain.Recipe, selected, maxRows int) string {
	var b strings.Builder
	b.WriteString(r.styles.Section.Render("Ingredients"))
	if recipe.Description != "" {
		b.WriteString("  " + r.styles.Dim.Render(recipe.Description))
	}

	if len(recipe.Ingredients) == 0 {
		b.WriteString("\n  " + r.styles.Dim.Render("none listed"))
		return b.String()
	}

	start := 0
	if selected >= maxRows {
		start = selected - maxRows + 1
	}
	end := start + maxRows
	if end > len(recipe.Ingredients) {
		end = len(recipe.Ingredients)
	}

	for i := start; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(r.RenderIngredient(recipe.Ingredients[i], i == selected))
	}
	if hidden := len(recipe.Ingredients) - (end - start); hidden > 0 {
		b.WriteString("\n  " + r.styles.Scroll.Render(fmt.Sprintf("%d more, [ and ] to browse", hidden)))
	}
	return b.String()
}

// RenderIngredient renders a single ingredient with its price line
func (r *RecipeRenderer) RenderIngredient(it domain.Item, isSelected bool) string {
	cursor := "  • "
	if isSelected {
		cursor = "  ▸ "
	}

	price := r.styles.Price.Render(items.FormatPrice(it.Price))
	if items.Discounted(it) {
		was := r.styles.WasPrice.Render(items.FormatPrice(items.OriginalPrice(it.Price, it.Discount)))
		price = fmt.Sprintf("%s %s %s", price, was, r.styles.Badge.Render(items.Badge(it)))
	}

	name := it.Name
	if isSelected {
		name = r.styles.SelectionBg.Render(name)
	}
	return fmt.Sprintf("%s%s  %s", cursor, name, price)
}

func truncate(s string, width int) string {
	if width <= 1 {
		return "…"
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
