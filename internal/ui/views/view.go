package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pantry/internal/domain"
	"pantry/internal/ui/state"
)

// IngredientRows is how many ingredient lines the panel shows at most
const IngredientRows = 5

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int
	Screen state.Screen
	Focus  state.Focus

	SearchInput string // rendered search box
	FindInput   string // rendered find prompt, shown while finding
	Vegan       bool
	GlutenFree  bool

	Results         []domain.Recipe
	SelectedIndex   int
	IngredientIndex int
	ViewportOffset  int
	ViewportHeight  int
	ShowIngredients bool
	IsMatch         func(index int) bool
	FindSummary     string

	Loading   bool
	Spinner   string
	Exhausted bool
	ErrorText string

	CartLines []domain.CartLine
	CartIndex int
	CartCount int
	Username  string

	StatusMessage string
	StatusIsError bool
	HelpView      string
}

// Renderer handles all view rendering
type Renderer struct {
	styles       *Styles
	recipeRender *RecipeRenderer
	cartRender   *CartRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:       styles,
		recipeRender: NewRecipeRenderer(styles),
		cartRender:   NewCartRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(vs))
	content.WriteString("\n\n")

	switch vs.Screen {
	case state.ScreenCart:
		content.WriteString(r.cartRender.Render(vs.CartLines, vs.CartIndex, vs.Username != ""))
	default:
		r.renderSearch(content, vs)
	}

	footer := r.renderFooter(vs)

	// Push the footer to the bottom
	currentLines := strings.Count(content.String(), "\n") + 1
	footerLines := strings.Count(footer, "\n") + 1
	availableLines := vs.Height - 2
	if availableLines <= 0 {
		availableLines = 22
	}
	if pad := availableLines - currentLines - footerLines; pad > 0 {
		content.WriteString(strings.Repeat("\n", pad))
	}
	content.WriteString("\n")
	content.WriteString(footer)

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderTitle(vs ViewState) string {
	title := "pantry · Meal Planning"
	if vs.Screen == state.ScreenCart {
		title = "pantry · Cart"
	}
	logo := r.styles.Title.Render(title)

	indicators := []string{}
	if vs.Loading {
		indicators = append(indicators, strings.TrimSpace(vs.Spinner+" Loading"))
	}
	indicators = append(indicators, fmt.Sprintf("cart %d", vs.CartCount))
	if vs.Username != "" {
		indicators = append(indicators, vs.Username)
	} else {
		indicators = append(indicators, "not logged in")
	}
	right := r.styles.Dim.Render(strings.Join(indicators, " | "))

	termWidth := vs.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

func (r *Renderer) renderSearch(content *strings.Builder, vs ViewState) {
	content.WriteString(vs.SearchInput)
	content.WriteString("\n")
	content.WriteString(r.renderFilters(vs))
	content.WriteString("\n\n")

	if len(vs.Results) == 0 {
		switch {
		case vs.ErrorText != "":
			content.WriteString(r.styles.StatusError.Render(vs.ErrorText))
		case vs.Loading:
			content.WriteString(r.styles.StatusLoading.Render("Searching recipes..."))
		case vs.Exhausted:
			content.WriteString(r.styles.Dim.Render("No recipes found."))
		}
		return
	}

	start := vs.ViewportOffset
	end := start + vs.ViewportHeight
	if end > len(vs.Results) {
		end = len(vs.Results)
	}
	if start > 0 {
		content.WriteString(r.styles.Scroll.Render(fmt.Sprintf("↑ %d more", start)))
		content.WriteString("\n")
	}
	for i := start; i < end; i++ {
		isMatch := vs.IsMatch != nil && vs.IsMatch(i)
		content.WriteString(r.recipeRender.RenderRow(vs.Results[i], i == vs.SelectedIndex, isMatch, vs.Width-4))
		content.WriteString("\n")
	}

	switch {
	case vs.ErrorText != "":
		content.WriteString(r.styles.StatusError.Render(vs.ErrorText + " Press r to retry."))
	case vs.Loading:
		content.WriteString(r.styles.StatusLoading.Render("Loading more recipes..."))
	case vs.Exhausted:
		content.WriteString(r.styles.Dim.Render(fmt.Sprintf("No more recipes (%d shown).", len(vs.Results))))
	case end < len(vs.Results):
		content.WriteString(r.styles.Scroll.Render(fmt.Sprintf("↓ %d more", len(vs.Results)-end)))
	}

	if vs.ShowIngredients && vs.SelectedIndex >= 0 && vs.SelectedIndex < len(vs.Results) {
		content.WriteString("\n\n")
		content.WriteString(r.recipeRender.RenderIngredients(vs.Results[vs.SelectedIndex], vs.IngredientIndex, IngredientRows))
	}
}

func (r *Renderer) renderFilters(vs ViewState) string {
	box := func(on bool, label, key string) string {
		if on {
			return r.styles.FilterOn.Render(fmt.Sprintf("[x] %s (%s)", label, key))
		}
		return r.styles.FilterOff.Render(fmt.Sprintf("[ ] %s (%s)", label, key))
	}
	return box(vs.Vegan, "Vegan", "v") + "  " + box(vs.GlutenFree, "Gluten-Free", "f")
}

func (r *Renderer) renderFooter(vs ViewState) string {
	var lines []string
	if vs.Focus == state.FocusFind && vs.FindInput != "" {
		lines = append(lines, vs.FindInput)
	} else if vs.FindSummary != "" {
		lines = append(lines, r.styles.Highlight.Render(vs.FindSummary))
	}
	if vs.StatusMessage != "" {
		style := r.styles.StatusSuccess
		if vs.StatusIsError {
			style = r.styles.StatusError
		}
		lines = append(lines, style.Render(vs.StatusMessage))
	}
	lines = append(lines, r.styles.Help.Render(vs.HelpView))
	return strings.Join(lines, "\n")
}
