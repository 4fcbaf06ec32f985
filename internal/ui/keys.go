package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"pantry/internal/ui/state"
)

// keyMap holds every binding of the list and cart screens
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Search     key.Binding
	Vegan      key.Binding
	GlutenFree key.Binding
	Retry      key.Binding
	PrevIngr   key.Binding
	NextIngr   key.Binding
	AddToCart  key.Binding
	Find       key.Binding
	FindNext   key.Binding
	FindPrev   key.Binding
	Detail     key.Binding
	Cart       key.Binding
	Increase   key.Binding
	Decrease   key.Binding
	Remove     key.Binding
	Refresh    key.Binding
	Back       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Top:        key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Search:     key.NewBinding(key.WithKeys("/", "i"), key.WithHelp("/", "edit search")),
		Vegan:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "vegan")),
		GlutenFree: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "gluten-free")),
		Retry:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "search again")),
		PrevIngr:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev ingredient")),
		NextIngr:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next ingredient")),
		AddToCart:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to cart")),
		Find:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "find in results")),
		FindNext:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
		FindPrev:   key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "prev match")),
		Detail:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "recipe details")),
		Cart:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cart")),
		Increase:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more")),
		Decrease:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "less")),
		Remove:     key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "remove")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Back:       key.NewBinding(key.WithKeys("esc", "c"), key.WithHelp("esc", "back")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// screenKeys adapts keyMap to help.KeyMap for one screen
type screenKeys struct {
	keys   keyMap
	screen state.Screen
}

var _ help.KeyMap = screenKeys{}

func (s screenKeys) ShortHelp() []key.Binding {
	k := s.keys
	if s.screen == state.ScreenCart {
		return []key.Binding{k.Up, k.Down, k.Increase, k.Decrease, k.Remove, k.Back, k.Quit}
	}
	return []key.Binding{k.Search, k.Vegan, k.GlutenFree, k.AddToCart, k.Cart, k.Help, k.Quit}
}

func (s screenKeys) FullHelp() [][]key.Binding {
	k := s.keys
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Search, k.Vegan, k.GlutenFree, k.Retry},
		{k.PrevIngr, k.NextIngr, k.AddToCart, k.Detail},
		{k.Find, k.FindNext, k.FindPrev},
		{k.Cart, k.Increase, k.Decrease, k.Remove, k.Refresh, k.Back},
		{k.Help, k.Quit},
	}
}
