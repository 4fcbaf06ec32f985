package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Highlight     lipgloss.Style
	SelectionBg   lipgloss.Style
	FilterOn      lipgloss.Style
	FilterOff     lipgloss.Style
	Tag           lipgloss.Style
	Price         lipgloss.Style
	WasPrice      lipgloss.Style
	Badge         lipgloss.Style
	Section       lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:  lipgloss.NewStyle().Faint(true),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		FilterOn:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true),
		FilterOff:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Tag:           lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Price:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		WasPrice:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true),
		Badge:         lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Section:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
