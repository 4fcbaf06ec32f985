package ui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"pantry/internal/domain"
	"pantry/internal/items"
)

// pagerDoneMsg is sent when the ov pager exits
type pagerDoneMsg struct {
	err error
}

var helpSections = []string{"Navigation", "Search", "Ingredients", "Find in results", "Cart", "Other"}

// HelpRenderer renders long-form content for the pager
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
	dim     lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1),
		section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		dim:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
	}
}

// RenderHelpContent lists every binding grouped by section
func (r *HelpRenderer) RenderHelpContent(keys screenKeys) string {
	var help strings.Builder

	help.WriteString(r.title.Render("pantry Help"))
	help.WriteString("\n")

	for i, group := range keys.FullHelp() {
		if i < len(helpSections) {
			help.WriteString(r.section.Render(helpSections[i]))
			help.WriteString("\n")
		}
		for _, b := range group {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %-10s %s\n", r.key.Render(h.Key), r.desc.Render(h.Desc)))
		}
		help.WriteString("\n")
	}

	help.WriteString(r.dim.Render("  Typing in the search box searches as you type; enter searches again and moves to the results."))
	help.WriteString("\n")
	help.WriteString(r.dim.Render("  More results load when the last recipe scrolls into view."))
	return help.String()
}

// RenderRecipeDetail renders a recipe with its ingredients, prices and
// picture links
func (r *HelpRenderer) RenderRecipeDetail(recipe domain.Recipe, baseURL string) string {
	var b strings.Builder

	b.WriteString(r.title.Render(recipe.Name))
	b.WriteString("\n")
	if tags := items.Tags(recipe); len(tags) > 0 {
		b.WriteString(r.key.Render(strings.Join(tags, " · ")))
		b.WriteString("\n")
	}
	if recipe.Description != "" {
		b.WriteString("\n")
		b.WriteString(r.desc.Render(recipe.Description))
		b.WriteString("\n")
	}

	b.WriteString(r.section.Render("Ingredients"))
	b.WriteString("\n")
	if len(recipe.Ingredients) == 0 {
		b.WriteString(r.dim.Render("  none listed"))
		b.WriteString("\n")
	}
	for _, it := range recipe.Ingredients {
		b.WriteString(fmt.Sprintf("  %s  %s\n", r.key.Render(it.Name), r.desc.Render(items.PriceLine(it))))
		details := []string{fmt.Sprintf("%d kcal", it.Calorie)}
		if it.Vegan {
			details = append(details, "vegan")
		}
		if it.GlutenFree {
			details = append(details, "gluten-free")
		}
		b.WriteString(r.dim.Render("    " + strings.Join(details, ", ")))
		b.WriteString("\n")
		if pic := items.PictureURL(baseURL, it.Picture); pic != "" {
			b.WriteString(r.dim.Render("    " + pic))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// pagerCommand runs ov as a tea.ExecCommand so Bubble Tea releases and
// restores the terminal around it
type pagerCommand struct {
	content string
}

func (c *pagerCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(c.content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

func (c *pagerCommand) SetStdin(io.Reader)  {}
func (c *pagerCommand) SetStdout(io.Writer) {}
func (c *pagerCommand) SetStderr(io.Writer) {}

// openPager shows content in ov
func openPager(content string) tea.Cmd {
	return tea.Exec(&pagerCommand{content: content}, func(err error) tea.Msg {
		return pagerDoneMsg{err: err}
	})
}
