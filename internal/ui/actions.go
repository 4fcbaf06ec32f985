package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pantry/internal/cart"
	"pantry/internal/eventbus"
	"pantry/internal/mealplan"
	"pantry/internal/ui/state"
)

const wheelStep = 3

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		m.Close()
		return tea.Quit
	}
	if !key.Matches(msg, m.keys.Quit) {
		m.quitArmed = false
	}

	if m.state.Screen == state.ScreenCart {
		return m.handleCartKey(msg)
	}
	switch m.state.Focus {
	case state.FocusInput:
		return m.handleInputKey(msg)
	case state.FocusFind:
		return m.handleFindKey(msg)
	}
	return m.handleListKey(msg)
}

// handleInputKey searches as the user types
func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.queryChanged(m.search.Submit())
		m.focusList()
		return nil
	case tea.KeyEsc, tea.KeyTab, tea.KeyDown:
		m.focusList()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if req, ok := m.search.SetTerm(m.input.Value()); ok {
		m.queryChanged(req)
	}
	return cmd
}

func (m *Model) handleFindKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		query := m.findInput.Value()
		n := m.find.Find(query, m.resultNames())
		m.closeFind()
		if m.find.Query() != "" && n == 0 {
			return m.setStatus(fmt.Sprintf("No loaded recipe matches %q", m.find.Query()), true)
		}
		return nil
	case tea.KeyEsc:
		m.find.Clear()
		m.findInput.SetValue("")
		m.closeFind()
		return nil
	}

	var cmd tea.Cmd
	m.findInput, cmd = m.findInput.Update(msg)
	return cmd
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	n := len(m.search.Results)
	page := m.state.ViewportHeight - 1
	if page < 1 {
		page = 1
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.state.MoveSelection(-1, n)
	case key.Matches(msg, m.keys.Down):
		m.state.MoveSelection(1, n)
	case key.Matches(msg, m.keys.PageUp):
		m.state.MoveSelection(-page, n)
	case key.Matches(msg, m.keys.PageDown):
		m.state.MoveSelection(page, n)
	case key.Matches(msg, m.keys.Top):
		m.state.Select(0, n)
	case key.Matches(msg, m.keys.Bottom):
		m.state.Select(n-1, n)

	case key.Matches(msg, m.keys.Search):
		return m.focusInput()
	case key.Matches(msg, m.keys.Vegan):
		m.toggle(mealplan.FilterVegan)
	case key.Matches(msg, m.keys.GlutenFree):
		m.toggle(mealplan.FilterGlutenFree)
	case key.Matches(msg, m.keys.Retry):
		m.queryChanged(m.search.Submit())

	case key.Matches(msg, m.keys.PrevIngr):
		if recipe, ok := m.selectedRecipe(); ok {
			m.state.MoveIngredient(-1, len(recipe.Ingredients))
		}
	case key.Matches(msg, m.keys.NextIngr):
		if recipe, ok := m.selectedRecipe(); ok {
			m.state.MoveIngredient(1, len(recipe.Ingredients))
		}
	case key.Matches(msg, m.keys.AddToCart):
		return m.addSelectedIngredient()
	case key.Matches(msg, m.keys.Detail):
		return m.openDetail()

	case key.Matches(msg, m.keys.Find):
		m.state.Focus = state.FocusFind
		m.findInput.SetValue(m.find.Query())
		m.findInput.CursorEnd()
		return m.findInput.Focus()
	case key.Matches(msg, m.keys.FindNext):
		m.find.NavigateNext()
	case key.Matches(msg, m.keys.FindPrev):
		m.find.NavigatePrevious()

	case key.Matches(msg, m.keys.Cart):
		m.state.Screen = state.ScreenCart
		if m.state.Username != "" && m.bus != nil {
			m.bus.Publish(eventbus.CartRefreshRequestedEvent{})
		}
	case key.Matches(msg, m.keys.Help):
		return openPager(m.helpRenderer.RenderHelpContent(screenKeys{keys: m.keys, screen: state.ScreenSearch}))
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}
	return nil
}

func (m *Model) handleCartKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.state.MoveCartSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.state.MoveCartSelection(1)
	case key.Matches(msg, m.keys.Increase):
		return m.adjustQuantity(1)
	case key.Matches(msg, m.keys.Decrease):
		return m.adjustQuantity(-1)
	case key.Matches(msg, m.keys.Remove):
		if line, ok := m.state.SelectedCartLine(); ok {
			return m.publishCart(eventbus.CartRemoveRequestedEvent{ItemID: line.ItemID})
		}
	case key.Matches(msg, m.keys.Refresh):
		return m.publishCart(eventbus.CartRefreshRequestedEvent{})
	case key.Matches(msg, m.keys.Back):
		m.state.Screen = state.ScreenSearch
	case key.Matches(msg, m.keys.Help):
		return openPager(m.helpRenderer.RenderHelpContent(screenKeys{keys: m.keys, screen: state.ScreenCart}))
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.state.Screen != state.ScreenSearch || msg.Action != tea.MouseActionPress {
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.state.MoveSelection(-wheelStep, len(m.search.Results))
	case tea.MouseButtonWheelDown:
		m.state.MoveSelection(wheelStep, len(m.search.Results))
	}
}

func (m *Model) toggle(name mealplan.FilterName) {
	if req, ok := m.search.ToggleFilter(name); ok {
		m.queryChanged(req)
	}
}

func (m *Model) focusInput() tea.Cmd {
	m.state.Focus = state.FocusInput
	return m.input.Focus()
}

func (m *Model) focusList() {
	m.input.Blur()
	m.state.Focus = state.FocusList
}

func (m *Model) closeFind() {
	m.findInput.Blur()
	m.state.Focus = state.FocusList
}

func (m *Model) addSelectedIngredient() tea.Cmd {
	recipe, ok := m.selectedRecipe()
	if !ok || len(recipe.Ingredients) == 0 {
		return m.setStatus("No ingredient selected.", true)
	}
	i := m.state.IngredientIndex
	if i < 0 || i >= len(recipe.Ingredients) {
		i = 0
	}
	item := recipe.Ingredients[i]
	if m.state.Username == "" {
		return m.setStatus(cart.NotLoggedInMessage, true)
	}
	m.publishCart(eventbus.CartAddRequestedEvent{ItemID: item.ID, Quantity: 1})
	return m.setStatus(fmt.Sprintf("Adding %s to cart...", item.Name), false)
}

// publishCart hands a cart request to the cart manager, or explains why it
// cannot
func (m *Model) publishCart(event eventbus.DomainEvent) tea.Cmd {
	if m.state.Username == "" {
		return m.setStatus(cart.NotLoggedInMessage, true)
	}
	if m.bus != nil {
		m.bus.Publish(event)
	}
	m.state.ClearStatus()
	return nil
}

// adjustQuantity changes the selected line relative to what was last
// requested, so quick repeated presses add up before the cart refreshes
func (m *Model) adjustQuantity(delta int) tea.Cmd {
	line, ok := m.state.SelectedCartLine()
	if !ok {
		return nil
	}
	if m.state.Username == "" {
		return m.setStatus(cart.NotLoggedInMessage, true)
	}
	qty := m.state.CartQuantity(line) + delta
	if qty < 0 {
		return nil
	}
	m.state.SetPendingQuantity(line.ItemID, qty)
	return m.publishCart(eventbus.CartUpdateRequestedEvent{ItemID: line.ItemID, Quantity: qty})
}

func (m *Model) openDetail() tea.Cmd {
	recipe, ok := m.selectedRecipe()
	if !ok {
		return nil
	}
	if m.recipes == nil {
		return openPager(m.helpRenderer.RenderRecipeDetail(recipe, m.baseURL))
	}
	ctx, src := m.ctx, m.recipes
	return func() tea.Msg {
		full, err := src.Recipe(ctx, recipe.ID)
		return recipeDetailMsg{recipe: full, fallback: recipe, err: err}
	}
}

func (m *Model) quit() tea.Cmd {
	if m.config.UISettings.ConfirmQuit && !m.quitArmed {
		m.quitArmed = true
		return m.setStatus("Press q again to quit.", false)
	}
	m.Close()
	return tea.Quit
}
