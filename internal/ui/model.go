package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"pantry/internal/config"
	"pantry/internal/domain"
	"pantry/internal/eventbus"
	"pantry/internal/mealplan"
	"pantry/internal/ui/services/find"
	"pantry/internal/ui/state"
	"pantry/internal/ui/views"
)

const (
	statusTimeout = 3 * time.Second

	// rows taken by the title, search box, filters, status and help lines
	reservedRows   = 13
	ingredientRows = views.IngredientRows + 4
	minResultRows  = 3
)

// RecipeSource fetches one recipe with its ingredients
type RecipeSource interface {
	Recipe(ctx context.Context, id int) (domain.Recipe, error)
}

// Services are the collaborators the model talks to
type Services struct {
	Searcher   mealplan.Searcher
	Recipes    RecipeSource // optional; the loaded row is shown when nil
	APIBaseURL string       // resolves ingredient pictures
	Username   string       // signed-in user, empty when logged out
	Logger     *zap.Logger
}

type clearStatusMsg struct {
	seq int
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState
	logger *zap.Logger

	width  int
	height int

	keys      keyMap
	help      help.Model
	input     textinput.Model
	findInput textinput.Model
	spinner   spinner.Model
	spinning  bool

	// Search engine
	search   *mealplan.State
	coord    *mealplan.Coordinator
	sentinel *mealplan.Sentinel
	tracker  *VisibilityTracker
	pending  []tea.Cmd // commands queued by the engine during this update

	find         *find.Service
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	recipes      RecipeSource
	baseURL      string

	statusSeq int
	quitArmed bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, svc Services) *Model {
	logger := svc.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	query := mealplan.Query{Filters: mealplan.Filters{
		Vegan:      cfg.Search.DefaultVegan,
		GlutenFree: cfg.Search.DefaultGlutenFree,
	}}

	input := textinput.New()
	input.Placeholder = "Search recipes..."
	input.Prompt = "Search: "
	input.CharLimit = 100
	input.Focus()

	findInput := textinput.New()
	findInput.Prompt = "Find: "
	findInput.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	appState := state.NewAppState()
	appState.Username = svc.Username

	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        appState,
		logger:       logger.Named("ui"),
		keys:         defaultKeyMap(),
		help:         help.New(),
		input:        input,
		findInput:    findInput,
		spinner:      sp,
		search:       mealplan.NewState(query, cfg.Search.PageSize),
		coord:        mealplan.NewCoordinator(svc.Searcher, logger),
		tracker:      NewVisibilityTracker(),
		find:         find.NewService(),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		recipes:      svc.Recipes,
		baseURL:      svc.APIBaseURL,
		ctx:          ctx,
		cancel:       cancel,
	}
	m.sentinel = mealplan.NewSentinel(m.tracker, m.issue)
	m.find.SetNavigateFunction(func(index int) {
		m.state.Select(index, len(m.search.Results))
	})
	return m
}

// Close cancels fetches that are still running
func (m *Model) Close() {
	m.cancel()
}

// Init starts the first search, an empty term with the configured filters
func (m *Model) Init() tea.Cmd {
	m.issue(m.search.Submit())
	if m.state.Username != "" && m.bus != nil {
		m.bus.Publish(eventbus.CartRefreshRequestedEvent{})
	}
	return tea.Batch(append(m.drain(), textinput.Blink)...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 16
		m.updateViewportHeight()

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case pageMsg:
		m.handlePage(msg.result)

	case recipeDetailMsg:
		recipe := msg.recipe
		if msg.err != nil {
			m.logger.Warn("recipe fetch failed", zap.Int("recipe_id", msg.fallback.ID), zap.Error(msg.err))
			recipe = msg.fallback
		}
		cmd = openPager(m.helpRenderer.RenderRecipeDetail(recipe, m.baseURL))

	case pagerDoneMsg:
		if msg.err != nil {
			m.logger.Warn("pager failed", zap.Error(msg.err))
			cmd = m.setStatus(fmt.Sprintf("Pager failed: %v", msg.err), true)
		}

	case EventMsg:
		cmd = m.handleEvent(msg.Event)

	case spinner.TickMsg:
		if !m.search.Pagination.Loading {
			m.spinning = false
			break
		}
		m.spinner, cmd = m.spinner.Update(msg)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.state.ClearStatus()
		}

	default:
		// cursor blink and other textinput messages
		var inputCmd, findCmd tea.Cmd
		m.input, inputCmd = m.input.Update(msg)
		m.findInput, findCmd = m.findInput.Update(msg)
		cmd = tea.Batch(inputCmd, findCmd)
	}

	return m, m.afterUpdate(cmd)
}

// afterUpdate re-points the sentinel, reports what is on screen and returns
// cmd together with any fetches the engine queued
func (m *Model) afterUpdate(cmd tea.Cmd) tea.Cmd {
	m.sentinel.Sync(m.search)
	m.tracker.Report(m.visibleIDs())
	return tea.Batch(append(m.drain(), cmd)...)
}

func (m *Model) drain() []tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return cmds
}

// issue starts req. The sentinel calls it from inside Report, so it must
// leave the state loading before returning.
func (m *Model) issue(req mealplan.PageRequest) {
	if !m.coord.Begin(m.search, req) {
		return
	}
	m.pending = append(m.pending, m.fetchPage(req))
	if !m.spinning {
		m.spinning = true
		m.pending = append(m.pending, m.spinner.Tick)
	}
}

func (m *Model) fetchPage(req mealplan.PageRequest) tea.Cmd {
	ctx, coord := m.ctx, m.coord
	return func() tea.Msg {
		return pageMsg{result: coord.Fetch(ctx, req)}
	}
}

func (m *Model) handlePage(res mealplan.PageResult) {
	outcome := m.coord.Apply(m.search, res)
	m.logger.Debug("page applied",
		zap.String("request_id", res.Request.ID),
		zap.Int("page", res.Request.Page),
		zap.Stringer("outcome", outcome),
		zap.Int("results", len(m.search.Results)))

	if outcome == mealplan.OutcomeAppended {
		m.find.Refresh(m.resultNames())
		m.state.Select(m.state.SelectedIndex, len(m.search.Results))
	}
}

// queryChanged starts over after the term or a filter changed
func (m *Model) queryChanged(req mealplan.PageRequest) {
	m.state.ResetSelection()
	m.find.Clear()
	m.issue(req)
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.CartUpdatedEvent:
		m.state.SetCart(e.Lines)
		if e.Message != "" {
			return m.setStatus(e.Message, false)
		}
	case eventbus.ErrorEvent:
		m.state.ClearPendingQuantities()
		return m.setStatus(e.Message, true)
	case eventbus.LoggedInEvent:
		m.state.Username = e.Username
		return m.setStatus(fmt.Sprintf("Logged in as %s", e.Username), false)
	case eventbus.LoggedOutEvent:
		m.state.Username = ""
		m.state.SetCart(nil)
	}
	return nil
}

// setStatus shows msg and clears it after a while unless replaced
func (m *Model) setStatus(msg string, isError bool) tea.Cmd {
	m.state.SetStatus(msg, isError)
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m *Model) updateViewportHeight() {
	rows := m.height - reservedRows
	if m.config.UISettings.ShowIngredients {
		rows -= ingredientRows
	}
	if rows < minResultRows {
		rows = minResultRows
	}
	m.state.ViewportHeight = rows
	m.state.EnsureVisible(len(m.search.Results))
}

// visibleIDs lists the recipes on screen; nothing is visible off the
// search screen
func (m *Model) visibleIDs() []int {
	if m.state.Screen != state.ScreenSearch {
		return nil
	}
	start, end := m.state.VisibleRange(len(m.search.Results))
	ids := make([]int, 0, end-start)
	for _, r := range m.search.Results[start:end] {
		ids = append(ids, r.ID)
	}
	return ids
}

func (m *Model) resultNames() []string {
	names := make([]string, len(m.search.Results))
	for i, r := range m.search.Results {
		names[i] = r.Name
	}
	return names
}

func (m *Model) selectedRecipe() (domain.Recipe, bool) {
	i := m.state.SelectedIndex
	if i < 0 || i >= len(m.search.Results) {
		return domain.Recipe{}, false
	}
	return m.search.Results[i], true
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	vs := views.ViewState{
		Width:           m.width,
		Height:          m.height,
		Screen:          m.state.Screen,
		Focus:           m.state.Focus,
		SearchInput:     m.input.View(),
		Vegan:           m.search.Query.Filters.Vegan,
		GlutenFree:      m.search.Query.Filters.GlutenFree,
		Results:         m.search.Results,
		SelectedIndex:   m.state.SelectedIndex,
		IngredientIndex: m.state.IngredientIndex,
		ViewportOffset:  m.state.ViewportOffset,
		ViewportHeight:  m.state.ViewportHeight,
		ShowIngredients: m.config.UISettings.ShowIngredients,
		IsMatch:         m.find.IsMatch,
		Loading:         m.search.Pagination.Loading,
		Spinner:         m.spinner.View(),
		Exhausted:       m.search.Phase() == mealplan.PhaseExhausted,
		ErrorText:       mealplan.UserMessage(m.search.Pagination.Err),
		CartLines:       m.state.CartLines,
		CartIndex:       m.state.CartIndex,
		CartCount:       m.state.CartCount(),
		Username:        m.state.Username,
		StatusMessage:   m.state.StatusMessage,
		StatusIsError:   m.state.StatusIsError,
		HelpView:        m.help.View(screenKeys{keys: m.keys, screen: m.state.Screen}),
	}
	if m.state.Focus == state.FocusFind {
		vs.FindInput = m.findInput.View()
	}
	if q := m.find.Query(); q != "" {
		vs.FindSummary = fmt.Sprintf("find %q: %d/%d (n/N)", q, m.find.Position(), m.find.MatchCount())
	}
	return m.renderer.Render(vs)
}
