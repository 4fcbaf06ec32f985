package state

import (
	"pantry/internal/domain"
)

// Screen is the top-level view being shown
type Screen int

const (
	ScreenSearch Screen = iota
	ScreenCart
)

// Focus says which part of the search screen receives keys
type Focus int

const (
	FocusInput Focus = iota // the search term box
	FocusList               // the results list
	FocusFind               // the find-in-results prompt
)

// AppState contains the UI state that is not owned by the search engine
type AppState struct {
	Screen Screen
	Focus  Focus

	// Results list
	SelectedIndex   int // selected recipe
	IngredientIndex int // selected ingredient within the selected recipe
	ViewportOffset  int // first visible row
	ViewportHeight  int // rows available for results

	// Cart
	CartLines []domain.CartLine
	CartIndex int

	// quantities requested for cart lines but not yet confirmed by a refresh
	pendingQty map[int]int

	// Session
	Username string

	StatusMessage string
	StatusIsError bool
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		ViewportHeight: 10, // Updated on the first WindowSizeMsg
	}
}

// SetStatus replaces the status line
func (s *AppState) SetStatus(msg string, isError bool) {
	s.StatusMessage = msg
	s.StatusIsError = isError
}

// ClearStatus empties the status line
func (s *AppState) ClearStatus() {
	s.SetStatus("", false)
}

// Selection operations

// MoveSelection moves the cursor by delta within count rows
func (s *AppState) MoveSelection(delta, count int) {
	s.Select(s.SelectedIndex+delta, count)
}

// Select puts the cursor on index, clamped to the list
func (s *AppState) Select(index, count int) {
	if count <= 0 {
		s.SelectedIndex = 0
		s.ViewportOffset = 0
		s.IngredientIndex = 0
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= count {
		index = count - 1
	}
	if index != s.SelectedIndex {
		s.IngredientIndex = 0
	}
	s.SelectedIndex = index
	s.EnsureVisible(count)
}

// ResetSelection goes back to the top of an emptied list
func (s *AppState) ResetSelection() {
	s.SelectedIndex = 0
	s.IngredientIndex = 0
	s.ViewportOffset = 0
}

// EnsureVisible scrolls the viewport so the selected row is on screen
func (s *AppState) EnsureVisible(count int) {
	height := s.ViewportHeight
	if height < 1 {
		height = 1
	}
	if s.SelectedIndex < s.ViewportOffset {
		s.ViewportOffset = s.SelectedIndex
	}
	if s.SelectedIndex >= s.ViewportOffset+height {
		s.ViewportOffset = s.SelectedIndex - height + 1
	}
	maxOffset := count - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ViewportOffset > maxOffset {
		s.ViewportOffset = maxOffset
	}
	if s.ViewportOffset < 0 {
		s.ViewportOffset = 0
	}
}

// VisibleRange returns the half-open range of rows on screen
func (s *AppState) VisibleRange(count int) (start, end int) {
	start = s.ViewportOffset
	if start > count {
		start = count
	}
	end = start + s.ViewportHeight
	if end > count {
		end = count
	}
	return start, end
}

// MoveIngredient cycles the ingredient cursor within n ingredients
func (s *AppState) MoveIngredient(delta, n int) {
	if n <= 0 {
		s.IngredientIndex = 0
		return
	}
	s.IngredientIndex = ((s.IngredientIndex+delta)%n + n) % n
}

// Cart operations

// SetCart replaces the cart lines and keeps the cursor in range. A pending
// quantity is settled once the cart shows it or the line is gone.
func (s *AppState) SetCart(lines []domain.CartLine) {
	s.CartLines = lines
	s.MoveCartSelection(0)
	for itemID, qty := range s.pendingQty {
		line, ok := s.cartLine(itemID)
		if !ok || line.Quantity == qty {
			delete(s.pendingQty, itemID)
		}
	}
}

// CartQuantity is the quantity of line including requests still in flight
func (s *AppState) CartQuantity(line domain.CartLine) int {
	if qty, ok := s.pendingQty[line.ItemID]; ok {
		return qty
	}
	return line.Quantity
}

// SetPendingQuantity records a quantity requested for itemID
func (s *AppState) SetPendingQuantity(itemID, qty int) {
	if s.pendingQty == nil {
		s.pendingQty = make(map[int]int)
	}
	s.pendingQty[itemID] = qty
}

// ClearPendingQuantities forgets every unconfirmed request, e.g. after a
// cart operation failed
func (s *AppState) ClearPendingQuantities() {
	s.pendingQty = nil
}

func (s *AppState) cartLine(itemID int) (domain.CartLine, bool) {
	for _, l := range s.CartLines {
		if l.ItemID == itemID {
			return l, true
		}
	}
	return domain.CartLine{}, false
}

// MoveCartSelection moves the cart cursor by delta
func (s *AppState) MoveCartSelection(delta int) {
	s.CartIndex += delta
	if s.CartIndex >= len(s.CartLines) {
		s.CartIndex = len(s.CartLines) - 1
	}
	if s.CartIndex < 0 {
		s.CartIndex = 0
	}
}

// SelectedCartLine returns the line under the cart cursor
func (s *AppState) SelectedCartLine() (domain.CartLine, bool) {
	if s.CartIndex < 0 || s.CartIndex >= len(s.CartLines) {
		return domain.CartLine{}, false
	}
	return s.CartLines[s.CartIndex], true
}

// CartCount is the total quantity in the cart
func (s *AppState) CartCount() int {
	n := 0
	for _, l := range s.CartLines {
		n += l.Quantity
	}
	return n
}
