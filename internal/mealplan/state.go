package mealplan

import (
	"github.com/google/uuid"

	"pantry/internal/domain"
)

// DefaultPageSize is the page size the storefront uses for recipe search
const DefaultPageSize = 20

// PageRequest fully determines one page fetch. Generation and Page fence the
// request against the state it was issued from.
type PageRequest struct {
	Query      Query
	Page       int
	PageSize   int
	Generation uint64
	ID         string // correlation id for logs and the X-Request-ID header
}

// Search converts the request to API parameters
func (r PageRequest) Search() domain.RecipeSearch {
	return domain.RecipeSearch{
		Term:       r.Query.Term,
		Vegan:      r.Query.Filters.Vegan,
		GlutenFree: r.Query.Filters.GlutenFree,
		Page:       r.Page,
		PerPage:    r.PageSize,
	}
}

// Phase is the coarse lifecycle of the live query
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded    // at least one page applied, more may follow
	PhaseExhausted // an empty page was seen; no more fetches for this query
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseExhausted:
		return "exhausted"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// State is the owned search state: the query, its pagination and the
// accumulated results. The zero value is not ready; use NewState.
type State struct {
	Query      Query
	Pagination Pagination
	Results    []domain.Recipe
	PageSize   int

	generation uint64
	applied    int // pages applied for the live query
}

// NewState returns an idle state for q. Nothing is fetched until the host
// issues the request returned by Submit.
func NewState(q Query, pageSize int) *State {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &State{
		Query:      q,
		Pagination: Pagination{CurrentPage: 1, HasMore: true},
		PageSize:   pageSize,
	}
}

// Generation increments on every reset
func (s *State) Generation() uint64 {
	return s.generation
}

// PagesLoaded is the number of pages applied for the live query, empty
// terminal page excluded
func (s *State) PagesLoaded() int {
	return s.applied
}

// Phase derives the lifecycle phase from the pagination flags
func (s *State) Phase() Phase {
	switch {
	case s.Pagination.Loading:
		return PhaseLoading
	case s.Pagination.Err != nil:
		return PhaseFailed
	case !s.Pagination.HasMore:
		return PhaseExhausted
	case s.applied > 0:
		return PhaseLoaded
	}
	return PhaseIdle
}

// LastResultID returns the ID of the last accumulated result
func (s *State) LastResultID() (int, bool) {
	if len(s.Results) == 0 {
		return 0, false
	}
	return s.Results[len(s.Results)-1].ID, true
}

func (s *State) request() PageRequest {
	return PageRequest{
		Query:      s.Query,
		Page:       s.Pagination.CurrentPage,
		PageSize:   s.PageSize,
		Generation: s.generation,
		ID:         uuid.NewString(),
	}
}

// current reports whether req was issued from the live state and is the one
// the state is waiting for.
func (s *State) current(req PageRequest) bool {
	return req.Generation == s.generation &&
		req.Query == s.Query &&
		req.Page == s.Pagination.CurrentPage
}
