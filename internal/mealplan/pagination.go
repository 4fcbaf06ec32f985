package mealplan

// Pagination is the cursor over the live query's pages.
//
// HasMore uses one page of lookahead: any non-empty page means another page
// might follow, and only an empty page ends the query. The last non-empty page
// therefore always costs one extra request that comes back empty.
type Pagination struct {
	CurrentPage int
	HasMore     bool
	Loading     bool
	Err         error
}

// Reset starts the live query over: page 1, more expected, no results, no
// error, not loading. Bumping the generation invalidates every request issued
// before the reset, including one still in flight.
func (s *State) Reset() {
	s.generation++
	s.applied = 0
	s.Results = nil
	s.Pagination = Pagination{CurrentPage: 1, HasMore: true}
}

// CanAdvance reports whether the next page may be requested. A failed query
// stays put until the query changes or is re-submitted.
func (s *State) CanAdvance() bool {
	p := s.Pagination
	return p.HasMore && !p.Loading && p.Err == nil && s.applied > 0
}

// Advance moves the cursor to the next page and returns its request. Calls
// that arrive while a page is loading, after the query is exhausted, after a
// failure or before the first page applied are ignored.
func (s *State) Advance() (PageRequest, bool) {
	if !s.CanAdvance() {
		return PageRequest{}, false
	}
	s.Pagination.CurrentPage++
	return s.request(), true
}

// SetHasMore records whether the last fetched page was non-empty
func (s *State) SetHasMore(more bool) {
	s.Pagination.HasMore = more
}
