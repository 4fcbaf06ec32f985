package find

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Service finds loaded results by name and steps through the matches
type Service struct {
	state      State
	navigateFn func(int) // moves the cursor to a result index
}

// NewService creates a new find service
func NewService() *Service {
	return &Service{}
}

// SetNavigateFunction sets the function to navigate to an index
func (s *Service) SetNavigateFunction(fn func(int)) {
	s.navigateFn = fn
}

// Find runs query against names and jumps to the first match. It returns the
// number of matches.
func (s *Service) Find(query string, names []string) int {
	s.state.Query = strings.TrimSpace(query)
	s.state.CurrentMatch = 0
	s.state.Matches = match(s.state.Query, names)
	s.navigateToCurrentMatch()
	return len(s.state.Matches)
}

// Refresh re-runs the current query after the result list changed, keeping
// the position when the current match is still present
func (s *Service) Refresh(names []string) {
	if s.state.Query == "" {
		return
	}
	current := s.CurrentMatchIndex()
	s.state.Matches = match(s.state.Query, names)
	s.state.CurrentMatch = 0
	for i, idx := range s.state.Matches {
		if idx == current {
			s.state.CurrentMatch = i
			break
		}
	}
}

// Clear forgets the query and its matches
func (s *Service) Clear() {
	s.state = State{}
}

// NavigateNext moves to the next match, wrapping around
func (s *Service) NavigateNext() {
	if len(s.state.Matches) == 0 {
		return
	}
	s.state.CurrentMatch = (s.state.CurrentMatch + 1) % len(s.state.Matches)
	s.navigateToCurrentMatch()
}

// NavigatePrevious moves to the previous match, wrapping around
func (s *Service) NavigatePrevious() {
	if len(s.state.Matches) == 0 {
		return
	}
	s.state.CurrentMatch--
	if s.state.CurrentMatch < 0 {
		s.state.CurrentMatch = len(s.state.Matches) - 1
	}
	s.navigateToCurrentMatch()
}

// Query returns the active query
func (s *Service) Query() string {
	return s.state.Query
}

// MatchCount returns the number of matches
func (s *Service) MatchCount() int {
	return len(s.state.Matches)
}

// CurrentMatchIndex returns the result index of the current match, or -1
func (s *Service) CurrentMatchIndex() int {
	if len(s.state.Matches) == 0 {
		return -1
	}
	return s.state.Matches[s.state.CurrentMatch]
}

// Position is the 1-based position of the current match
func (s *Service) Position() int {
	if len(s.state.Matches) == 0 {
		return 0
	}
	return s.state.CurrentMatch + 1
}

// IsMatch checks if a result index is a match
func (s *Service) IsMatch(index int) bool {
	i := sort.SearchInts(s.state.Matches, index)
	return i < len(s.state.Matches) && s.state.Matches[i] == index
}

func (s *Service) navigateToCurrentMatch() {
	if s.navigateFn == nil || len(s.state.Matches) == 0 {
		return
	}
	s.navigateFn(s.state.Matches[s.state.CurrentMatch])
}

func match(query string, names []string) []int {
	if query == "" {
		return nil
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	matches := make([]int, 0, len(ranks))
	for _, rank := range ranks {
		matches = append(matches, rank.OriginalIndex)
	}
	sort.Ints(matches)
	return matches
}
