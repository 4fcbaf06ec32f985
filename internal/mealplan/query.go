package mealplan

import (
	"fmt"
	"strings"
)

// FilterName identifies one dietary filter
type FilterName string

const (
	FilterVegan      FilterName = "vegan"
	FilterGlutenFree FilterName = "glutenFree"
)

// Filters are the boolean search filters
type Filters struct {
	Vegan      bool
	GlutenFree bool
}

// Query is what to search for. It is a comparable value; two queries are the
// same search exactly when they are ==.
type Query struct {
	Term    string
	Filters Filters
}

// WithTerm returns a copy of q searching for term. The term is not
// validated; "" means no text filter.
func (q Query) WithTerm(term string) Query {
	q.Term = term
	return q
}

// Toggle returns a copy of q with the named filter flipped. Unknown names
// return q unchanged.
func (q Query) Toggle(name FilterName) Query {
	switch name {
	case FilterVegan:
		q.Filters.Vegan = !q.Filters.Vegan
	case FilterGlutenFree:
		q.Filters.GlutenFree = !q.Filters.GlutenFree
	}
	return q
}

// Enabled reports whether the named filter is on
func (q Query) Enabled(name FilterName) bool {
	switch name {
	case FilterVegan:
		return q.Filters.Vegan
	case FilterGlutenFree:
		return q.Filters.GlutenFree
	}
	return false
}

func (q Query) String() string {
	var flags []string
	if q.Filters.Vegan {
		flags = append(flags, "vegan")
	}
	if q.Filters.GlutenFree {
		flags = append(flags, "gluten-free")
	}
	if len(flags) == 0 {
		return fmt.Sprintf("%q", q.Term)
	}
	return fmt.Sprintf("%q [%s]", q.Term, strings.Join(flags, ","))
}

// ParseFilterName accepts the spellings used by the API, the config file and
// the command line.
func ParseFilterName(s string) (FilterName, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vegan":
		return FilterVegan, nil
	case "glutenfree", "gluten_free", "gluten-free":
		return FilterGlutenFree, nil
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// SetTerm replaces the search term. When the query actually changes the
// results and pagination are reset and the page-1 request to issue is
// returned; an unchanged term is a no-op.
func (s *State) SetTerm(term string) (PageRequest, bool) {
	return s.setQuery(s.Query.WithTerm(term))
}

// ToggleFilter flips one filter, with the same reset semantics as SetTerm.
func (s *State) ToggleFilter(name FilterName) (PageRequest, bool) {
	return s.setQuery(s.Query.Toggle(name))
}

// Submit is the explicit "search" action: it always resets and returns a
// page-1 request, even for an unchanged query. It is also how a failed query
// is retried.
func (s *State) Submit() PageRequest {
	s.Reset()
	return s.request()
}

func (s *State) setQuery(next Query) (PageRequest, bool) {
	if next == s.Query {
		return PageRequest{}, false
	}
	s.Query = next
	s.Reset()
	return s.request(), true
}
