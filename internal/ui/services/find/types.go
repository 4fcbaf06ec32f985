package find

// State holds find-in-results state
type State struct {
	Query        string
	Matches      []int // indices of matching results, in display order
	CurrentMatch int   // position in Matches
}
