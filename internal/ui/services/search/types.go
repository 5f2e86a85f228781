package search

// State holds search state
type State struct {
	Query   string
	Matches []int // Indices of matching options, ascending
}

// Event types
type SearchStartedEvent struct {
	Owner string
	Query string
}

type SearchCompletedEvent struct {
	Owner      string
	Query      string
	MatchCount int
	Total      int
}

type SearchClearedEvent struct {
	Owner string
}
