package state

import (
	"sort"

	"stockhub/internal/domain"
)

// Focus targets of the form, in tab order after the selects
const (
	FocusNotes  = "notes"
	FocusSubmit = "submit"
)

// AppState contains all the form state that is not owned by a component
type AppState struct {
	// Focus order: one entry per select field, then notes and submit
	FocusOrder []string
	Focus      int

	// Option data
	OptionCounts map[domain.Source]int
	Fallback     map[domain.Source]bool

	// Operation states
	LoadingSources map[domain.Source]bool
	Submitting     bool
	SpinnerFrame   int

	// UI state
	StatusMessage    string
	StatusIsError    bool
	ShowHelp         bool
	HelpScrollOffset int
	SearchInfo       string

	LastCreated *domain.Assignment
}

// NewAppState creates a new application state
func NewAppState(fields []string) *AppState {
	order := make([]string, 0, len(fields)+2)
	order = append(order, fields...)
	order = append(order, FocusNotes, FocusSubmit)

	return &AppState{
		FocusOrder:     order,
		OptionCounts:   make(map[domain.Source]int),
		Fallback:       make(map[domain.Source]bool),
		LoadingSources: make(map[domain.Source]bool),
	}
}

// Focus operations

// FocusedName returns the name of the focused item
func (s *AppState) FocusedName() string {
	if s.Focus < 0 || s.Focus >= len(s.FocusOrder) {
		return ""
	}
	return s.FocusOrder[s.Focus]
}

// FocusNext moves focus forward, wrapping around
func (s *AppState) FocusNext() {
	if len(s.FocusOrder) == 0 {
		return
	}
	s.Focus = (s.Focus + 1) % len(s.FocusOrder)
}

// FocusPrev moves focus backward, wrapping around
func (s *AppState) FocusPrev() {
	if len(s.FocusOrder) == 0 {
		return
	}
	s.Focus = (s.Focus - 1 + len(s.FocusOrder)) % len(s.FocusOrder)
}

// FocusOn focuses the named item; unknown names are ignored
func (s *AppState) FocusOn(name string) bool {
	for i, n := range s.FocusOrder {
		if n == name {
			s.Focus = i
			return true
		}
	}
	return false
}

// Loading operations

// SetLoading marks sources as loading or settled
func (s *AppState) SetLoading(sources []domain.Source, loading bool) {
	for _, source := range sources {
		if loading {
			s.LoadingSources[source] = true
		} else {
			delete(s.LoadingSources, source)
		}
	}
}

// ClearLoading marks every source as settled
func (s *AppState) ClearLoading() {
	s.LoadingSources = make(map[domain.Source]bool)
}

// IsLoading reports whether any source is still loading
func (s *AppState) IsLoading() bool {
	return len(s.LoadingSources) > 0
}

// Loading returns the loading sources in a stable order
func (s *AppState) Loading() []domain.Source {
	return sortedSources(s.LoadingSources)
}

// FallbackSources returns the sources served from built-in data
func (s *AppState) FallbackSources() []domain.Source {
	return sortedSources(s.Fallback)
}

// Status operations

// SetStatus shows an informational message
func (s *AppState) SetStatus(msg string) {
	s.StatusMessage = msg
	s.StatusIsError = false
}

// SetError shows an error message
func (s *AppState) SetError(msg string) {
	s.StatusMessage = msg
	s.StatusIsError = true
}

func sortedSources(set map[domain.Source]bool) []domain.Source {
	result := make([]domain.Source, 0, len(set))
	for source, ok := range set {
		if ok {
			result = append(result, source)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
