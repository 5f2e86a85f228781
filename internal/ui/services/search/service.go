package search

import (
	"strings"

	"github.com/charmbracelet/log"

	"stockhub/internal/domain"
	"stockhub/internal/ui/logic"
	"stockhub/internal/ui/services/events"
)

// Service holds the search term of one select and the options it matches
type Service struct {
	state  *State
	bus    events.EventBus
	filter *logic.OptionFilter
	owner  string
}

// NewService creates a new search service
func NewService(bus events.EventBus, filter *logic.OptionFilter) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		state:  &State{},
		bus:    bus,
		filter: filter,
	}
}

// SetOwner sets the identifier attached to published events
func (s *Service) SetOwner(owner string) {
	s.owner = owner
}

// StartSearch sets the query and recomputes matches against options
func (s *Service) StartSearch(query string, options []domain.Option) {
	if query == s.state.Query && s.state.Matches != nil {
		return
	}

	s.state.Query = query
	s.bus.Publish(SearchStartedEvent{Owner: s.owner, Query: query})
	s.performSearch(options)
}

// Refresh recomputes matches for the current query, e.g. after the options changed
func (s *Service) Refresh(options []domain.Option) {
	s.performSearch(options)
}

// ClearSearch resets the query; every option matches afterwards
func (s *Service) ClearSearch(options []domain.Option) {
	s.state.Query = ""
	s.performSearch(options)
	s.bus.Publish(SearchClearedEvent{Owner: s.owner})
}

// GetQuery returns the current search query
func (s *Service) GetQuery() string {
	return s.state.Query
}

// Matches returns the indices of matching options
func (s *Service) Matches() []int {
	return s.state.Matches
}

// GetMatchCount returns the number of matches
func (s *Service) GetMatchCount() int {
	return len(s.state.Matches)
}

func (s *Service) performSearch(options []domain.Option) {
	s.state.Matches = s.filter.Indices(options, s.state.Query)

	if s.state.Query != "" {
		log.Debug("search completed", "owner", s.owner, "query", s.state.Query, "matches", len(s.state.Matches))
	}

	s.bus.Publish(SearchCompletedEvent{
		Owner:      s.owner,
		Query:      s.state.Query,
		MatchCount: len(s.state.Matches),
		Total:      len(options),
	})
}

// ShouldHighlight reports whether text contains the query, ignoring case
func (s *Service) ShouldHighlight(text string) bool {
	if s.state.Query == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(s.state.Query))
}
