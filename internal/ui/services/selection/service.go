package selection

import "stockhub/internal/ui/services/events"

// Service owns the values the form's selects display.
// Selects never store a value themselves; they report changes here.
type Service struct {
	state *State
	bus   events.EventBus
}

// NewService creates a new selection service
func NewService(bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		state: &State{
			Values: make(map[string]string),
		},
		bus: bus,
	}
}

// Set records value for field. Setting the empty string clears the field.
func (s *Service) Set(field, value string) {
	if value == "" {
		s.Clear(field)
		return
	}

	old := s.state.Values[field]
	if old == value {
		return
	}
	s.state.Values[field] = value

	s.bus.Publish(SelectionChangedEvent{Field: field, Old: old, New: value})
}

// Clear removes the value of field
func (s *Service) Clear(field string) {
	old, ok := s.state.Values[field]
	if !ok {
		return
	}
	delete(s.state.Values, field)

	s.bus.Publish(SelectionChangedEvent{Field: field, Old: old, New: ""})
	s.bus.Publish(SelectionClearedEvent{Field: field})
}

// ClearAll removes every value
func (s *Service) ClearAll() {
	s.state.Values = make(map[string]string)
	s.bus.Publish(AllClearedEvent{})
}

// Get returns the value of field, "" when unset
func (s *Service) Get(field string) string {
	return s.state.Values[field]
}

// HasValue reports whether field has a value
func (s *Service) HasValue(field string) bool {
	return s.state.Values[field] != ""
}

// Values returns a copy of all values
func (s *Service) Values() map[string]string {
	result := make(map[string]string, len(s.state.Values))
	for k, v := range s.state.Values {
		result[k] = v
	}
	return result
}

// Missing returns the fields among required that have no value, in the
// order of required
func (s *Service) Missing(required []string) []string {
	var missing []string
	for _, field := range required {
		if !s.HasValue(field) {
			missing = append(missing, field)
		}
	}
	return missing
}

// GetCount returns the number of fields with a value
func (s *Service) GetCount() int {
	return len(s.state.Values)
}
