package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventOptionsRequested     EventType = "OptionsRequested"
	EventOptionsLoaded        EventType = "OptionsLoaded"
	EventOptionsFailed        EventType = "OptionsFailed"
	EventLoadStarted          EventType = "LoadStarted"
	EventLoadCompleted        EventType = "LoadCompleted"
	EventAssignmentRequested  EventType = "AssignmentRequested"
	EventAssignmentCreated    EventType = "AssignmentCreated"
	EventSelectionChanged     EventType = "SelectionChanged"
	EventError                EventType = "Error"
	EventConfigLoaded         EventType = "ConfigLoaded"
	EventConfigSaved          EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// OptionsRequestedEvent asks the catalog to (re)load sources.
// An empty list means every known source.
type OptionsRequestedEvent struct {
	Sources []Source
}

func (e OptionsRequestedEvent) Type() EventType { return EventOptionsRequested }

// OptionsLoadedEvent is emitted when a source has been materialised
type OptionsLoadedEvent struct {
	Source   Source
	Options  []Option
	Fallback bool // true when fixtures were used instead of the backend
}

func (e OptionsLoadedEvent) Type() EventType { return EventOptionsLoaded }

// OptionsFailedEvent is emitted when the backend could not provide a source
type OptionsFailedEvent struct {
	Source Source
	Err    error
}

func (e OptionsFailedEvent) Type() EventType { return EventOptionsFailed }

// LoadStartedEvent is emitted when the catalog begins a load
type LoadStartedEvent struct {
	Sources []Source
}

func (e LoadStartedEvent) Type() EventType { return EventLoadStarted }

// LoadCompletedEvent is emitted when every requested source has settled
type LoadCompletedEvent struct {
	Loaded int
	Failed int
}

func (e LoadCompletedEvent) Type() EventType { return EventLoadCompleted }

// AssignmentRequestedEvent asks the submitter to create an assignment
type AssignmentRequestedEvent struct {
	Assignment Assignment
}

func (e AssignmentRequestedEvent) Type() EventType { return EventAssignmentRequested }

// AssignmentCreatedEvent is emitted after the backend accepted an assignment
type AssignmentCreatedEvent struct {
	Assignment Assignment
}

func (e AssignmentCreatedEvent) Type() EventType { return EventAssignmentCreated }

// SelectionChangedEvent is emitted when a form field's value changes
type SelectionChangedEvent struct {
	Field string
	Value string
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted after configuration is read
type ConfigLoadedEvent struct {
	Path    string
	BaseURL string
	Offline bool
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted after configuration is written
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
