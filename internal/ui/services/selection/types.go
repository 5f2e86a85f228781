package selection

// State holds the controlled value of every form field
type State struct {
	Values map[string]string // field name -> selected key
}

// Event types
type SelectionChangedEvent struct {
	Field string
	Old   string
	New   string
}

type SelectionClearedEvent struct {
	Field string
}

type AllClearedEvent struct{}
