package input

import (
	"stockhub/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.AppState
	// Open reports whether any select panel is open
	Open func() bool
}

// FocusedName returns the name of the focused form item
func (c *ModelContext) FocusedName() string {
	return c.State.FocusedName()
}

// SelectOpen returns true if a select panel is open
func (c *ModelContext) SelectOpen() bool {
	return c.Open != nil && c.Open()
}

// Submitting returns true while an assignment is being created
func (c *ModelContext) Submitting() bool {
	return c.State.Submitting
}

// HelpVisible returns true while the help overlay is shown
func (c *ModelContext) HelpVisible() bool {
	return c.State.ShowHelp
}
