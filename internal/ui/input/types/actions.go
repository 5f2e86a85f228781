package types

// Focus actions
type FocusAction struct {
	Direction string // "next" or "prev"
}

func (a FocusAction) Type() string { return "focus" }

// ForwardAction passes the key to the focused component
type ForwardAction struct{}

func (a ForwardAction) Type() string { return "forward" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

// Form actions
type SubmitAction struct{}

func (a SubmitAction) Type() string { return "submit" }

type ResetFormAction struct{}

func (a ResetFormAction) Type() string { return "reset_form" }

type ReloadAction struct{}

func (a ReloadAction) Type() string { return "reload" }

type CycleSortAction struct{}

func (a CycleSortAction) Type() string { return "cycle_sort" }

// Help actions
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type ScrollHelpAction struct {
	Delta int
}

func (a ScrollHelpAction) Type() string { return "scroll_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
