package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"stockhub/internal/ui/input/types"
	"stockhub/internal/ui/state"
)

// NormalMode handles keys while no panel is open and notes is not focused
type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyCtrlC {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	if ctx.HelpVisible() {
		return m.handleHelpKey(msg)
	}

	switch msg.Type {
	case tea.KeyTab:
		return []types.Action{types.FocusAction{Direction: "next"}}, true

	case tea.KeyShiftTab:
		return []types.Action{types.FocusAction{Direction: "prev"}}, true

	case tea.KeyEnter:
		if ctx.FocusedName() == state.FocusSubmit {
			if ctx.Submitting() {
				return nil, true
			}
			return []types.Action{types.SubmitAction{}}, true
		}
		// the focused select opens itself
		return nil, false

	case tea.KeyCtrlR:
		return []types.Action{types.ReloadAction{}}, true

	case tea.KeyCtrlX:
		return []types.Action{types.ResetFormAction{}}, true
	}

	switch msg.String() {
	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "s":
		return []types.Action{types.CycleSortAction{}}, true

	case "j":
		return []types.Action{types.FocusAction{Direction: "next"}}, true

	case "k":
		return []types.Action{types.FocusAction{Direction: "prev"}}, true
	}

	return nil, false
}

func (m *NormalMode) handleHelpKey(msg tea.KeyMsg) ([]types.Action, bool) {
	switch msg.String() {
	case "?", "esc", "q":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "up", "k":
		return []types.Action{types.ScrollHelpAction{Delta: -1}}, true
	case "down", "j":
		return []types.Action{types.ScrollHelpAction{Delta: 1}}, true
	case "pgup":
		return []types.Action{types.ScrollHelpAction{Delta: -10}}, true
	case "pgdown":
		return []types.Action{types.ScrollHelpAction{Delta: 10}}, true
	}
	// swallow everything else while the overlay is up
	return nil, true
}
