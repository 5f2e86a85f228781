package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"stockhub/internal/ui/input/types"
)

// SelectMode is active while a select panel is open. The panel gets every
// key except the ones that leave the field.
type SelectMode struct{}

func NewSelectMode() *SelectMode {
	return &SelectMode{}
}

func (m *SelectMode) Name() string {
	return "select"
}

func (m *SelectMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *SelectMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *SelectMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true
	case tea.KeyTab:
		return []types.Action{types.FocusAction{Direction: "next"}}, true
	case tea.KeyShiftTab:
		return []types.Action{types.FocusAction{Direction: "prev"}}, true
	}
	return nil, false
}
