package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"stockhub/internal/ui/input/types"
)

// NotesMode edits the free-text notes of the assignment
type NotesMode struct {
	textInput *textinput.Model
}

func NewNotesMode(textInput *textinput.Model) *NotesMode {
	return &NotesMode{textInput: textInput}
}

func (m *NotesMode) Name() string {
	return "notes"
}

func (m *NotesMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NotesMode) Exit(ctx types.Context) []types.Action {
	return []types.Action{types.UpdateTextAction{Text: m.textInput.Value()}}
}

func (m *NotesMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyTab, tea.KeyEnter, tea.KeyEsc:
		return []types.Action{types.FocusAction{Direction: "next"}}, true

	case tea.KeyShiftTab:
		return []types.Action{types.FocusAction{Direction: "prev"}}, true
	}

	// Let the text input handle it
	return nil, false
}
