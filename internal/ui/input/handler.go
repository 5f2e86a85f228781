package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"stockhub/internal/ui/input/modes"
	"stockhub/internal/ui/input/types"
	"stockhub/internal/ui/state"
)

// NotesCharLimit bounds the notes field
const NotesCharLimit = 500

// Handler turns keys into actions depending on what has focus
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // notes field
}

func New() *Handler {
	ti := textinput.New()
	ti.Placeholder = "Optional notes"
	ti.CharLimit = NotesCharLimit
	ti.Prompt = ""

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeSelect] = modes.NewSelectMode()
	h.modes[types.ModeNotes] = modes.NewNotesMode(h.textInput)

	return h
}

// HandleKey resolves the mode from ctx and lets it handle msg. Keys the
// mode does not consume go to the notes input in notes mode and are
// forwarded to the focused select otherwise.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	actions, cmd := h.Sync(ctx)

	handler := h.modes[h.currentMode]
	if handler == nil {
		return actions, cmd
	}

	modeActions, consumed := handler.HandleKey(msg, ctx)
	actions = append(actions, modeActions...)
	if consumed {
		return actions, cmd
	}

	if h.currentMode == types.ModeNotes {
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		actions = append(actions, types.UpdateTextAction{Text: h.textInput.Value()})
		return actions, tea.Batch(cmd, textCmd)
	}

	return append(actions, types.ForwardAction{}), cmd
}

// Sync switches to the mode matching ctx, running exit and enter hooks
func (h *Handler) Sync(ctx types.Context) ([]types.Action, tea.Cmd) {
	next := modeFor(ctx)
	if next == h.currentMode {
		return nil, nil
	}

	var actions []types.Action
	var cmd tea.Cmd

	if m := h.modes[h.currentMode]; m != nil {
		actions = append(actions, m.Exit(ctx)...)
	}
	old := h.currentMode
	h.currentMode = next
	if m := h.modes[h.currentMode]; m != nil {
		actions = append(actions, m.Enter(ctx)...)
	}

	if next == types.ModeNotes {
		cmd = h.textInput.Focus()
	} else if old == types.ModeNotes {
		h.textInput.Blur()
	}

	return actions, cmd
}

func modeFor(ctx types.Context) types.Mode {
	switch {
	case ctx.SelectOpen():
		return types.ModeSelect
	case ctx.FocusedName() == state.FocusNotes:
		return types.ModeNotes
	default:
		return types.ModeNormal
	}
}

// CurrentMode returns the active mode
func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// TextInput returns the notes input
func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

// Notes returns the notes text
func (h *Handler) Notes() string {
	return h.textInput.Value()
}

// Update handles non-keyboard messages for the notes input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.currentMode != types.ModeNotes {
		return nil
	}
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

// Reset clears the notes and returns to normal mode
func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}
