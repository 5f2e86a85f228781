package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stockhub/internal/domain"
)

// Mouse zones of the form controls that are not selects
const (
	SubmitZone = "form-submit"
	NotesZone  = "form-notes"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ViewState contains all the state needed for rendering the form
type ViewState struct {
	Width  int
	Height int

	// Fields are the rendered selects, top to bottom
	Fields        []string
	Notes         string
	NotesFocused  bool
	SubmitFocused bool
	Submitting    bool

	Loading        bool
	LoadingSources []domain.Source
	SpinnerFrame   int
	Fallback       []domain.Source
	SearchInfo     string
	SortLabel      string
	StatusMessage  string
	StatusIsError  bool
	LastCreated    *domain.Assignment
	LastSummary    string

	ShowHelp    bool
	HelpContent string
	HelpBar     string

	// Mark wraps s in the mouse zone id
	Mark func(id, s string) string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")
	content.WriteString(r.styles.Subtitle.Render("Assign an employee to a branch"))
	content.WriteString("\n")

	for _, field := range state.Fields {
		content.WriteString(r.styles.Field.Render(field))
		content.WriteString("\n")
	}

	content.WriteString(r.styles.FieldLabel.Render("Notes"))
	content.WriteString("\n")
	notesStyle := r.styles.Notes
	if state.NotesFocused {
		notesStyle = r.styles.NotesFocused
	}
	notes := notesStyle.Render(state.Notes)
	if state.Mark != nil {
		notes = state.Mark(NotesZone, notes)
	}
	content.WriteString(notes)
	content.WriteString("\n\n")

	content.WriteString(r.renderSubmit(state))
	content.WriteString("\n")

	if status := r.renderStatus(state); status != "" {
		content.WriteString(r.styles.Status.Render(status))
		content.WriteString("\n")
	}

	if state.HelpBar != "" && !state.ShowHelp {
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := state.Height - 2
		if paddingNeeded := availableLines - currentLines - 1; paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString(r.styles.Help.Render(state.HelpBar))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	finalContent := mainStyle.Render(content.String())

	if state.ShowHelp && state.HelpContent != "" {
		width, height := state.Width, state.Height
		if width <= 0 {
			width = lipgloss.Width(finalContent)
		}
		if height <= 0 {
			height = lipgloss.Height(finalContent)
		}
		return r.popupRender.RenderPopupOverlay(finalContent, state.HelpContent, height, width, r.styles.InfoBox)
	}

	return finalContent
}

// renderTitle renders the logo with right-aligned loading indicators
func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("stockhub")

	var indicators []string
	if state.Loading {
		frame := spinnerFrames[state.SpinnerFrame%len(spinnerFrames)]
		indicators = append(indicators, fmt.Sprintf("%s Loading %s", frame, joinSources(state.LoadingSources)))
	}
	if state.Submitting {
		indicators = append(indicators, "↑ Submitting")
	}
	if state.SortLabel != "" {
		indicators = append(indicators, "sort: "+state.SortLabel)
	}
	if len(indicators) == 0 {
		return logo
	}

	rightContent := r.styles.Dim.Render(strings.Join(indicators, " | "))
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	paddingWidth := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return logo + strings.Repeat(" ", paddingWidth) + rightContent
}

func (r *Renderer) renderSubmit(state ViewState) string {
	style := r.styles.Button
	if state.SubmitFocused {
		style = r.styles.ButtonFocused
	}
	label := "Create assignment"
	if state.Submitting {
		label = "Submitting…"
	}
	button := style.Render(label)
	if state.Mark != nil {
		button = state.Mark(SubmitZone, button)
	}
	return button
}

func (r *Renderer) renderStatus(state ViewState) string {
	var parts []string

	if state.StatusMessage != "" {
		if state.StatusIsError {
			parts = append(parts, r.styles.StatusError.Render(state.StatusMessage))
		} else {
			parts = append(parts, state.StatusMessage)
		}
	}
	if len(state.Fallback) > 0 {
		parts = append(parts, r.styles.StatusWarning.Render("offline data: "+joinSources(state.Fallback)))
	}
	if state.SearchInfo != "" {
		parts = append(parts, r.styles.Highlight.Render(state.SearchInfo))
	}
	if state.LastCreated != nil {
		color := GetStatusColor(state.LastCreated.Status)
		status := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(state.LastCreated.Status.Label())
		summary := state.LastSummary
		if summary == "" {
			summary = fmt.Sprintf("#%d", state.LastCreated.ID)
		}
		parts = append(parts, r.styles.StatusSuccess.Render("✓ "+summary)+" "+status)
	}

	return strings.Join(parts, "\n")
}

func joinSources(sources []domain.Source) string {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
