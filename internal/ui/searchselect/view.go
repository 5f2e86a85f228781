package searchselect

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"stockhub/internal/domain"
)

// Styles contains the style definitions of a select
type Styles struct {
	Label       lipgloss.Style
	Required    lipgloss.Style
	Control     lipgloss.Style
	Focused     lipgloss.Style
	Placeholder lipgloss.Style
	Text        lipgloss.Style
	Clear       lipgloss.Style
	Arrow       lipgloss.Style
	Panel       lipgloss.Style
	Row         lipgloss.Style
	Highlighted lipgloss.Style
	Selected    lipgloss.Style
	Detail      lipgloss.Style
	Match       lipgloss.Style
	Empty       lipgloss.Style
	Scroll      lipgloss.Style
}

// DefaultStyles returns the default select styles
func DefaultStyles() Styles {
	return Styles{
		Label:    lipgloss.NewStyle().Bold(true),
		Required: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Control: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Focused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Text:        lipgloss.NewStyle(),
		Clear:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Arrow:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Row:         lipgloss.NewStyle(),
		Highlighted: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true), // green
		Detail:      lipgloss.NewStyle().Faint(true),
		Match:       lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Empty:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}

func (m *Model) controlZone() string { return m.cfg.ID + "-control" }
func (m *Model) clearZone() string   { return m.cfg.ID + "-clear" }
func (m *Model) panelZone() string   { return m.cfg.ID + "-panel" }

func (m *Model) rowZone(option domain.Option) string {
	return m.cfg.ID + "-opt-" + m.keyOf(option)
}

// View renders the label, the control and, while open, the panel.
// The whole output is one mouse zone named after the select's ID.
func (m *Model) View() string {
	var parts []string
	if label := m.renderLabel(); label != "" {
		parts = append(parts, label)
	}
	parts = append(parts, m.renderControl())
	if m.open {
		parts = append(parts, m.renderPanel())
	}
	return m.bounds.Mark(m.cfg.ID, lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *Model) renderLabel() string {
	if m.cfg.Label == "" {
		return ""
	}
	label := m.styles.Label.Render(m.cfg.Label)
	if m.cfg.Required {
		label += " " + m.styles.Required.Render("*")
	}
	return label
}

func (m *Model) renderControl() string {
	// border (2) + padding (2) + " × ▾" suffix (4)
	inner := m.cfg.Width - 4
	textWidth := inner - 4
	if textWidth < 1 {
		textWidth = 1
	}

	var text string
	if _, ok := m.SelectedOption(); ok {
		text = m.styles.Text.Render(truncate.StringWithTail(m.DisplayText(), uint(textWidth), "…"))
	} else {
		text = m.styles.Placeholder.Render(truncate.StringWithTail(m.DisplayText(), uint(textWidth), "…"))
	}
	if pad := textWidth - lipgloss.Width(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}

	clearMark := "  "
	if m.HasValue() {
		clearMark = m.bounds.Mark(m.clearZone(), m.styles.Clear.Render("×")) + " "
	}

	arrow := "▾"
	if m.open {
		arrow = "▴"
	}

	style := m.styles.Control
	if m.focused {
		style = m.styles.Focused
	}
	line := text + " " + clearMark + m.styles.Arrow.Render(arrow)
	return m.bounds.Mark(m.controlZone(), style.Width(inner+2).Render(line))
}

func (m *Model) renderPanel() string {
	inner := m.cfg.Width - 4
	lines := []string{m.input.View(), ""}

	filtered := m.Filtered()
	if len(filtered) == 0 {
		lines = append(lines, m.styles.Empty.Render(NoOptionsText))
	} else {
		start, end := m.nav.VisibleRange()
		if start > 0 {
			lines = append(lines, m.styles.Scroll.Render("↑ more"))
		}
		for i := start; i < end; i++ {
			lines = append(lines, m.bounds.Mark(m.rowZone(filtered[i]), m.renderRow(filtered[i], i, inner)))
		}
		if end < len(filtered) {
			lines = append(lines, m.styles.Scroll.Render("↓ more"))
		}
	}

	return m.bounds.Mark(m.panelZone(), m.styles.Panel.Width(inner+2).Render(strings.Join(lines, "\n")))
}

func (m *Model) renderRow(option domain.Option, index, width int) string {
	marker := "  "
	if m.value != "" && m.keyOf(option) == m.value {
		marker = m.styles.Selected.Render("✓ ")
	}

	label := truncate.StringWithTail(m.labelOf(option), uint(max(width-2, 1)), "…")
	row := marker + m.highlightMatch(label)

	if m.cfg.DetailKey != "" {
		if detail, ok := Field(option, m.cfg.DetailKey); ok && detail != "" {
			detail = truncate.StringWithTail(detail, uint(max(width-2, 1)), "…")
			row += "\n  " + m.styles.Detail.Render(detail)
		}
	}

	if index == m.nav.SelectedIndex() {
		return m.styles.Highlighted.Width(width).Render(row)
	}
	return m.styles.Row.Width(width).Render(row)
}

// highlightMatch marks the first case-insensitive occurrence of the search
// term in text
func (m *Model) highlightMatch(text string) string {
	query := m.search.GetQuery()
	if !m.search.ShouldHighlight(text) {
		return text
	}

	lower := strings.ToLower(text)
	idx := strings.Index(lower, strings.ToLower(query))
	if idx < 0 || len(lower) != len(text) {
		return text
	}
	end := idx + len(query)
	return text[:idx] + m.styles.Match.Render(text[idx:end]) + text[end:]
}
