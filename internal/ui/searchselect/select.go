// Package searchselect implements a controlled select with a searchable
// dropdown panel.
//
// The select never owns its value. The caller passes the current value in
// with SetValue and learns about changes through the OnChange callback; the
// select only keeps transient panel state (open or closed, search term,
// highlighted row), which is reset every time the panel closes.
//
// While the panel is open the select listens for pointer presses on the
// interaction bus it was mounted on and closes itself when a press lands
// outside its rendered region. The subscription exists only while the
// panel is open and is always released on close and on Unmount.
package searchselect

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"stockhub/internal/domain"
	"stockhub/internal/ui/logic"
	"stockhub/internal/ui/services/events"
	"stockhub/internal/ui/services/search"
)

// Model is a single searchable select
type Model struct {
	cfg    Config
	keys   KeyMap
	styles Styles
	bounds Bounds

	filter *logic.OptionFilter
	search *search.Service
	nav    *logic.ListNavigator
	input  textinput.Model

	options  []domain.Option
	value    string
	onChange func(string)

	open    bool
	focused bool

	bus     events.EventBus
	release []func()
}

// ModelOption customises a Model at construction
type ModelOption func(*Model)

// WithBounds sets the zone tracker used for mouse handling
func WithBounds(b Bounds) ModelOption {
	return func(m *Model) { m.bounds = b }
}

// WithKeyMap replaces the default key bindings
func WithKeyMap(k KeyMap) ModelOption {
	return func(m *Model) { m.keys = k }
}

// WithStyles replaces the default styles
func WithStyles(s Styles) ModelOption {
	return func(m *Model) { m.styles = s }
}

// WithSearchBus publishes search progress events on bus
func WithSearchBus(bus events.EventBus) ModelOption {
	return func(m *Model) { m.search = search.NewService(bus, m.filter) }
}

// New validates cfg once and creates a closed select with no options
func New(cfg Config, opts ...ModelOption) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	ti := textinput.New()
	ti.Placeholder = SearchPlaceholder
	ti.Prompt = "⌕ "
	ti.CharLimit = 128
	ti.Width = cfg.Width - 8

	m := &Model{
		cfg:    cfg,
		keys:   DefaultKeyMap(),
		styles: DefaultStyles(),
		bounds: NewZoneBounds(nil),
		filter: logic.NewOptionFilter(cfg.SearchKeys, cfg.matchMode()),
		nav:    logic.NewListNavigator(cfg.MaxVisible),
		input:  ti,
	}
	m.search = search.NewService(nil, m.filter)
	for _, opt := range opts {
		opt(m)
	}
	m.search.SetOwner(cfg.ID)
	m.search.ClearSearch(m.options)
	m.nav.SetTotal(0)

	return m, nil
}

// Config returns the effective configuration, defaults included
func (m *Model) Config() Config {
	return m.cfg
}

// ID returns the zone identifier of the select
func (m *Model) ID() string {
	return m.cfg.ID
}

// KeyMap returns the active key bindings
func (m *Model) KeyMap() KeyMap {
	return m.keys
}

// SetOptions replaces the option list. When the panel is open the list is
// re-filtered with the current search term and the highlight is clamped.
func (m *Model) SetOptions(options []domain.Option) {
	m.options = make([]domain.Option, len(options))
	copy(m.options, options)

	m.search.Refresh(m.options)
	m.nav.SetTotal(m.search.GetMatchCount())
}

// Options returns the full option list
func (m *Model) Options() []domain.Option {
	return m.options
}

// SetValue mirrors the caller's current value into the select
func (m *Model) SetValue(value string) {
	m.value = value
}

// Value returns the mirrored value
func (m *Model) Value() string {
	return m.value
}

// OnChange registers the callback receiving new values; "" means cleared
func (m *Model) OnChange(fn func(string)) {
	m.onChange = fn
}

// IsOpen reports whether the panel is open
func (m *Model) IsOpen() bool {
	return m.open
}

// SearchTerm returns the current search term, "" while closed
func (m *Model) SearchTerm() string {
	return m.search.GetQuery()
}

// Filtered returns the options matching the search term, in original order
func (m *Model) Filtered() []domain.Option {
	matches := m.search.Matches()
	result := make([]domain.Option, 0, len(matches))
	for _, i := range matches {
		if i < len(m.options) {
			result = append(result, m.options[i])
		}
	}
	return result
}

// Highlighted returns the highlighted row of the filtered list, -1 if none
func (m *Model) Highlighted() int {
	if !m.open {
		return -1
	}
	return m.nav.SelectedIndex()
}

// SelectedOption returns the option whose key equals the value
func (m *Model) SelectedOption() (domain.Option, bool) {
	if m.value == "" {
		return nil, false
	}
	for _, option := range m.options {
		if m.keyOf(option) == m.value {
			return option, true
		}
	}
	return nil, false
}

// DisplayText returns the label of the selected option, or the placeholder
// when there is no value or the value matches no option
func (m *Model) DisplayText() string {
	option, ok := m.SelectedOption()
	if !ok {
		return m.cfg.Placeholder
	}
	return m.labelOf(option)
}

// HasValue reports whether the clear affordance is shown
func (m *Model) HasValue() bool {
	return m.value != ""
}

// Focus gives the select keyboard focus
func (m *Model) Focus() {
	m.focused = true
}

// Blur removes keyboard focus; an open panel is dismissed
func (m *Model) Blur() {
	m.focused = false
	m.Close()
}

// Focused reports whether the select has keyboard focus
func (m *Model) Focused() bool {
	return m.focused
}

// Open shows the panel and moves input focus to the search box
func (m *Model) Open() tea.Cmd {
	if m.open {
		return nil
	}
	m.open = true

	m.input.Reset()
	m.search.ClearSearch(m.options)
	m.nav.Reset()
	m.nav.SetTotal(m.search.GetMatchCount())
	m.highlightValue()

	m.subscribe()
	if m.bus != nil {
		m.bus.Publish(events.SelectOpened{ID: m.cfg.ID})
	}

	return m.input.Focus()
}

// Close hides the panel and resets the search term
func (m *Model) Close() {
	if !m.open {
		return
	}
	m.open = false

	m.input.Blur()
	m.input.Reset()
	m.search.ClearSearch(m.options)
	m.nav.Reset()
	m.nav.SetTotal(m.search.GetMatchCount())

	m.unsubscribe()
	if m.bus != nil {
		m.bus.Publish(events.SelectClosed{ID: m.cfg.ID})
	}
}

// Toggle opens a closed panel and closes an open one
func (m *Model) Toggle() tea.Cmd {
	if m.open {
		m.Close()
		return nil
	}
	return m.Open()
}

// SetSearchTerm updates the search term while the panel is open
func (m *Model) SetSearchTerm(term string) {
	if !m.open {
		return
	}
	if m.input.Value() != term {
		m.input.SetValue(term)
	}
	m.search.StartSearch(term, m.options)
	m.nav.Reset()
	m.nav.SetTotal(m.search.GetMatchCount())
}

// Select reports the key of the i-th filtered option and closes the panel.
// It returns false when i is out of range.
func (m *Model) Select(i int) bool {
	filtered := m.Filtered()
	if i < 0 || i >= len(filtered) {
		return false
	}
	m.emit(m.keyOf(filtered[i]))
	m.Close()
	return true
}

// SelectValue selects the filtered option whose key equals value
func (m *Model) SelectValue(value string) bool {
	for i, option := range m.Filtered() {
		if m.keyOf(option) == value {
			return m.Select(i)
		}
	}
	return false
}

// Clear reports the empty value when there is a value to clear.
// The panel stays as it is; only the search term is reset.
func (m *Model) Clear() bool {
	if !m.HasValue() {
		return false
	}
	m.emit("")
	if m.open {
		m.SetSearchTerm("")
	}
	return true
}

// Mount attaches the select to the host's interaction bus
func (m *Model) Mount(bus events.EventBus) {
	m.unsubscribe()
	m.bus = bus
	if m.open {
		m.subscribe()
	}
}

// Unmount releases every subscription and dismisses the panel
func (m *Model) Unmount() {
	m.Close()
	m.unsubscribe()
	m.bus = nil
}

// Update handles key and mouse messages
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		if m.open {
			return m, m.handleOpenKey(msg)
		}
		return m, m.handleClosedKey(msg)
	}

	if m.open {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleClosedKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Open):
		return m.Open()
	case key.Matches(msg, m.keys.Clear):
		m.Clear()
	}
	return nil
}

func (m *Model) handleOpenKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Dismiss):
		m.Close()
		return nil
	case key.Matches(msg, m.keys.Up):
		m.nav.MoveUp()
		return nil
	case key.Matches(msg, m.keys.Down):
		m.nav.MoveDown()
		return nil
	case key.Matches(msg, m.keys.PageUp):
		m.nav.PageUp()
		return nil
	case key.Matches(msg, m.keys.PageDown):
		m.nav.PageDown()
		return nil
	case key.Matches(msg, m.keys.Choose):
		m.Select(m.nav.SelectedIndex())
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if term := m.input.Value(); term != m.search.GetQuery() {
		m.SetSearchTerm(term)
	}
	return cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.open {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if m.bounds.InBounds(m.panelZone(), msg) {
				m.nav.MoveUp()
			}
			return nil
		case tea.MouseButtonWheelDown:
			if m.bounds.InBounds(m.panelZone(), msg) {
				m.nav.MoveDown()
			}
			return nil
		}
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	if m.open {
		filtered := m.Filtered()
		start, end := m.nav.VisibleRange()
		for i := start; i < end && i < len(filtered); i++ {
			if m.bounds.InBounds(m.rowZone(filtered[i]), msg) {
				m.focused = true
				m.Select(i)
				return nil
			}
		}
	}

	// The clear mark sits on top of the control and must not toggle it
	if m.HasValue() && m.bounds.InBounds(m.clearZone(), msg) {
		m.focused = true
		m.Clear()
		return nil
	}

	if m.bounds.InBounds(m.controlZone(), msg) {
		m.focused = true
		return m.Toggle()
	}
	return nil
}

// subscribe registers the outside-interaction listeners for an open panel
func (m *Model) subscribe() {
	if m.bus == nil || len(m.release) > 0 {
		return
	}
	m.release = append(m.release,
		events.SubscribeTo(m.bus, m.onPointerPressed),
		events.SubscribeTo(m.bus, m.onSelectOpened),
	)
}

func (m *Model) unsubscribe() {
	for _, release := range m.release {
		release()
	}
	m.release = nil
}

func (m *Model) onPointerPressed(e events.PointerPressed) {
	if !m.open || e.Msg.Action != tea.MouseActionPress {
		return
	}
	if m.bounds.InBounds(m.cfg.ID, e.Msg) {
		return
	}
	m.Close()
}

// Another select opening counts as an interaction outside this one
func (m *Model) onSelectOpened(e events.SelectOpened) {
	if e.ID != m.cfg.ID {
		m.Close()
	}
}

func (m *Model) emit(value string) {
	if m.onChange != nil {
		m.onChange(value)
	}
}

func (m *Model) highlightValue() {
	if m.value == "" {
		return
	}
	for i, option := range m.Filtered() {
		if m.keyOf(option) == m.value {
			m.nav.SetSelectedIndex(i)
			return
		}
	}
}

func (m *Model) keyOf(option domain.Option) string {
	v, _ := logic.Field(option, m.cfg.ValueKey)
	return v
}

func (m *Model) labelOf(option domain.Option) string {
	v, _ := logic.Field(option, m.cfg.DisplayKey)
	return v
}

// Field reads a field off an option as a string; missing and nil fields
// yield ("", false)
func Field(option domain.Option, key string) (string, bool) {
	return logic.Field(option, key)
}
