package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	zone "github.com/lrstanley/bubblezone"

	"stockhub/internal/config"
	"stockhub/internal/domain"
	"stockhub/internal/eventbus"
	"stockhub/internal/ui/handlers"
	"stockhub/internal/ui/input"
	inputtypes "stockhub/internal/ui/input/types"
	"stockhub/internal/ui/logic"
	"stockhub/internal/ui/searchselect"
	"stockhub/internal/ui/services/events"
	"stockhub/internal/ui/services/search"
	"stockhub/internal/ui/services/selection"
	"stockhub/internal/ui/state"
	"stockhub/internal/ui/views"
)

// Form field names; also the mouse zone ids of their selects
const (
	FieldEmployee = "employee"
	FieldBranch   = "branch"
	FieldStatus   = "status"
)

type formField struct {
	name   string
	source domain.Source
	sel    *searchselect.Model
}

// Model is the assignment form
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState

	width       int
	height      int
	help        help.Model
	keys        formKeys
	currentSort logic.SortMode
	inPagerMode bool

	fields    []*formField
	options   map[domain.Source][]domain.Option // as loaded, unsorted
	notes     string
	lastLabel string

	uiBus        *events.Bus
	selection    *selection.Service
	sorter       *logic.OptionSorter
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	eventHandler *handlers.EventHandler
	inputHandler *input.Handler
	helpOps      *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// SelectConfig returns the select configuration used for a source
func SelectConfig(cfg *config.Config, source domain.Source) searchselect.Config {
	c := searchselect.Config{
		Placeholder: cfg.Select.Placeholder,
		MatchMode:   cfg.Select.MatchMode,
		MaxVisible:  cfg.Select.MaxVisible,
		Width:       cfg.Select.Width,
	}

	switch source {
	case domain.SourceEmployees:
		c.ID = FieldEmployee
		c.Label = "Employee"
		c.Required = true
		c.SearchKeys = []string{"name", "email"}
		c.DetailKey = "email"
	case domain.SourceBranches:
		c.ID = FieldBranch
		c.Label = "Branch"
		c.Required = true
		c.SearchKeys = []string{"name", "location"}
		c.DetailKey = "location"
	case domain.SourceStatuses:
		c.ID = FieldStatus
		c.Label = "Status"
	}
	return c
}

// fieldConfigs describes the selects of the form, top to bottom
func fieldConfigs(cfg *config.Config) []searchselect.Config {
	employee := SelectConfig(cfg, domain.SourceEmployees)
	employee.Placeholder = "Select employee"

	branch := SelectConfig(cfg, domain.SourceBranches)
	branch.Placeholder = "Select branch"

	status := SelectConfig(cfg, domain.SourceStatuses)
	status.Placeholder = domain.StatusPending.Label()

	return []searchselect.Config{employee, branch, status}
}

var fieldSources = map[string]domain.Source{
	FieldEmployee: domain.SourceEmployees,
	FieldBranch:   domain.SourceBranches,
	FieldStatus:   domain.SourceStatuses,
}

// NewModel creates the assignment form
func NewModel(bus eventbus.EventBus, cfg *config.Config) (*Model, error) {
	sortMode, err := logic.ParseSortMode(cfg.Select.Sort)
	if err != nil {
		return nil, err
	}

	uiBus := events.NewBus()

	m := &Model{
		bus:          bus,
		config:       cfg,
		help:         help.New(),
		keys:         defaultFormKeys(),
		currentSort:  sortMode,
		options:      make(map[domain.Source][]domain.Option),
		uiBus:        uiBus,
		selection:    selection.NewService(uiBus),
		sorter:       logic.NewOptionSorter(searchselect.DefaultDisplayKey, searchselect.DefaultValueKey),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		inputHandler: input.New(),
	}

	var names []string
	for _, fc := range fieldConfigs(cfg) {
		sel, err := searchselect.New(fc, searchselect.WithSearchBus(uiBus))
		if err != nil {
			return nil, err
		}
		name := fc.ID
		sel.OnChange(func(value string) {
			m.selection.Set(name, value)
		})
		sel.Mount(uiBus)

		m.fields = append(m.fields, &formField{name: name, source: fieldSources[name], sel: sel})
		names = append(names, name)
	}

	m.state = state.NewAppState(names)
	m.eventHandler = handlers.NewEventHandler(m.state, m.applyOptions, m.onCreated)
	m.subscribe()
	m.applyFocus()

	return m, nil
}

// subscribe wires the interaction bus to form state
func (m *Model) subscribe() {
	// The selection service owns field values; selects mirror them
	events.SubscribeTo(m.uiBus, func(e selection.SelectionChangedEvent) {
		if f := m.field(e.Field); f != nil {
			f.sel.SetValue(e.New)
		}
		if m.bus != nil {
			m.bus.Publish(eventbus.SelectionChangedEvent{Field: e.Field, Value: e.New})
		}
	})
	events.SubscribeTo(m.uiBus, func(selection.AllClearedEvent) {
		for _, f := range m.fields {
			f.sel.SetValue("")
		}
	})

	events.SubscribeTo(m.uiBus, func(e search.SearchCompletedEvent) {
		if e.Query == "" {
			m.state.SearchInfo = ""
			return
		}
		m.state.SearchInfo = fmt.Sprintf("%d of %d match %q", e.MatchCount, e.Total, e.Query)
	})
	events.SubscribeTo(m.uiBus, func(search.SearchClearedEvent) {
		m.state.SearchInfo = ""
	})
	events.SubscribeTo(m.uiBus, func(events.SelectClosed) {
		m.state.SearchInfo = ""
	})
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Init requests every option list
func (m *Model) Init() tea.Cmd {
	return m.requestOptions()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		ctx := m.context()
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action, msg))
		}
		cmds = append(cmds, m.syncInput())

		return m, tea.Batch(cmds...)

	default:
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			return m, cmd
		}
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	fields := make([]string, len(m.fields))
	for i, f := range m.fields {
		fields[i] = f.sel.View()
	}

	var helpContent string
	if m.state.ShowHelp {
		helpContent = m.helpRenderer.renderHelpContent(m.height, m.state.HelpScrollOffset)
	}

	out := m.renderer.Render(views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Fields:         fields,
		Notes:          m.inputHandler.TextInput().View(),
		NotesFocused:   m.state.FocusedName() == state.FocusNotes,
		SubmitFocused:  m.state.FocusedName() == state.FocusSubmit,
		Submitting:     m.state.Submitting,
		Loading:        m.state.IsLoading(),
		LoadingSources: m.state.Loading(),
		SpinnerFrame:   m.state.SpinnerFrame,
		Fallback:       m.state.FallbackSources(),
		SearchInfo:     m.state.SearchInfo,
		SortLabel:      m.currentSort.String(),
		StatusMessage:  m.state.StatusMessage,
		StatusIsError:  m.state.StatusIsError,
		LastCreated:    m.state.LastCreated,
		LastSummary:    m.lastLabel,
		ShowHelp:       m.state.ShowHelp,
		HelpContent:    helpContent,
		HelpBar:        m.help.View(m.helpKeys()),
		Mark:           mark,
	})

	if zone.DefaultManager == nil {
		return out
	}
	return zone.Scan(out)
}

func mark(id, s string) string {
	if zone.DefaultManager == nil {
		return s
	}
	return zone.Mark(id, s)
}

func inZone(id string, msg tea.MouseMsg) bool {
	if zone.DefaultManager == nil {
		return false
	}
	info := zone.Get(id)
	return info != nil && info.InBounds(msg)
}

// Accessors used by the CLI and tests

// Value returns the controlled value of a form field
func (m *Model) Value(field string) string {
	return m.selection.Get(field)
}

// Select returns the select of a form field
func (m *Model) Select(field string) *searchselect.Model {
	if f := m.field(field); f != nil {
		return f.sel
	}
	return nil
}

// State returns the form state
func (m *Model) State() *state.AppState {
	return m.state
}

// Notes returns the notes text
func (m *Model) Notes() string {
	return m.notes
}

// Close releases every select subscription
func (m *Model) Close() {
	for _, f := range m.fields {
		f.sel.Unmount()
	}
}

func (m *Model) field(name string) *formField {
	for _, f := range m.fields {
		if f.name == name {
			return f
		}
	}
	return nil
}

func (m *Model) fieldFor(source domain.Source) *formField {
	for _, f := range m.fields {
		if f.source == source {
			return f
		}
	}
	return nil
}

func (m *Model) openField() *formField {
	for _, f := range m.fields {
		if f.sel.IsOpen() {
			return f
		}
	}
	return nil
}

func (m *Model) context() *input.ModelContext {
	return &input.ModelContext{
		State: m.state,
		Open:  func() bool { return m.openField() != nil },
	}
}

// syncInput lets the input handler follow focus changes made outside it
func (m *Model) syncInput() tea.Cmd {
	actions, cmd := m.inputHandler.Sync(m.context())
	for _, action := range actions {
		if a, ok := action.(inputtypes.UpdateTextAction); ok {
			m.notes = a.Text
		}
	}
	return cmd
}

// applyFocus gives keyboard focus to the focused select only
func (m *Model) applyFocus() {
	focused := m.state.FocusedName()
	for _, f := range m.fields {
		if f.name == focused {
			f.sel.Focus()
		} else {
			f.sel.Blur()
		}
	}
}

func (m *Model) helpKeys() helpKeyMap {
	if f := m.openField(); f != nil {
		return helpKeyMap{short: f.sel.KeyMap().OpenHelp()}
	}

	var short []key.Binding
	switch focused := m.state.FocusedName(); focused {
	case state.FocusSubmit:
		short = append(short, m.keys.Submit)
	case state.FocusNotes:
	default:
		if f := m.field(focused); f != nil {
			short = append(short, f.sel.KeyMap().ClosedHelp()...)
		}
	}
	short = append(short, m.keys.Next, m.keys.Reload, m.keys.Sort, m.keys.Help, m.keys.Quit)
	return helpKeyMap{short: short}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action, msg tea.KeyMsg) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.FocusAction:
		if a.Direction == "prev" {
			m.state.FocusPrev()
		} else {
			m.state.FocusNext()
		}
		m.applyFocus()

	case inputtypes.ForwardAction:
		if f := m.field(m.state.FocusedName()); f != nil {
			_, cmd := f.sel.Update(msg)
			return cmd
		}

	case inputtypes.UpdateTextAction:
		m.notes = a.Text

	case inputtypes.SubmitAction:
		return m.submit()

	case inputtypes.ResetFormAction:
		m.resetForm()
		m.state.SetStatus("Form cleared")

	case inputtypes.ReloadAction:
		return m.requestOptions()

	case inputtypes.CycleSortAction:
		m.currentSort = m.currentSort.Next()
		for source, options := range m.options {
			m.applyOptions(source, options)
		}
		m.state.SetStatus("Sorted by " + m.currentSort.String())

	case inputtypes.ToggleHelpAction:
		if !m.state.ShowHelp && m.program != nil {
			return m.fetchHelpPager(m.helpRenderer.RenderHelpContentPlain())
		}
		m.state.ShowHelp = !m.state.ShowHelp
		m.state.HelpScrollOffset = 0

	case inputtypes.ScrollHelpAction:
		m.state.HelpScrollOffset += a.Delta
		if m.state.HelpScrollOffset < 0 {
			m.state.HelpScrollOffset = 0
		}

	case inputtypes.QuitAction:
		m.Close()
		return tea.Quit
	}

	return nil
}

// handleMouse publishes presses on the interaction bus before any select
// sees them, then routes the message to the selects and form controls
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	press := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
	if msg.Action == tea.MouseActionPress {
		m.uiBus.Publish(events.PointerPressed{Msg: msg})
	}

	if m.state.ShowHelp {
		if press {
			m.state.ShowHelp = false
		}
		return nil
	}

	var cmds []tea.Cmd
	for _, f := range m.fields {
		wasFocused := f.sel.Focused()
		_, cmd := f.sel.Update(msg)
		cmds = append(cmds, cmd)
		if !wasFocused && f.sel.Focused() {
			m.state.FocusOn(f.name)
			m.applyFocus()
		}
	}

	if press {
		switch {
		case inZone(views.NotesZone, msg):
			m.state.FocusOn(state.FocusNotes)
			m.applyFocus()
		case inZone(views.SubmitZone, msg):
			m.state.FocusOn(state.FocusSubmit)
			m.applyFocus()
			if !m.state.Submitting {
				cmds = append(cmds, m.submit())
			}
		}
	}

	cmds = append(cmds, m.syncInput())
	return tea.Batch(cmds...)
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.eventHandler.HandleEvent(msg.Event)

	case handlers.TickMsg:
		// Don't continue tick loop if we're in pager mode
		if m.inPagerMode {
			return m, nil
		}
		return m, m.eventHandler.HandleTick()

	case helpPagerMsg:
		if msg.err != nil {
			log.Warn("help pager failed, showing overlay", "err", msg.err)
			m.state.ShowHelp = true
			m.state.HelpScrollOffset = 0
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		if m.state.IsLoading() || m.state.Submitting {
			return m, handlers.Tick()
		}
		return m, nil

	default:
		// Cursor blink and similar messages for an open search box
		if f := m.openField(); f != nil {
			_, cmd := f.sel.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(helpContent)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

func (m *Model) requestOptions() tea.Cmd {
	if m.bus == nil {
		return nil
	}
	bus := m.bus
	return func() tea.Msg {
		bus.Publish(eventbus.OptionsRequestedEvent{})
		return nil
	}
}

// applyOptions hands a loaded option list to its select, sorted
func (m *Model) applyOptions(source domain.Source, options []domain.Option) {
	m.options[source] = options
	if f := m.fieldFor(source); f != nil {
		f.sel.SetOptions(m.sorter.Sort(options, m.currentSort))
	}
}

func (m *Model) requiredFields() []string {
	var required []string
	for _, f := range m.fields {
		if f.sel.Config().Required {
			required = append(required, f.name)
		}
	}
	return required
}

// submit validates the form and asks the submitter to create the assignment
func (m *Model) submit() tea.Cmd {
	if m.state.Submitting {
		return nil
	}

	if missing := m.selection.Missing(m.requiredFields()); len(missing) > 0 {
		m.state.SetError("Please select: " + strings.Join(missing, ", "))
		return nil
	}

	a, err := domain.NewAssignment(
		m.selection.Get(FieldEmployee),
		m.selection.Get(FieldBranch),
		m.selection.Get(FieldStatus),
	)
	if err != nil {
		m.state.SetError(fmt.Sprintf("Invalid selection: %v", err))
		return nil
	}
	a.Notes = strings.TrimSpace(m.notes)

	m.state.Submitting = true
	m.state.SetStatus("Creating assignment...")
	if m.bus != nil {
		m.bus.Publish(eventbus.AssignmentRequestedEvent{Assignment: a})
	}

	if m.state.IsLoading() {
		// spinner already ticking
		return nil
	}
	return handlers.Tick()
}

// onCreated summarises the created assignment and clears the form
func (m *Model) onCreated(a domain.Assignment) {
	employee := m.labelFor(domain.SourceEmployees, fmt.Sprint(a.EmployeeID))
	branch := m.labelFor(domain.SourceBranches, fmt.Sprint(a.BranchID))
	m.lastLabel = fmt.Sprintf("#%d %s → %s", a.ID, employee, branch)
	m.resetForm()
}

func (m *Model) resetForm() {
	m.selection.ClearAll()
	m.inputHandler.Reset()
	m.notes = ""
	m.state.FocusOn(FieldEmployee)
	m.applyFocus()
}

func (m *Model) labelFor(source domain.Source, key string) string {
	for _, option := range m.options[source] {
		if v, _ := logic.Field(option, searchselect.DefaultValueKey); v == key {
			label, _ := logic.Field(option, searchselect.DefaultDisplayKey)
			return label
		}
	}
	return key
}
