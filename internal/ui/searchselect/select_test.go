package searchselect

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockhub/internal/domain"
	"stockhub/internal/ui/services/events"
)

// fakeBounds reports every zone in hits as containing the next click
type fakeBounds struct {
	hits map[string]bool
}

func (f *fakeBounds) Mark(_, view string) string { return view }

func (f *fakeBounds) InBounds(id string, _ tea.MouseMsg) bool { return f.hits[id] }

func (f *fakeBounds) at(ids ...string) {
	f.hits = make(map[string]bool, len(ids))
	for _, id := range ids {
		f.hits[id] = true
	}
}

func employees() []domain.Option {
	return []domain.Option{
		{"id": 1, "name": "John Smith", "email": "john@company.com"},
		{"id": 2, "name": "Mike Wilson", "email": "mike@company.com"},
		{"id": 3, "name": "Sarah Johnson", "email": "sarah@company.com"},
		{"id": 4, "name": "Emily Wilson", "email": "emily@company.com"},
	}
}

var leftClick = tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}

type harness struct {
	t       *testing.T
	sel     *Model
	bounds  *fakeBounds
	bus     *events.Bus
	changes []string
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{t: t, bounds: &fakeBounds{}, bus: events.NewBus()}

	sel, err := New(cfg, WithBounds(h.bounds))
	require.NoError(t, err)
	sel.OnChange(func(v string) {
		h.changes = append(h.changes, v)
		sel.SetValue(v)
	})
	sel.SetOptions(employees())
	sel.Mount(h.bus)
	sel.Focus()

	h.sel = sel
	return h
}

// click publishes the press on the bus the way the host does, then lets the
// select handle it
func (h *harness) click(zones ...string) {
	h.bounds.at(zones...)
	h.bus.Publish(events.PointerPressed{Msg: leftClick})
	h.sel.Update(leftClick)
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.sel.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) press(k tea.KeyType) {
	h.sel.Update(tea.KeyMsg{Type: k})
}

func (h *harness) listeners() int {
	return h.bus.Listeners(events.TypeOf(events.PointerPressed{}))
}

func keys(sel *Model, options []domain.Option) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		out = append(out, sel.keyOf(o))
	}
	return out
}

func TestSearchThenSelect(t *testing.T) {
	h := newHarness(t, Config{ID: "emp", SearchKeys: []string{"name", "email"}})

	h.sel.Open()
	h.sel.SetSearchTerm("mike")
	assert.Equal(t, []string{"2"}, keys(h.sel, h.sel.Filtered()))

	require.True(t, h.sel.Select(0))
	assert.Equal(t, []string{"2"}, h.changes)
	assert.False(t, h.sel.IsOpen())
	assert.Empty(t, h.sel.SearchTerm())
	assert.Equal(t, "Mike Wilson", h.sel.DisplayText())
}

func TestSearchIsCaseInsensitiveAcrossKeys(t *testing.T) {
	h := newHarness(t, Config{ID: "emp", SearchKeys: []string{"name", "email"}})
	h.sel.Open()

	h.sel.SetSearchTerm("WILSON")
	assert.Equal(t, []string{"2", "4"}, keys(h.sel, h.sel.Filtered()))

	h.sel.SetSearchTerm("sarah@")
	assert.Equal(t, []string{"3"}, keys(h.sel, h.sel.Filtered()))

	h.sel.SetSearchTerm("")
	assert.Len(t, h.sel.Filtered(), 4)
}

func TestSearchUsesDisplayKeyByDefault(t *testing.T) {
	h := newHarness(t, Config{ID: "emp"})
	h.sel.Open()

	h.sel.SetSearchTerm("company.com")
	assert.Empty(t, h.sel.Filtered())
	assert.Contains(t, h.sel.View(), NoOptionsText)
}

func TestDisplayText(t *testing.T) {
	h := newHarness(t, Config{ID: "emp", Placeholder: "Pick someone"})
	assert.Equal(t, "Pick someone", h.sel.DisplayText())

	h.sel.SetValue("2")
	assert.Equal(t, "Mike Wilson", h.sel.DisplayText())
	assert.True(t, h.sel.HasValue())

	h.sel.SetValue("99")
	assert.Equal(t, "Pick someone", h.sel.DisplayText(), "unknown value shows the placeholder")
	assert.True(t, h.sel.HasValue())
}

func TestClear(t *testing.T) {
	h := newHarness(t, Config{ID: "emp"})
	h.sel.SetValue("2")

	require.True(t, h.sel.Clear())
	assert.Equal(t, []string{""}, h.changes)
	assert.False(t, h.sel.IsOpen())
	assert.Equal(t, DefaultPlaceholder, h.sel.DisplayText())

	assert.False(t, h.sel.Clear(), "nothing left to clear")
	assert.Len(t, h.changes, 1)
}

func TestClearClickDoesNotToggle(t *testing.T) {
	h := newHarness(t, Config{ID: "emp"})
	h.sel.SetValue("2")

	// the clear mark sits inside the control zone
	h.click("emp", "emp-control", "emp-clear")
	assert.Equal(t, []string{""}, h.changes)
	assert.False(t, h.sel.IsOpen())

	// without a value the same spot just toggles
	h.click("emp", "emp-control", "emp-clear")
	assert.True(t, h.sel.IsOpen())
	assert.Len(t, h.changes, 1)
}

func TestClearWhileOpenKeepsPanelOpen(t *testing.T) {
	h := newHarness(t, Config{ID: "emp", SearchKeys: []string{"name", "email"}})
	h.sel.SetValue("2")
	h.sel.Open()
	h.typeText("wil")
	require.Equal(t, "wil", h.sel.SearchTerm())

	h.click("emp", "emp-panel", "emp-control", "emp-clear")
	assert.Equal(t, []string{""}, h.changes, "onChange fires once with the empty value")
	assert.True(t, h.sel.IsOpen(), "clearing never toggles the panel")
	assert.Empty(t, h.sel.SearchTerm())
	assert.Len(t, h.sel.Filtered(), 4)
	assert.Equal(t, 1, h.listeners(), "outside listener stays while open")

	h.sel.SetValue("3")
	h.typeText("sa")
	require.True(t, h.sel.Clear())
	assert.Equal(t, []string{"", ""}, h.changes)
	assert.True(t, h.sel.IsOpen())
	assert.Empty(t, h.sel.SearchTerm())
}

func TestEmptyOptions(t *testing.T) {
	h := newHarness(t, Config{ID: "emp"})
	h.sel.SetOptions(nil)

	h.sel.Open()
	assert.Empty(t, h.sel.Filtered())
	assert.Equal(t, -1, h.sel.Highlighted())
	assert.Contains(t, h.sel.View(), NoOptionsText)
	assert.False(t, h.sel.Select(0))
	assert.Empty(t, h.changes)
}

func TestToggleAndReopenResetsSearch(t *testing.T) {
	h := newHarness(t, Config{ID: "emp"})

	h.click("emp", "emp-control")
	require.True(t, h.sel.IsOpen())
	h.sel.SetSearchTerm("sarah")
	assert.Len(t, h.sel.Filtered(), 1)

	h.click("emp", "emp-control")
	assert.False(t, h.sel.IsOpen())
	assert.Empty(t, h.sel.SearchTerm())

	h.sel.Toggle()
	assert.True(t, h.sel.IsOpen())
	assert.Empty(t, h.sel.SearchTerm())
	assert.Len(t, h.sel.Filtered(), 4)
	assert.Empty(t, h.changes)
}

func TestOutsideClickCloses(t *testing.T) {
	h := newHarness(t, Config{ID: "emp"})
	assert.Equal(t, 0, h.listeners(), "no listener while closed")

	h.sel.Open()
	h.sel.SetSearchTerm("wil")
	assert.Equal(t, 1, h.listeners())

	h.click("emp", "emp-panel")
	assert.True(t, h.sel.IsOpen(), "a click inside the panel keeps it open")

	h.click()
	assert.False(t, h.sel.IsOpen())
	assert.Empty(t, h.sel.SearchTerm())
	assert.Empty(t, h.changes, "dismissing never reports a value")
	assert.Equal(t, 0, h.listeners(), "listener released on close")
}

func TestClickOnRowSelects(t *testing.T) {
	h := newHarness(t, Config{ID: "emp"})
	h.sel.Open()

	h.click("emp", "emp-panel", "emp-opt-3")
	assert.Equal(t, []string{"3"}, h.changes)
	assert.False(t, h.sel.IsOpen())
	assert.Equal(t, 0, h.listeners())
}

func TestUnmountReleasesListener(t *testing.T) {
	h := newHarness(t, Config{ID: "emp"})
	h.sel.Open()
	require.Equal(t, 1, h.listeners())

	h.sel.Unmount()
	assert.Equal(t, 0, h.listeners())
	assert.False(t, h.sel.IsOpen())

	h.bus.Publish(events.PointerPressed{Msg: leftClick})
	assert.Empty(t, h.changes)
}

func TestMountWhileOpenSubscribes(t *testing.T) {
	bounds := &fakeBounds{}
	sel, err := New(Config{ID: "emp"}, WithBounds(bounds))
	require.NoError(t, err)
	sel.SetOptions(employees())
	sel.Open()

	bus := events.NewBus()
	sel.Mount(bus)
	assert.Equal(t, 1, bus.Listeners(events.TypeOf(events.PointerPressed{})))

	bus.Publish(events.PointerPressed{Msg: leftClick})
	assert.False(t, sel.IsOpen())
	assert.Equal(t, 0, bus.Listeners(events.TypeOf(events.PointerPressed{})))
}

func TestOpeningAnotherSelectClosesThisOne(t *testing.T) {
	h := newHarness(t, Config{ID: "emp"})

	other, err := New(Config{ID: "branch"}, WithBounds(h.bounds))
	require.NoError(t, err)
	other.Mount(h.bus)

	h.sel.Open()
	other.Open()
	assert.False(t, h.sel.IsOpen())
	assert.True(t, other.IsOpen())
}

func TestOptionsChangeWhileOpen(t *testing.T) {
	h := newHarness(t, Config{ID: "emp"})
	h.sel.Open()
	h.sel.SetSearchTerm("wilson")

	h.press(tea.KeyDown)
	assert.Equal(t, 1, h.sel.Highlighted())

	h.sel.SetOptions(employees()[:2])
	assert.Equal(t, []string{"2"}, keys(h.sel, h.sel.Filtered()))
	assert.Equal(t, 0, h.sel.Highlighted(), "highlight clamped into the new list")
	assert.True(t, h.sel.IsOpen())
}

func TestKeyboardFlow(t *testing.T) {
	h := newHarness(t, Config{ID: "emp"})

	h.press(tea.KeyEnter)
	require.True(t, h.sel.IsOpen())

	h.typeText("wil")
	assert.Equal(t, "wil", h.sel.SearchTerm())
	assert.Equal(t, []string{"2", "4"}, keys(h.sel, h.sel.Filtered()))
	assert.Equal(t, 0, h.sel.Highlighted())

	h.press(tea.KeyDown)
	h.press(tea.KeyEnter)
	assert.Equal(t, []string{"4"}, h.changes)
	assert.False(t, h.sel.IsOpen())

	h.press(tea.KeyEnter)
	assert.Equal(t, 3, h.sel.Highlighted(), "reopening highlights the current value")
	h.press(tea.KeyEsc)
	assert.False(t, h.sel.IsOpen())

	h.press(tea.KeyBackspace)
	assert.Equal(t, []string{"4", ""}, h.changes)
}

func TestKeysIgnoredWithoutFocus(t *testing.T) {
	h := newHarness(t, Config{ID: "emp"})
	h.sel.Blur()

	h.press(tea.KeyEnter)
	assert.False(t, h.sel.IsOpen())
}

func TestBlurCloses(t *testing.T) {
	h := newHarness(t, Config{ID: "emp"})
	h.sel.Open()
	h.sel.Blur()
	assert.False(t, h.sel.IsOpen())
	assert.Equal(t, 0, h.listeners())
}

func TestSelectValue(t *testing.T) {
	h := newHarness(t, Config{ID: "emp"})
	h.sel.Open()

	assert.False(t, h.sel.SelectValue("42"))
	assert.True(t, h.sel.SelectValue("1"))
	assert.Equal(t, []string{"1"}, h.changes)
}

func TestViewMarksRequiredAndDetail(t *testing.T) {
	h := newHarness(t, Config{ID: "emp", Label: "Employee", Required: true, DetailKey: "email"})

	view := h.sel.View()
	assert.Contains(t, view, "Employee")
	assert.Contains(t, view, "*")
	assert.Contains(t, view, DefaultPlaceholder)

	h.sel.Open()
	view = h.sel.View()
	assert.Contains(t, view, "john@company.com")
	assert.Contains(t, view, "Sarah Johnson")
}

func TestConfigValidation(t *testing.T) {
	_, err := New(Config{MatchMode: "regex"})
	assert.Error(t, err)

	_, err = New(Config{Width: 5})
	assert.Error(t, err)

	_, err = New(Config{SearchKeys: []string{"name", ""}})
	assert.Error(t, err)

	sel, err := New(Config{})
	require.NoError(t, err)
	cfg := sel.Config()
	assert.Equal(t, DefaultDisplayKey, cfg.DisplayKey)
	assert.Equal(t, DefaultValueKey, cfg.ValueKey)
	assert.Equal(t, []string{DefaultDisplayKey}, cfg.SearchKeys)
	assert.Equal(t, DefaultMaxVisible, cfg.MaxVisible)
	assert.NotEmpty(t, cfg.ID)
}

func TestFuzzyMatchMode(t *testing.T) {
	h := newHarness(t, Config{ID: "emp", MatchMode: "fuzzy"})
	h.sel.Open()

	h.sel.SetSearchTerm("mkw")
	assert.Equal(t, []string{"2"}, keys(h.sel, h.sel.Filtered()))
}
