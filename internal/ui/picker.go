package ui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"stockhub/internal/domain"
	"stockhub/internal/ui/searchselect"
	"stockhub/internal/ui/services/events"
)

// Picker runs a single select and quits once an option is chosen or the
// panel is dismissed
type Picker struct {
	sel   *searchselect.Model
	uiBus *events.Bus
	help  help.Model

	chosen    string
	cancelled bool
}

// NewPicker creates a picker over options
func NewPicker(cfg searchselect.Config, options []domain.Option) (*Picker, error) {
	uiBus := events.NewBus()
	sel, err := searchselect.New(cfg, searchselect.WithSearchBus(uiBus))
	if err != nil {
		return nil, err
	}

	p := &Picker{sel: sel, uiBus: uiBus, help: help.New()}
	sel.OnChange(func(value string) {
		p.chosen = value
		sel.SetValue(value)
	})
	sel.SetOptions(options)
	sel.Mount(uiBus)
	sel.Focus()

	return p, nil
}

// Chosen returns the chosen key; ok is false when the picker was dismissed
func (p *Picker) Chosen() (string, bool) {
	return p.chosen, p.chosen != "" && !p.cancelled
}

func (p *Picker) Init() tea.Cmd {
	return p.sel.Open()
}

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.help.Width = msg.Width
		return p, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			p.cancelled = true
			return p, p.quit()
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			p.uiBus.Publish(events.PointerPressed{Msg: msg})
		}
	}

	_, cmd := p.sel.Update(msg)

	if p.chosen != "" {
		return p, p.quit()
	}
	if !p.sel.IsOpen() {
		p.cancelled = true
		return p, p.quit()
	}
	return p, cmd
}

func (p *Picker) View() string {
	out := p.sel.View() + "\n" + p.help.ShortHelpView(p.sel.KeyMap().OpenHelp())
	if zone.DefaultManager == nil {
		return out
	}
	return zone.Scan(out)
}

func (p *Picker) quit() tea.Cmd {
	p.sel.Unmount()
	return tea.Quit
}
