package searchselect

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// Bounds marks regions of rendered output and tells whether a mouse event
// landed inside one of them
type Bounds interface {
	Mark(id, view string) string
	InBounds(id string, msg tea.MouseMsg) bool
}

type zoneBounds struct {
	manager *zone.Manager
}

// NewZoneBounds returns Bounds backed by bubblezone. With a nil manager the
// global manager is used; the host must call zone.NewGlobal and zone.Scan
// its final view.
func NewZoneBounds(manager *zone.Manager) Bounds {
	return zoneBounds{manager: manager}
}

func (z zoneBounds) get() *zone.Manager {
	if z.manager != nil {
		return z.manager
	}
	return zone.DefaultManager
}

func (z zoneBounds) Mark(id, view string) string {
	m := z.get()
	if m == nil {
		return view
	}
	return m.Mark(id, view)
}

func (z zoneBounds) InBounds(id string, msg tea.MouseMsg) bool {
	m := z.get()
	if m == nil {
		return false
	}
	info := m.Get(id)
	if info == nil {
		return false
	}
	return info.InBounds(msg)
}
