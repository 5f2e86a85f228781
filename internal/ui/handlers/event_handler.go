package handlers

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stockhub/internal/api"
	"stockhub/internal/domain"
	"stockhub/internal/eventbus"
	"stockhub/internal/ui/state"
)

// TickMsg is a tick message for animations
type TickMsg time.Time

// Tick schedules the next spinner frame
func Tick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// EventHandler handles domain events and updates state
type EventHandler struct {
	state        *state.AppState
	applyOptions func(source domain.Source, options []domain.Option)
	onCreated    func(a domain.Assignment)
}

// NewEventHandler creates a new event handler. applyOptions receives every
// loaded option list; onCreated is called after an assignment was accepted.
func NewEventHandler(appState *state.AppState, applyOptions func(domain.Source, []domain.Option), onCreated func(domain.Assignment)) *EventHandler {
	return &EventHandler{
		state:        appState,
		applyOptions: applyOptions,
		onCreated:    onCreated,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.LoadStartedEvent:
		wasLoading := h.state.IsLoading()
		h.state.SetLoading(e.Sources, true)
		h.state.SetStatus("Loading options...")
		if !wasLoading {
			return Tick()
		}

	case eventbus.OptionsLoadedEvent:
		h.state.SetLoading([]domain.Source{e.Source}, false)
		h.state.OptionCounts[e.Source] = len(e.Options)
		h.state.Fallback[e.Source] = e.Fallback
		if h.applyOptions != nil {
			h.applyOptions(e.Source, e.Options)
		}

	case eventbus.OptionsFailedEvent:
		msg := fmt.Sprintf("Could not load %s, using built-in data", e.Source)
		if errors.Is(e.Err, api.ErrUnauthorized) {
			msg = fmt.Sprintf("Not authorized to load %s, using built-in data", e.Source)
		}
		h.state.SetError(msg)

	case eventbus.LoadCompletedEvent:
		h.state.ClearLoading()
		if !h.state.StatusIsError {
			h.state.SetStatus(fmt.Sprintf("Loaded %d option lists", e.Loaded))
		}

	case eventbus.AssignmentCreatedEvent:
		h.state.Submitting = false
		created := e.Assignment
		h.state.LastCreated = &created
		h.state.SetStatus(fmt.Sprintf("Assignment #%d created", created.ID))
		if h.onCreated != nil {
			h.onCreated(created)
		}

	case eventbus.ErrorEvent:
		h.state.Submitting = false
		if e.Err != nil {
			h.state.SetError(fmt.Sprintf("Error: %s: %v", e.Message, e.Err))
		} else {
			h.state.SetError(fmt.Sprintf("Error: %s", e.Message))
		}

	case eventbus.ConfigSavedEvent:
		h.state.SetStatus(fmt.Sprintf("Configuration saved to %s", e.Path))
	}

	return nil
}

// HandleTick advances the spinner while loading or submitting
func (h *EventHandler) HandleTick() tea.Cmd {
	if !h.state.IsLoading() && !h.state.Submitting {
		return nil
	}
	h.state.SpinnerFrame++
	return Tick()
}
