package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockhub/internal/api"
	"stockhub/internal/domain"
	"stockhub/internal/eventbus"
	"stockhub/internal/ui/state"
)

func TestLoadLifecycle(t *testing.T) {
	s := state.NewAppState([]string{"employee"})
	applied := map[domain.Source]int{}
	h := NewEventHandler(s, func(source domain.Source, options []domain.Option) {
		applied[source] = len(options)
	}, nil)

	cmd := h.HandleEvent(eventbus.LoadStartedEvent{Sources: []domain.Source{domain.SourceEmployees, domain.SourceBranches}})
	assert.NotNil(t, cmd, "first load starts the spinner")
	assert.True(t, s.IsLoading())

	h.HandleEvent(eventbus.OptionsLoadedEvent{
		Source:   domain.SourceEmployees,
		Options:  []domain.Option{{"id": 1}, {"id": 2}},
		Fallback: true,
	})
	assert.Equal(t, 2, applied[domain.SourceEmployees])
	assert.True(t, s.Fallback[domain.SourceEmployees])
	assert.Equal(t, []domain.Source{domain.SourceBranches}, s.Loading())

	assert.NotNil(t, h.HandleTick())

	h.HandleEvent(eventbus.LoadCompletedEvent{Loaded: 2})
	assert.False(t, s.IsLoading())
	assert.Equal(t, "Loaded 2 option lists", s.StatusMessage)
	assert.Nil(t, h.HandleTick())
}

func TestFailureKeepsErrorVisible(t *testing.T) {
	s := state.NewAppState(nil)
	h := NewEventHandler(s, nil, nil)

	h.HandleEvent(eventbus.OptionsFailedEvent{
		Source: domain.SourceBranches,
		Err:    &api.StatusError{Code: 401},
	})
	assert.True(t, s.StatusIsError)
	assert.Contains(t, s.StatusMessage, "Not authorized")

	h.HandleEvent(eventbus.LoadCompletedEvent{Loaded: 1})
	assert.True(t, s.StatusIsError)
}

func TestAssignmentEvents(t *testing.T) {
	s := state.NewAppState(nil)
	var created []domain.Assignment
	h := NewEventHandler(s, nil, func(a domain.Assignment) { created = append(created, a) })

	s.Submitting = true
	h.HandleEvent(eventbus.AssignmentCreatedEvent{Assignment: domain.Assignment{ID: 12, Status: domain.StatusActive}})
	assert.False(t, s.Submitting)
	require.NotNil(t, s.LastCreated)
	assert.Equal(t, 12, s.LastCreated.ID)
	assert.Len(t, created, 1)

	s.Submitting = true
	h.HandleEvent(eventbus.ErrorEvent{Message: "Failed to create assignment", Err: errors.New("boom")})
	assert.False(t, s.Submitting)
	assert.Equal(t, "Error: Failed to create assignment: boom", s.StatusMessage)
}
