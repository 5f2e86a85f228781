package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	zone "github.com/lrstanley/bubblezone"

	"stockhub/internal/eventbus"
	"stockhub/internal/ui"
)

// uiEvents are the domain events the form reacts to
var uiEvents = []eventbus.EventType{
	eventbus.EventLoadStarted,
	eventbus.EventOptionsLoaded,
	eventbus.EventOptionsFailed,
	eventbus.EventLoadCompleted,
	eventbus.EventAssignmentCreated,
	eventbus.EventError,
	eventbus.EventConfigSaved,
}

func runForm(ctx context.Context, opts *globalOptions) error {
	a, err := newApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	zone.NewGlobal()
	defer zone.Close()

	model, err := ui.NewModel(a.bus, a.cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	model.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	done := make(chan struct{})
	for _, eventType := range uiEvents {
		a.bus.Subscribe(eventType, func(e eventbus.DomainEvent) {
			select {
			case eventChan <- e:
			case <-done:
			default:
				log.Warn("event channel full, dropping event", "event", e.Type())
			}
		})
	}

	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-done:
				return
			}
		}
	}()

	log.Info("starting UI")
	_, err = p.Run()
	close(done)
	model.Close()
	if err != nil {
		log.Error("error running program", "err", err)
		return fmt.Errorf("error running program: %w", err)
	}
	log.Info("UI exited normally")
	return nil
}
