package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"stockhub/internal/api"
	"stockhub/internal/assign"
	"stockhub/internal/catalog"
	"stockhub/internal/config"
	"stockhub/internal/eventbus"
	"stockhub/internal/logic"
)

// app holds the services shared by every command
type app struct {
	cfg     *config.Config
	bus     eventbus.EventBus
	store   logic.OptionStore
	catalog catalog.CatalogService
	assign  assign.AssignmentService

	logFile io.Closer
}

func newApp(opts *globalOptions) (*app, error) {
	bus := eventbus.New()

	cfg, err := config.NewConfigServiceWithBus(bus, opts.ConfigPath).Load()
	if err != nil {
		bus.Close()
		return nil, err
	}
	applyFlags(cfg, opts)

	a := &app{cfg: cfg, bus: bus, store: logic.NewMemoryOptionStore()}
	if err := a.setupLogging(); err != nil {
		bus.Close()
		return nil, err
	}

	// Interface values stay nil offline; the services fall back to fixtures
	var fetcher catalog.Fetcher
	var creator assign.Creator
	if !cfg.Offline {
		client, err := api.NewClient(cfg.API.BaseURL,
			api.WithToken(cfg.API.Token),
			api.WithTimeout(cfg.API.Timeout),
		)
		if err != nil {
			a.Close()
			return nil, err
		}
		fetcher = client
		creator = client
	}

	a.catalog = catalog.NewCatalogService(bus, a.store, fetcher, catalog.Options{
		Timeout:   cfg.API.Timeout,
		PageLimit: cfg.API.PageLimit,
		Role:      cfg.API.Role,
	})
	a.assign = assign.NewAssignmentService(bus, creator, cfg.API.Timeout)

	log.Info("stockhub started", "api", cfg.API.BaseURL, "offline", cfg.Offline)
	return a, nil
}

func applyFlags(cfg *config.Config, opts *globalOptions) {
	if opts.APIURL != "" {
		cfg.API.BaseURL = opts.APIURL
	}
	if opts.Offline {
		cfg.Offline = true
	}
	if opts.LogFile != "" {
		cfg.Log.File = opts.LogFile
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
}

// setupLogging sends the package logger to the log file; the terminal
// belongs to the UI
func (a *app) setupLogging() error {
	level, err := log.ParseLevel(a.cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	log.SetReportTimestamp(true)

	if a.cfg.Log.File == "" {
		log.SetOutput(io.Discard)
		return nil
	}

	logFile, err := os.OpenFile(a.cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.SetOutput(io.Discard)
		return fmt.Errorf("could not open log file: %w", err)
	}
	log.SetOutput(logFile)
	a.logFile = logFile
	return nil
}

// Close stops background work and flushes the log file
func (a *app) Close() {
	if a.catalog != nil {
		a.catalog.Stop()
	}
	if a.assign != nil {
		a.assign.Wait()
	}
	a.bus.Close()
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}
