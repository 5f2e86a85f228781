package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"stockhub/internal/domain"
	"stockhub/internal/eventbus"
	"stockhub/internal/logic"
)

var (
	// ErrUnknownSource is returned for a source the catalog cannot provide
	ErrUnknownSource = errors.New("unknown source")
	// ErrLoadInProgress is returned when Load is called during another load
	ErrLoadInProgress = errors.New("load already in progress")
)

func unknownSource(source domain.Source) error {
	return fmt.Errorf("%w: %q", ErrUnknownSource, source)
}

// ParseSource validates a source name
func ParseSource(s string) (domain.Source, error) {
	for _, source := range domain.AllSources {
		if string(source) == s {
			return source, nil
		}
	}
	return "", unknownSource(domain.Source(s))
}

// Fetcher reads option records from the backend
type Fetcher interface {
	ListBranches(ctx context.Context, skip, limit int) ([]domain.Branch, error)
	ListUsers(ctx context.Context, role string) ([]domain.Employee, error)
}

// Options tune how the catalog talks to the backend
type Options struct {
	Timeout   time.Duration
	PageLimit int
	Role      string
	Workers   int
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	if o.PageLimit <= 0 {
		o.PageLimit = 100
	}
	if o.Workers <= 0 {
		o.Workers = 3
	}
	return o
}

// CatalogService loads option lists for the form
type CatalogService interface {
	Load(ctx context.Context, sources []domain.Source) error
	Fetch(ctx context.Context, source domain.Source) ([]domain.Option, bool, error)
	Stop()
}

// catalogService is the concrete implementation
type catalogService struct {
	bus        eventbus.EventBus
	store      logic.OptionStore
	fetcher    Fetcher
	opts       Options
	mu         sync.Mutex
	isLoading  bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	workerPool chan struct{}
}

// NewCatalogService creates a catalog. A nil fetcher means offline: every
// source is served from fixtures.
func NewCatalogService(bus eventbus.EventBus, store logic.OptionStore, fetcher Fetcher, opts Options) CatalogService {
	opts = opts.withDefaults()
	cs := &catalogService{
		bus:        bus,
		store:      store,
		fetcher:    fetcher,
		opts:       opts,
		workerPool: make(chan struct{}, opts.Workers),
	}

	bus.Subscribe(eventbus.EventOptionsRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.OptionsRequestedEvent); ok {
			if err := cs.Load(context.Background(), event.Sources); err != nil {
				log.Warn("options request ignored", "err", err)
			}
		}
	})

	return cs
}

// Load fetches sources in the background and publishes one OptionsLoaded
// event per source. An empty list loads every source.
func (cs *catalogService) Load(ctx context.Context, sources []domain.Source) error {
	if len(sources) == 0 {
		sources = domain.AllSources
	}
	for _, source := range sources {
		if _, err := ParseSource(string(source)); err != nil {
			return err
		}
	}

	cs.mu.Lock()
	if cs.isLoading {
		cs.mu.Unlock()
		return ErrLoadInProgress
	}
	cs.isLoading = true

	loadCtx, cancel := context.WithCancel(ctx)
	cs.cancelFunc = cancel
	cs.mu.Unlock()

	cs.bus.Publish(eventbus.LoadStartedEvent{Sources: sources})

	cs.wg.Add(1)
	go func() {
		defer cs.wg.Done()

		var (
			mu     sync.Mutex
			loaded int
			failed int
			wg     sync.WaitGroup
		)

		for _, source := range sources {
			wg.Add(1)
			go func(source domain.Source) {
				defer wg.Done()

				select {
				case cs.workerPool <- struct{}{}:
					defer func() { <-cs.workerPool }()
				case <-loadCtx.Done():
					return
				}

				options, fallback, err := cs.Fetch(loadCtx, source)
				if err != nil {
					mu.Lock()
					failed++
					mu.Unlock()
					return
				}

				cs.store.SetOptions(source, options)
				cs.store.MarkFallback(source, fallback)
				cs.bus.Publish(eventbus.OptionsLoadedEvent{
					Source:   source,
					Options:  options,
					Fallback: fallback,
				})

				mu.Lock()
				loaded++
				mu.Unlock()
			}(source)
		}
		wg.Wait()

		cs.mu.Lock()
		cs.isLoading = false
		cs.cancelFunc = nil
		cs.mu.Unlock()
		cancel()

		cs.bus.Publish(eventbus.LoadCompletedEvent{Loaded: loaded, Failed: failed})
	}()

	return nil
}

// Fetch returns the options of one source. Backend failures fall back to
// fixtures and are reported with an OptionsFailed event; the returned bool
// tells whether fixtures were used.
func (cs *catalogService) Fetch(ctx context.Context, source domain.Source) ([]domain.Option, bool, error) {
	if source == domain.SourceStatuses {
		return statusOptions(), false, nil
	}
	if cs.fetcher == nil {
		options, err := Fixture(source)
		return options, true, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, cs.opts.Timeout)
	defer cancel()

	options, err := cs.fetch(fetchCtx, source)
	if err == nil {
		log.Debug("options fetched", "source", source, "count", len(options))
		return options, false, nil
	}
	if errors.Is(err, ErrUnknownSource) || errors.Is(ctx.Err(), context.Canceled) {
		return nil, false, err
	}

	log.Warn("falling back to built-in options", "source", source, "err", err)
	cs.bus.Publish(eventbus.OptionsFailedEvent{Source: source, Err: err})

	options, fixtureErr := Fixture(source)
	if fixtureErr != nil {
		return nil, false, fixtureErr
	}
	return options, true, nil
}

func (cs *catalogService) fetch(ctx context.Context, source domain.Source) ([]domain.Option, error) {
	switch source {
	case domain.SourceEmployees:
		users, err := cs.fetcher.ListUsers(ctx, cs.opts.Role)
		if err != nil {
			return nil, err
		}
		options := make([]domain.Option, 0, len(users))
		for _, u := range users {
			options = append(options, u.Option())
		}
		return options, nil
	case domain.SourceBranches:
		branches, err := cs.fetcher.ListBranches(ctx, 0, cs.opts.PageLimit)
		if err != nil {
			return nil, err
		}
		options := make([]domain.Option, 0, len(branches))
		for _, b := range branches {
			options = append(options, b.Option())
		}
		return options, nil
	default:
		return nil, unknownSource(source)
	}
}

// Stop cancels any ongoing load and waits for it
func (cs *catalogService) Stop() {
	cs.mu.Lock()
	if cs.cancelFunc != nil {
		cs.cancelFunc()
	}
	cs.mu.Unlock()

	cs.wg.Wait()
}
