package logic

import (
	"sync"

	"stockhub/internal/domain"
)

// MemoryOptionStore is an in-memory implementation of OptionStore
type MemoryOptionStore struct {
	mu       sync.RWMutex
	options  map[domain.Source][]domain.Option
	fallback map[domain.Source]bool
}

// NewMemoryOptionStore creates a new memory-based option store
func NewMemoryOptionStore() *MemoryOptionStore {
	return &MemoryOptionStore{
		options:  make(map[domain.Source][]domain.Option),
		fallback: make(map[domain.Source]bool),
	}
}

func (s *MemoryOptionStore) GetOptions(source domain.Source) []domain.Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOptions(s.options[source])
}

func (s *MemoryOptionStore) GetAllOptions() map[domain.Source][]domain.Option {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent external modification
	result := make(map[domain.Source][]domain.Option, len(s.options))
	for k, v := range s.options {
		result[k] = copyOptions(v)
	}
	return result
}

func (s *MemoryOptionStore) SetOptions(source domain.Source, options []domain.Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options[source] = copyOptions(options)
}

func (s *MemoryOptionStore) RemoveOptions(source domain.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.options, source)
	delete(s.fallback, source)
}

func (s *MemoryOptionStore) IsFallback(source domain.Source) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fallback[source]
}

func (s *MemoryOptionStore) MarkFallback(source domain.Source, fallback bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback[source] = fallback
}

func copyOptions(options []domain.Option) []domain.Option {
	if options == nil {
		return nil
	}
	result := make([]domain.Option, len(options))
	copy(result, options)
	return result
}
