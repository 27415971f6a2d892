package state

import (
	"slices"
	"strings"
	"sync"

	"github.com/vdev-tools/vdev/internal/errors"
)

// MemoryStore is an in-process Store, safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	active map[string]string
	failed map[string]error
}

// NewMemoryStore returns a store seeded with integration → environment
// selections.
func NewMemoryStore(seed map[string]string) *MemoryStore {
	s := &MemoryStore{
		active: make(map[string]string, len(seed)),
		failed: make(map[string]error),
	}
	for k, v := range seed {
		s.active[k] = v
	}
	return s
}

// FailReads makes Active report a StateReadError for integration.
func (s *MemoryStore) FailReads(integration string, cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed[integration] = cause
}

// Active implements Reader.
func (s *MemoryStore) Active(integration string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if cause, ok := s.failed[integration]; ok {
		return "", false, errors.StateReadError(integration, cause)
	}
	env, ok := s.active[integration]
	return env, ok, nil
}

// Activate implements Store.
func (s *MemoryStore) Activate(integration, environment string) error {
	if err := validateKey(integration); err != nil {
		return errors.ValidationError(err.Error())
	}
	if environment == "" {
		return errors.ValidationError("environment name cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[integration] = environment
	return nil
}

// Deactivate implements Store.
func (s *MemoryStore) Deactivate(integration string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, integration)
	return nil
}

// List implements Store.
func (s *MemoryStore) List() ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]Record, 0, len(s.active))
	for k, v := range s.active {
		records = append(records, Record{Integration: k, Active: v})
	}
	slices.SortFunc(records, func(a, b Record) int {
		return strings.Compare(a.Integration, b.Integration)
	})
	return records, nil
}
