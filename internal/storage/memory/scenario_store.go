package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"revops-engine/internal/domain"
	"revops-engine/internal/storage"
)

// ScenarioStore is an in-memory implementation of storage.ScenarioStore.
type ScenarioStore struct {
	mu   sync.RWMutex
	data map[string]domain.Scenario // keyed by name
}

// NewScenarioStore creates a new in-memory scenario store.
func NewScenarioStore() *ScenarioStore {
	return &ScenarioStore{
		data: make(map[string]domain.Scenario),
	}
}

// Put stores a deep copy of s, replacing any scenario with the same name.
func (s *ScenarioStore) Put(_ context.Context, sc *domain.Scenario) error {
	if sc == nil || strings.TrimSpace(sc.Name) == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[sc.Name] = sc.Clone()
	return nil
}

// Get retrieves a deep copy of a scenario. Returns ErrNotFound if not exists.
func (s *ScenarioStore) Get(_ context.Context, name string) (*domain.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, exists := s.data[name]
	if !exists {
		return nil, storage.ErrNotFound
	}

	scCopy := sc.Clone()
	return &scCopy, nil
}

// List retrieves deep copies of all scenarios ordered by name.
func (s *ScenarioStore) List(_ context.Context) ([]*domain.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Scenario, 0, len(s.data))
	for _, sc := range s.data {
		scCopy := sc.Clone()
		result = append(result, &scCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result, nil
}

// Delete removes a scenario. Returns ErrNotFound if not exists.
func (s *ScenarioStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[name]; !exists {
		return storage.ErrNotFound
	}
	delete(s.data, name)
	return nil
}

// Len returns the number of stored scenarios.
func (s *ScenarioStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

var _ storage.ScenarioStore = (*ScenarioStore)(nil)
