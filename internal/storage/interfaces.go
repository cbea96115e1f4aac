package storage

import (
	"context"

	"revops-engine/internal/domain"
)

// ScenarioStore holds named input snapshots for what-if comparison.
// Implementations must copy on write and on read so a stored scenario never
// aliases a caller's working set.
type ScenarioStore interface {
	// Put stores s under s.Name, replacing any scenario with the same name.
	// Returns ErrInvalidInput if the name is empty.
	Put(ctx context.Context, s *domain.Scenario) error

	// Get retrieves a scenario by name. Returns ErrNotFound if not exists.
	Get(ctx context.Context, name string) (*domain.Scenario, error)

	// List retrieves all scenarios ordered by name.
	List(ctx context.Context) ([]*domain.Scenario, error)

	// Delete removes a scenario by name. Returns ErrNotFound if not exists.
	Delete(ctx context.Context, name string) error
}
