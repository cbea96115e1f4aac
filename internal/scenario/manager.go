// Package scenario saves named input snapshots and compares their outputs.
package scenario

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"revops-engine/internal/domain"
	"revops-engine/internal/observability"
	"revops-engine/internal/sensitivity"
	"revops-engine/internal/storage"
)

// EvalFunc computes the headline metrics of a saved scenario.
type EvalFunc func(ctx context.Context, s *domain.Scenario) (map[string]float64, error)

// Manager stores scenarios and compares them.
type Manager struct {
	store   storage.ScenarioStore
	metrics *observability.Metrics // optional
	clock   func() time.Time
	newID   func() string
}

// NewManager creates a manager over store.
func NewManager(store storage.ScenarioStore) *Manager {
	return &Manager{
		store: store,
		clock: func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// WithClock sets a custom clock function for deterministic timestamps.
func (m *Manager) WithClock(clock func() time.Time) *Manager {
	m.clock = clock
	return m
}

// WithMetrics enables the stored scenarios gauge.
func (m *Manager) WithMetrics(metrics *observability.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Save stores a deep copy of params under name, replacing any previous
// scenario with that name.
func (m *Manager) Save(ctx context.Context, name string, params domain.Params) (*domain.Scenario, error) {
	return m.save(ctx, &domain.Scenario{Name: name, Params: params})
}

// SaveInputs stores params together with the structured inputs they describe.
func (m *Manager) SaveInputs(ctx context.Context, name string, in domain.Inputs, params domain.Params) (*domain.Scenario, error) {
	return m.save(ctx, &domain.Scenario{Name: name, Params: params, Inputs: &in})
}

func (m *Manager) save(ctx context.Context, s *domain.Scenario) (*domain.Scenario, error) {
	s.ID = m.newID()
	s.SavedAt = m.clock()

	if err := m.store.Put(ctx, s); err != nil {
		return nil, fmt.Errorf("save scenario %q: %w", s.Name, err)
	}
	m.updateGauge(ctx)

	out := s.Clone()
	return &out, nil
}

// Get returns a deep copy of the named scenario.
func (m *Manager) Get(ctx context.Context, name string) (*domain.Scenario, error) {
	s, err := m.store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get scenario %q: %w", name, err)
	}
	return s, nil
}

// List returns every scenario ordered by name.
func (m *Manager) List(ctx context.Context) ([]*domain.Scenario, error) {
	return m.store.List(ctx)
}

// Delete removes the named scenario.
func (m *Manager) Delete(ctx context.Context, name string) error {
	if err := m.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete scenario %q: %w", name, err)
	}
	m.updateGauge(ctx)
	return nil
}

// Compare evaluates fn on the params of scenarios a and b.
func (m *Manager) Compare(ctx context.Context, a, b string, fn sensitivity.MultiMetricFunc) ([]domain.MetricDelta, error) {
	return m.CompareWith(ctx, a, b, func(_ context.Context, s *domain.Scenario) (map[string]float64, error) {
		return fn(s.Params.Clone()), nil
	})
}

// CompareWith evaluates both scenarios with eval and returns one delta per
// metric present in either, ordered by metric name.
func (m *Manager) CompareWith(ctx context.Context, a, b string, eval EvalFunc) ([]domain.MetricDelta, error) {
	sa, err := m.Get(ctx, a)
	if err != nil {
		return nil, err
	}
	sb, err := m.Get(ctx, b)
	if err != nil {
		return nil, err
	}

	va, err := eval(ctx, sa)
	if err != nil {
		return nil, fmt.Errorf("evaluate scenario %q: %w", a, err)
	}
	vb, err := eval(ctx, sb)
	if err != nil {
		return nil, fmt.Errorf("evaluate scenario %q: %w", b, err)
	}

	return Deltas(va, vb), nil
}

// Deltas compares two metric sets. A metric missing on one side counts as 0.
func Deltas(a, b map[string]float64) []domain.MetricDelta {
	names := make(map[string]struct{}, len(a))
	for k := range a {
		names[k] = struct{}{}
	}
	for k := range b {
		names[k] = struct{}{}
	}

	out := make([]domain.MetricDelta, 0, len(names))
	for name := range names {
		va, vb := a[name], b[name]
		out = append(out, domain.MetricDelta{
			Metric:   name,
			A:        va,
			B:        vb,
			AbsDelta: vb - va,
			PctDelta: domain.SafeDiv(vb-va, math.Abs(va)) * 100,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Metric < out[j].Metric
	})
	return out
}

func (m *Manager) updateGauge(ctx context.Context) {
	if m.metrics == nil {
		return
	}
	list, err := m.store.List(ctx)
	if err != nil {
		return
	}
	m.metrics.SetScenariosStored(len(list))
}
