package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"revops-engine/internal/domain"
	"revops-engine/internal/storage"
)

func TestScenarioStore_PutAndGet(t *testing.T) {
	store := NewScenarioStore()
	ctx := context.Background()

	sc := &domain.Scenario{
		ID:      "id-1",
		Name:    "baseline",
		Params:  domain.Params{{Name: "deal.avg_deal_value", Value: 50000}},
		SavedAt: time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC),
	}

	if err := store.Put(ctx, sc); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "baseline")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if v, _ := got.Params.Get("deal.avg_deal_value"); v != 50000 {
		t.Errorf("avg_deal_value mismatch: got %f, want %f", v, 50000.0)
	}
}

func TestScenarioStore_PutCopiesInput(t *testing.T) {
	store := NewScenarioStore()
	ctx := context.Background()

	live := domain.Params{{Name: "x", Value: 1}}
	if err := store.Put(ctx, &domain.Scenario{Name: "s", Params: live}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// Mutating the live working set must not alter the saved scenario.
	live[0].Value = 99

	got, _ := store.Get(ctx, "s")
	if got.Params[0].Value != 1 {
		t.Errorf("stored scenario aliased live params: got %f", got.Params[0].Value)
	}
}

func TestScenarioStore_GetReturnsCopy(t *testing.T) {
	store := NewScenarioStore()
	ctx := context.Background()

	_ = store.Put(ctx, &domain.Scenario{Name: "s", Params: domain.Params{{Name: "x", Value: 1}}})

	first, _ := store.Get(ctx, "s")
	first.Params[0].Value = 42

	second, _ := store.Get(ctx, "s")
	if second.Params[0].Value != 1 {
		t.Errorf("Get returned aliased params: got %f", second.Params[0].Value)
	}
}

func TestScenarioStore_PutReplaces(t *testing.T) {
	store := NewScenarioStore()
	ctx := context.Background()

	_ = store.Put(ctx, &domain.Scenario{Name: "s", Params: domain.Params{{Name: "x", Value: 1}}})
	_ = store.Put(ctx, &domain.Scenario{Name: "s", Params: domain.Params{{Name: "x", Value: 2}}})

	got, _ := store.Get(ctx, "s")
	if got.Params[0].Value != 2 {
		t.Errorf("expected replaced value 2, got %f", got.Params[0].Value)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 scenario, got %d", store.Len())
	}
}

func TestScenarioStore_InvalidInput(t *testing.T) {
	store := NewScenarioStore()
	ctx := context.Background()

	if err := store.Put(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil, got %v", err)
	}
	if err := store.Put(ctx, &domain.Scenario{Name: "  "}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestScenarioStore_NotFound(t *testing.T) {
	store := NewScenarioStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on delete, got %v", err)
	}
}

func TestScenarioStore_ListSortedAndDelete(t *testing.T) {
	store := NewScenarioStore()
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_ = store.Put(ctx, &domain.Scenario{Name: name})
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 || list[0].Name != "alpha" || list[1].Name != "mid" || list[2].Name != "zeta" {
		t.Fatalf("unexpected order: %+v", list)
	}

	if err := store.Delete(ctx, "mid"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	list, _ = store.List(ctx)
	if len(list) != 2 {
		t.Errorf("expected 2 scenarios after delete, got %d", len(list))
	}
}
