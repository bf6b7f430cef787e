// Package testutil provides goal fixtures backed by an in-memory store.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/piggy/internal/goals"
	"github.com/Veraticus/piggy/internal/storage"
)

// Now is the fixed time fixtures use as "today".
var Now = time.Date(2025, 11, 26, 9, 0, 0, 0, time.UTC)

// Clock returns Now.
func Clock() time.Time { return Now }

// GoalSeed describes a goal to seed: it is added and then Deposit is paid in.
type GoalSeed struct {
	Name     string
	Category string
	Target   float64
	Deposit  float64
}

// SetupManager returns a manager over a migrated in-memory SQLite store,
// seeded with seeds in order. The store is closed when the test ends.
//
// Example:
//
//	mgr := testutil.SetupManager(t, nil,
//		testutil.GoalSeed{Name: "Rome", Category: "Путешествия", Target: 500},
//	)
func SetupManager(t *testing.T, categories []string, seeds ...GoalSeed) *goals.Manager {
	t.Helper()
	ctx := context.Background()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	mgr, err := goals.NewManager(ctx, store,
		goals.WithClock(Clock),
		goals.WithCategories(categories))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	for _, seed := range seeds {
		if _, err := mgr.AddGoal(ctx, seed.Name, seed.Target, seed.Category); err != nil {
			t.Fatalf("failed to seed goal %q: %v", seed.Name, err)
		}
		if seed.Deposit > 0 {
			if _, err := mgr.DepositTo(ctx, seed.Name, seed.Deposit); err != nil {
				t.Fatalf("failed to deposit into %q: %v", seed.Name, err)
			}
		}
	}
	return mgr
}
