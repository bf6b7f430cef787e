// Package goals owns the savings-goal collection: it validates every change,
// applies it, and persists the result before the change becomes visible.
package goals

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"cloud.google.com/go/civil"

	"github.com/Veraticus/piggy/internal/common"
	"github.com/Veraticus/piggy/internal/model"
	"github.com/Veraticus/piggy/internal/service"
)

// Manager owns the ordered goal collection and the category vocabulary, and
// saves the full state to its store after every successful change.
type Manager struct {
	store      service.Storage
	now        func() time.Time
	loadErr    error
	goals      []model.Goal
	categories []string
	mu         sync.Mutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithCategories sets the category vocabulary used when the store does not
// provide one.
func WithCategories(categories []string) Option {
	return func(m *Manager) {
		if len(categories) > 0 {
			m.categories = slices.Clone(categories)
		}
	}
}

// WithClock replaces time.Now, which decides start and completion dates.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a manager and loads the current state from store. A
// store that cannot be decoded leaves the manager empty; the decode error is
// logged and available from LoadError. Any other load failure is returned.
func NewManager(ctx context.Context, store service.Storage, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: goal store", common.ErrMissingConfig)
	}

	m := &Manager{
		store:      store,
		now:        time.Now,
		categories: slices.Clone(model.DefaultCategories),
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.Load(ctx); err != nil && !errors.Is(err, common.ErrStorageDecode) {
		return nil, err
	}
	return m, nil
}

// Load replaces the in-memory state with the store contents. On a decode
// failure the goal list is reset to empty, any categories the store could
// still read are kept, and the error is returned.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot, err := m.store.Load(ctx)
	if errors.Is(err, common.ErrStorageDecode) {
		m.goals = nil
		m.loadErr = err
		if snapshot != nil && snapshot.Categories != nil {
			m.categories = snapshot.Categories
		}
		slog.Warn("goal store is malformed, starting with no goals",
			"store", m.store.Location(),
			"error", err)
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}

	m.loadErr = nil
	if snapshot == nil {
		slog.Debug("no goal store yet", "store", m.store.Location())
		return nil
	}

	if snapshot.Categories != nil {
		m.categories = snapshot.Categories
	}
	m.goals = snapshot.Goals

	slog.Debug("loaded goals",
		"store", m.store.Location(),
		"goals", len(m.goals),
		"categories", len(m.categories))
	return nil
}

// LoadError returns the decode error from the last load, if the store had to
// be discarded.
func (m *Manager) LoadError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadErr
}

// Save writes the current state to the store.
func (m *Manager) Save(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Save(ctx, m.snapshot(m.goals))
}

func (m *Manager) snapshot(goals []model.Goal) *model.Snapshot {
	return &model.Snapshot{
		Categories: slices.Clone(m.categories),
		Goals:      slices.Clone(goals),
	}
}

func (m *Manager) today() civil.Date {
	return civil.DateOf(m.now())
}

// commit runs one change as a unit: change works on a copy of the goals, the
// copy is saved, and only then does it replace the in-memory state. Errors
// from change or from the store leave both memory and disk untouched.
func (m *Manager) commit(ctx context.Context, op string, change func(goals []model.Goal) ([]model.Goal, error)) error {
	next, err := change(slices.Clone(m.goals))
	if err != nil {
		return err
	}

	if err := m.store.Save(ctx, m.snapshot(next)); err != nil {
		common.LogError(err, "failed to persist goal change", common.Fields{
			"operation": op,
			"store":     m.store.Location(),
		})
		return err
	}

	m.goals = next
	return nil
}

// indexOf returns the position of the first goal called name, or -1.
func indexOf(goals []model.Goal, name string) int {
	return slices.IndexFunc(goals, func(g model.Goal) bool {
		return g.Name() == name
	})
}

// AddGoal creates a goal in a known category and appends it.
func (m *Manager) AddGoal(ctx context.Context, name string, targetAmount float64, category string) (model.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !model.HasCategory(m.categories, category) {
		return model.Goal{}, fmt.Errorf("%w: %q (known: %v)", common.ErrUnknownCategory, category, m.categories)
	}
	if indexOf(m.goals, name) >= 0 {
		return model.Goal{}, fmt.Errorf("%w: %q", common.ErrDuplicateGoal, name)
	}

	goal, err := model.NewGoal(name, targetAmount, category, m.today())
	if err != nil {
		return model.Goal{}, err
	}

	err = m.commit(ctx, "add", func(goals []model.Goal) ([]model.Goal, error) {
		return append(goals, goal), nil
	})
	if err != nil {
		return model.Goal{}, err
	}

	common.LogInfo("goal added", common.Fields{
		"name":     name,
		"target":   targetAmount,
		"category": category,
	})
	return goal, nil
}

// RemoveGoal removes the first goal called name. It reports whether one was
// found; nothing is written when it was not.
func (m *Manager) RemoveGoal(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := indexOf(m.goals, name)
	if idx < 0 {
		return false, nil
	}

	err := m.commit(ctx, "remove", func(goals []model.Goal) ([]model.Goal, error) {
		return slices.Delete(goals, idx, idx+1), nil
	})
	if err != nil {
		return false, err
	}

	common.LogInfo("goal removed", common.Fields{"name": name})
	return true, nil
}

// FindGoal returns the first goal called name.
func (m *Manager) FindGoal(name string) (model.Goal, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := indexOf(m.goals, name)
	if idx < 0 {
		return model.Goal{}, false
	}
	return m.goals[idx], true
}

// ListGoals returns every goal in insertion order.
func (m *Manager) ListGoals() []model.Goal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.goals)
}

// ListGoalsByCategory returns the goals in category, in insertion order.
func (m *Manager) ListGoalsByCategory(category string) []model.Goal {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Goal
	for _, g := range m.goals {
		if g.Category() == category {
			out = append(out, g)
		}
	}
	return out
}

// Categories returns the category vocabulary.
func (m *Manager) Categories() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.categories)
}

// TotalProgress returns the summed balances as a percentage of the summed
// targets, or 0 when there is nothing to measure against.
func (m *Manager) TotalProgress() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	var balance, target float64
	for _, g := range m.goals {
		balance += g.Balance()
		target += g.TargetAmount()
	}
	if target <= 0 {
		return 0
	}
	return balance / target * 100
}

// DepositTo adds amount to the goal called name.
func (m *Manager) DepositTo(ctx context.Context, name string, amount float64) (model.Goal, error) {
	today := m.today()
	return m.updateGoal(ctx, "deposit", name, func(g *model.Goal) error {
		return g.AddFunds(amount, today)
	})
}

// WithdrawFrom takes amount out of the goal called name.
func (m *Manager) WithdrawFrom(ctx context.Context, name string, amount float64) (model.Goal, error) {
	return m.updateGoal(ctx, "withdraw", name, func(g *model.Goal) error {
		return g.WithdrawFunds(amount)
	})
}

// SetStatus changes the status of the goal called name.
func (m *Manager) SetStatus(ctx context.Context, name string, status model.GoalStatus) (model.Goal, error) {
	return m.updateGoal(ctx, "status", name, func(g *model.Goal) error {
		return g.ChangeStatus(status)
	})
}

func (m *Manager) updateGoal(ctx context.Context, op, name string, apply func(*model.Goal) error) (model.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var updated model.Goal
	err := m.commit(ctx, op, func(goals []model.Goal) ([]model.Goal, error) {
		idx := indexOf(goals, name)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", common.ErrGoalNotFound, name)
		}
		if err := apply(&goals[idx]); err != nil {
			return nil, err
		}
		updated = goals[idx]
		return goals, nil
	})
	if err != nil {
		return model.Goal{}, err
	}

	slog.Debug("goal updated",
		"operation", op,
		"name", name,
		"balance", updated.Balance(),
		"status", updated.Status().English())
	return updated, nil
}

var _ service.GoalService = (*Manager)(nil)
