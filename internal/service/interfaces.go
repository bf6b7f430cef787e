// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/piggy/internal/model"
)

// Storage defines the contract for our persistence layer. A store holds one
// snapshot and every Save replaces it entirely.
type Storage interface {
	// Load returns the stored snapshot, or nil when nothing has been stored
	// yet. Malformed contents are reported with common.ErrStorageDecode; when
	// only the goal records are bad, the snapshot still carries the stored
	// categories.
	Load(ctx context.Context) (*model.Snapshot, error)
	// Save overwrites the stored snapshot. Failures wrap common.ErrStorageWrite.
	Save(ctx context.Context, snapshot *model.Snapshot) error
	// Location describes where the store lives, for messages and logs.
	Location() string
	Close() error
}

// GoalReader is the read side of the goal manager.
type GoalReader interface {
	FindGoal(name string) (model.Goal, bool)
	ListGoals() []model.Goal
	ListGoalsByCategory(category string) []model.Goal
	TotalProgress() float64
	Categories() []string
}

// GoalService defines every goal operation offered to user interfaces.
type GoalService interface {
	GoalReader

	AddGoal(ctx context.Context, name string, targetAmount float64, category string) (model.Goal, error)
	RemoveGoal(ctx context.Context, name string) (bool, error)
	DepositTo(ctx context.Context, name string, amount float64) (model.Goal, error)
	WithdrawFrom(ctx context.Context, name string, amount float64) (model.Goal, error)
	SetStatus(ctx context.Context, name string, status model.GoalStatus) (model.Goal, error)
}
