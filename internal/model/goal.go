package model

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/Veraticus/piggy/internal/common"
)

// GoalStatus is the lifecycle state of a goal. The values are the labels
// written to the goal store.
type GoalStatus string

const (
	// StatusActive is a goal still being saved for.
	StatusActive GoalStatus = "активна"
	// StatusCompleted is a goal whose target was reached or that was marked done.
	StatusCompleted GoalStatus = "выполнена"
	// StatusCancelled is a goal the user gave up on.
	StatusCancelled GoalStatus = "отменена"
)

// Statuses lists every valid status in display order.
var Statuses = []GoalStatus{StatusActive, StatusCompleted, StatusCancelled}

// Valid reports whether s is one of the known statuses.
func (s GoalStatus) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// English returns the English name of the status.
func (s GoalStatus) English() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	}
	return string(s)
}

// ParseStatus accepts either the stored label or the English name.
func ParseStatus(s string) (GoalStatus, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, status := range Statuses {
		if v == string(status) || v == status.English() {
			return status, nil
		}
	}
	if v == "canceled" {
		return StatusCancelled, nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrInvalidStatus, s)
}

// Goal is a single savings target. The zero value is not usable; create goals
// with NewGoal or GoalFromRecord.
type Goal struct {
	startDate      civil.Date
	completionDate *civil.Date
	name           string
	category       string
	status         GoalStatus
	targetAmount   float64
	balance        float64
}

// NewGoal creates an active goal with a zero balance. An invalid start date
// defaults to today.
func NewGoal(name string, targetAmount float64, category string, start civil.Date) (Goal, error) {
	if strings.TrimSpace(name) == "" {
		return Goal{}, common.ErrEmptyName
	}
	if !(targetAmount > 0) {
		return Goal{}, fmt.Errorf("%w: %v", common.ErrInvalidTarget, targetAmount)
	}
	if !start.IsValid() {
		start = civil.DateOf(time.Now())
	}

	return Goal{
		name:         name,
		targetAmount: targetAmount,
		category:     category,
		status:       StatusActive,
		startDate:    start,
	}, nil
}

// Name returns the goal name.
func (g Goal) Name() string { return g.name }

// TargetAmount returns the amount being saved for.
func (g Goal) TargetAmount() float64 { return g.targetAmount }

// Balance returns the amount saved so far.
func (g Goal) Balance() float64 { return g.balance }

// Category returns the goal category.
func (g Goal) Category() string { return g.category }

// Status returns the goal status.
func (g Goal) Status() GoalStatus { return g.status }

// StartDate returns the day the goal was created.
func (g Goal) StartDate() civil.Date { return g.startDate }

// CompletionDate returns the day a deposit reached the target, if any.
func (g Goal) CompletionDate() (civil.Date, bool) {
	if g.completionDate == nil {
		return civil.Date{}, false
	}
	return *g.completionDate, true
}

// Remaining returns how much is still missing to reach the target.
func (g Goal) Remaining() float64 {
	return g.targetAmount - g.balance
}

// AddFunds deposits amount. A deposit that reaches the target clamps the
// balance to the target and completes the goal on today; the excess is dropped.
func (g *Goal) AddFunds(amount float64, today civil.Date) error {
	if !(amount > 0) {
		return fmt.Errorf("%w: %v", common.ErrInvalidAmount, amount)
	}

	newBalance := g.balance + amount
	if newBalance >= g.targetAmount {
		g.balance = g.targetAmount
		g.status = StatusCompleted
		completed := today
		g.completionDate = &completed
		return nil
	}

	g.balance = newBalance
	return nil
}

// WithdrawFunds takes amount out of the balance. Status and completion date
// are left alone even when the balance drops below the target.
func (g *Goal) WithdrawFunds(amount float64) error {
	if !(amount > 0) {
		return fmt.Errorf("%w: %v", common.ErrInvalidAmount, amount)
	}
	if amount > g.balance {
		return fmt.Errorf("%w: requested %.2f, available %.2f", common.ErrInsufficientFunds, amount, g.balance)
	}

	g.balance -= amount
	return nil
}

// Progress returns the balance as a percentage of the target. A goal without
// a positive target reports 0.
func (g Goal) Progress() float64 {
	if g.targetAmount <= 0 {
		return 0
	}
	return g.balance / g.targetAmount * 100
}

// ChangeStatus sets the status without touching balance or dates.
func (g *Goal) ChangeStatus(status GoalStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", common.ErrInvalidStatus, status)
	}
	g.status = status
	return nil
}

// GoalRecord is the flat, serializable form of a Goal.
type GoalRecord struct {
	CompletionDate *civil.Date `json:"completion_date"`
	Name           string      `json:"name"`
	Category       string      `json:"category"`
	Status         GoalStatus  `json:"status"`
	StartDate      civil.Date  `json:"start_date"`
	TargetAmount   float64     `json:"target_amount"`
	CurrentBalance float64     `json:"current_balance"`
}

// Record returns the serializable form of the goal.
func (g Goal) Record() GoalRecord {
	rec := GoalRecord{
		Name:           g.name,
		TargetAmount:   g.targetAmount,
		CurrentBalance: g.balance,
		Category:       g.category,
		Status:         g.status,
		StartDate:      g.startDate,
	}
	if g.completionDate != nil {
		completed := *g.completionDate
		rec.CompletionDate = &completed
	}
	return rec
}

// GoalFromRecord rebuilds a goal from its serialized form. Records that
// break the goal invariants are rejected with common.ErrStorageDecode.
func GoalFromRecord(rec GoalRecord) (Goal, error) {
	if strings.TrimSpace(rec.Name) == "" {
		return Goal{}, fmt.Errorf("%w: goal without a name", common.ErrStorageDecode)
	}
	if !rec.Status.Valid() {
		return Goal{}, fmt.Errorf("%w: goal %q has status %q", common.ErrStorageDecode, rec.Name, rec.Status)
	}
	if !rec.StartDate.IsValid() {
		return Goal{}, fmt.Errorf("%w: goal %q has no start date", common.ErrStorageDecode, rec.Name)
	}
	if rec.CurrentBalance < 0 || rec.CurrentBalance > rec.TargetAmount {
		return Goal{}, fmt.Errorf("%w: goal %q balance %v outside [0, %v]",
			common.ErrStorageDecode, rec.Name, rec.CurrentBalance, rec.TargetAmount)
	}

	g := Goal{
		name:         rec.Name,
		targetAmount: rec.TargetAmount,
		balance:      rec.CurrentBalance,
		category:     rec.Category,
		status:       rec.Status,
		startDate:    rec.StartDate,
	}
	if rec.CompletionDate != nil {
		if !rec.CompletionDate.IsValid() {
			return Goal{}, fmt.Errorf("%w: goal %q has an invalid completion date", common.ErrStorageDecode, rec.Name)
		}
		completed := *rec.CompletionDate
		g.completionDate = &completed
	}
	return g, nil
}
