// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Goal errors.
var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidStatus     = errors.New("invalid goal status")
	ErrInvalidTarget     = errors.New("target amount must be positive")
	ErrEmptyName         = errors.New("goal name cannot be empty")
)

// Manager errors.
var (
	ErrGoalNotFound    = errors.New("goal not found")
	ErrDuplicateGoal   = errors.New("goal already exists")
	ErrUnknownCategory = errors.New("unknown category")
)

// Storage errors.
var (
	// ErrStorageDecode marks a backing store whose contents cannot be decoded.
	ErrStorageDecode = errors.New("malformed goal store")
	// ErrStorageWrite marks a failure to persist the goal store.
	ErrStorageWrite = errors.New("failed to write goal store")

	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage returns the message to show for err. Known goal errors get a
// short explanation; anything else is returned as-is.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}

	switch {
	case errors.Is(err, ErrInvalidAmount):
		return "Amount must be positive"
	case errors.Is(err, ErrInsufficientFunds):
		return "Not enough funds in the goal balance"
	case errors.Is(err, ErrInvalidStatus):
		return "Status must be one of: active, completed, cancelled"
	case errors.Is(err, ErrUnknownCategory):
		return "Unknown category"
	case errors.Is(err, ErrGoalNotFound):
		return "Goal not found"
	case errors.Is(err, ErrDuplicateGoal):
		return "A goal with this name already exists"
	case errors.Is(err, ErrInvalidTarget):
		return "Target amount must be positive"
	case errors.Is(err, ErrEmptyName):
		return "Goal name cannot be empty"
	case errors.Is(err, ErrStorageWrite):
		return "Could not save goals"
	}
	return err.Error()
}
