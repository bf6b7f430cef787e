// Package storage provides the persistence layer for the goal collection.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/piggy/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrUnknownStore = errors.New("unknown storage backend")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return ctx.Err()
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSnapshot checks a snapshot before it is written.
func validateSnapshot(snapshot *model.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: snapshot", ErrNilParameter)
	}
	for i, goal := range snapshot.Goals {
		if err := validateString(goal.Name(), "goal name"); err != nil {
			return fmt.Errorf("goal at index %d: %w", i, err)
		}
	}
	return nil
}
