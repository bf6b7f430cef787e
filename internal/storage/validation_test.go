package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/piggy/internal/model"
)

func TestValidateContext(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		ctx     context.Context
		wantErr error
		name    string
	}{
		{name: "valid context", ctx: context.Background()},
		{name: "nil context", ctx: nil, wantErr: ErrNilContext},
		{name: "canceled context", ctx: canceled, wantErr: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx) //nolint:staticcheck // nil context is under test
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		str     string
		wantErr bool
	}{
		{name: "valid string", str: "goals.json"},
		{name: "empty string", str: "", wantErr: true},
		{name: "whitespace only", str: " \t\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, "path")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmptyString)
				assert.Contains(t, err.Error(), "path")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateSnapshot(t *testing.T) {
	assert.ErrorIs(t, validateSnapshot(nil), ErrNilParameter)
	assert.NoError(t, validateSnapshot(&model.Snapshot{}))
	assert.NoError(t, validateSnapshot(createTestSnapshot(t)))

	// The zero Goal has no name and is never produced by NewGoal.
	err := validateSnapshot(&model.Snapshot{Goals: []model.Goal{{}}})
	assert.ErrorIs(t, err, ErrEmptyString)
	assert.Contains(t, err.Error(), "index 0")
}
