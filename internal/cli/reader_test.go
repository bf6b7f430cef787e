package cli

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonBlockingReader_ReadLine(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedValue string
	}{
		{name: "successful read", input: "Trip\n", expectedValue: "Trip"},
		{name: "surrounding whitespace", input: "  Trip  \n", expectedValue: "Trip"},
		{name: "empty line", input: "\n", expectedValue: ""},
		{name: "last line without newline", input: "9", expectedValue: "9"},
		{name: "cyrillic", input: "Путешествия\r\n", expectedValue: "Путешествия"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nbr := NewNonBlockingReader(strings.NewReader(tt.input))

			result, err := nbr.ReadLine(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expectedValue, result)
		})
	}
}

func TestNonBlockingReader_EOF(t *testing.T) {
	nbr := NewNonBlockingReader(strings.NewReader("1\n"))
	ctx := context.Background()

	line, err := nbr.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", line)

	_, err = nbr.ReadLine(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestNonBlockingReader_ContextCancellation(t *testing.T) {
	t.Run("already canceled", func(t *testing.T) {
		nbr := NewNonBlockingReader(strings.NewReader("ignored\n"))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := nbr.ReadLine(ctx)
		assert.ErrorIs(t, err, ErrInputCancelled)
	})

	t.Run("canceled while blocked", func(t *testing.T) {
		pr, pw := io.Pipe()
		defer func() { _ = pr.Close() }()
		defer func() { _ = pw.Close() }()

		nbr := NewNonBlockingReader(pr)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := nbr.ReadLine(ctx)
		assert.ErrorIs(t, err, ErrInputCancelled)
	})
}

func TestNonBlockingReader_MultipleReads(t *testing.T) {
	nbr := NewNonBlockingReader(strings.NewReader("1\nTrip\n500\n"))
	ctx := context.Background()

	for _, want := range []string{"1", "Trip", "500"} {
		got, err := nbr.ReadLine(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestNewNonBlockingReader_NilPanics(t *testing.T) {
	assert.Panics(t, func() { NewNonBlockingReader(nil) })
}
