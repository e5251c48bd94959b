package dbretry_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/robalyx/headline/internal/database/dbretry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRefused = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

func fastPolicy() dbretry.Policy {
	return dbretry.Policy{
		MaxElapsedTime:  time.Second,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		MaxRetries:      3,
	}
}

func TestIsRetryableError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "connection refused", err: errRefused, want: true},
		{name: "wrapped reset", err: fmt.Errorf("insert: %w", errors.New("read: connection reset by peer")), want: true},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "constraint", err: errors.New("duplicate key value violates unique constraint"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, dbretry.IsRetryableError(tt.err))
		})
	}
}

func TestOperation(t *testing.T) {
	t.Parallel()

	t.Run("recovers from transient failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		got, err := dbretry.Operation(t.Context(), fastPolicy(), func(context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, errRefused
			}
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on permanent failure", func(t *testing.T) {
		t.Parallel()

		errConstraint := errors.New("violates check constraint")
		calls := 0
		err := dbretry.NoResult(t.Context(), fastPolicy(), func(context.Context) error {
			calls++
			return errConstraint
		})
		require.ErrorIs(t, err, errConstraint)
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := dbretry.NoResult(t.Context(), fastPolicy(), func(context.Context) error {
			calls++
			return errRefused
		})
		require.ErrorIs(t, err, errRefused)
		assert.Equal(t, 4, calls)
	})
}
