package models_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/robalyx/headline/internal/clock"
	"github.com/robalyx/headline/internal/database/models"
	"github.com/robalyx/headline/internal/database/txn"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type failingArchive struct {
	models.NopArchive
}

var errArchiveDown = errors.New("archive down")

func (failingArchive) SaveScoreEntry(context.Context, *types.ScoreEntry) error { return errArchiveDown }
func (failingArchive) SaveActivity(context.Context, *types.ActivityLog) error  { return errArchiveDown }

func newLedger(t *testing.T) (*models.LedgerModel, *clock.Mock) {
	t.Helper()
	clk := clock.NewMock(epoch.Add(24 * time.Hour))
	return models.NewLedger(models.NopArchive{}, clk, zap.NewNop()), clk
}

func TestLedgerRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		delta   float64
		offset  time.Duration
		wantErr error
	}{
		{name: "positive delta", delta: 5, offset: 0},
		{name: "negative delta", delta: -1.5, offset: -time.Hour},
		{name: "zero delta", delta: 0, wantErr: types.ErrInvalidScoreDelta},
		{name: "future timestamp", delta: 1, offset: time.Minute, wantErr: types.ErrFutureTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ledger, clk := newLedger(t)
			entry, err := ledger.Record(t.Context(), "alice", tt.delta, enum.ActionKindPost, "s1", clk.Now().Add(tt.offset))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, ledger.Entries("alice"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint64(1), entry.Sequence)
			assert.InDelta(t, tt.delta, entry.Delta, 1e-9)
		})
	}
}

func TestLedgerOrdering(t *testing.T) {
	t.Parallel()

	ledger, _ := newLedger(t)
	ctx := t.Context()

	_, err := ledger.Record(ctx, "alice", 1, enum.ActionKindPost, "", epoch.Add(2*time.Hour))
	require.NoError(t, err)
	_, err = ledger.Record(ctx, "alice", 2, enum.ActionKindPromote, "", epoch)
	require.NoError(t, err)
	_, err = ledger.Record(ctx, "alice", 3, enum.ActionKindPromote, "", epoch)
	require.NoError(t, err)

	entries := ledger.Entries("alice")
	require.Len(t, entries, 3)
	assert.Equal(t, []uint64{2, 3, 1}, []uint64{entries[0].Sequence, entries[1].Sequence, entries[2].Sequence})
}

func TestLedgerSum(t *testing.T) {
	t.Parallel()

	ledger, _ := newLedger(t)
	ctx := t.Context()

	for i, delta := range []float64{5, 2, 2, -1} {
		_, err := ledger.Record(ctx, "alice", delta, enum.ActionKindPromote, "", epoch.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}

	assert.InDelta(t, 8.0, ledger.Sum("alice", epoch, epoch.Add(3*time.Hour)), 1e-9)
	assert.InDelta(t, 4.0, ledger.Sum("alice", epoch.Add(time.Hour), epoch.Add(2*time.Hour)), 1e-9, "bounds are inclusive")
	assert.InDelta(t, 0.0, ledger.Sum("alice", epoch.Add(3*time.Hour), epoch), 1e-9, "inverted window")
	assert.InDelta(t, 0.0, ledger.Sum("bob", epoch, epoch.Add(time.Hour)), 1e-9)

	split := epoch.Add(90 * time.Minute)
	whole := ledger.Sum("alice", epoch, epoch.Add(3*time.Hour))
	assert.InDelta(t, whole, ledger.Sum("alice", epoch, split)+ledger.Sum("alice", split, epoch.Add(3*time.Hour)), 1e-9)
}

func TestLedgerRollback(t *testing.T) {
	t.Parallel()

	ledger, clk := newLedger(t)
	errAbort := errors.New("abort")

	err := txn.NewMemory().RunInTx(t.Context(), func(ctx context.Context) error {
		_, err := ledger.Record(ctx, "alice", 5, enum.ActionKindPost, "s1", clk.Now())
		require.NoError(t, err)
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)
	assert.Empty(t, ledger.Entries("alice"))
	assert.Empty(t, ledger.UserIDs())
}

func TestLedgerArchiveFailure(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock(epoch)
	ledger := models.NewLedger(failingArchive{}, clk, zap.NewNop())

	_, err := ledger.Record(t.Context(), "alice", 5, enum.ActionKindPost, "", epoch)
	require.ErrorIs(t, err, errArchiveDown)
	assert.Empty(t, ledger.Entries("alice"))
}

func TestLedgerConcurrentAppends(t *testing.T) {
	t.Parallel()

	ledger, clk := newLedger(t)
	users := []string{"alice", "bob", "carol"}

	var wg sync.WaitGroup
	for _, user := range users {
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := ledger.Record(t.Context(), user, 1, enum.ActionKindComment, "", clk.Now())
				assert.NoError(t, err)
			}()
		}
	}
	wg.Wait()

	for _, user := range users {
		entries := ledger.Entries(user)
		require.Len(t, entries, 50)
		seen := make(map[uint64]bool)
		for _, e := range entries {
			seen[e.Sequence] = true
		}
		assert.Len(t, seen, 50)
	}
	assert.Equal(t, users, ledger.UserIDs())
}
