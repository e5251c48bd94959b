package models

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/robalyx/headline/internal/clock"
	"github.com/robalyx/headline/internal/database/txn"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/internal/database/types/enum"
	"go.uber.org/zap"
)

// LedgerModel stores the append-only score entries of every user.
type LedgerModel struct {
	mu      sync.RWMutex
	ledgers map[string]*userLedger
	archive Archive
	clock   clock.Clock
	logger  *zap.Logger
}

// userLedger holds one user's entries ordered by (timestamp, sequence).
type userLedger struct {
	mu      sync.RWMutex
	seq     uint64
	entries []*types.ScoreEntry
}

// NewLedger creates a ledger that mirrors entries to the given archive.
func NewLedger(archive Archive, clk clock.Clock, logger *zap.Logger) *LedgerModel {
	return &LedgerModel{
		ledgers: make(map[string]*userLedger),
		archive: archive,
		clock:   clk,
		logger:  logger.Named("db_ledger"),
	}
}

// Record appends an entry for the user. Appends for one user are serialized;
// appends for different users never contend.
func (m *LedgerModel) Record(
	ctx context.Context, userID string, delta float64, action enum.ActionKind, storyID string, timestamp time.Time,
) (*types.ScoreEntry, error) {
	if delta == 0 {
		return nil, types.ErrInvalidScoreDelta
	}
	if timestamp.After(m.clock.Now()) {
		return nil, fmt.Errorf("%w: entry at %s", types.ErrFutureTimestamp, timestamp.Format(time.RFC3339))
	}

	l := m.ledgerFor(userID)

	l.mu.Lock()
	l.seq++
	entry := &types.ScoreEntry{
		UserID:    userID,
		Sequence:  l.seq,
		Timestamp: timestamp,
		Delta:     delta,
		Action:    action,
		StoryID:   storyID,
	}
	i := sort.Search(len(l.entries), func(i int) bool {
		return l.entries[i].Timestamp.After(timestamp)
	})
	l.entries = slices.Insert(l.entries, i, entry)
	l.mu.Unlock()

	txn.Record(ctx, func() { l.remove(entry.Sequence) })

	if err := m.archive.SaveScoreEntry(ctx, entry); err != nil {
		l.remove(entry.Sequence)
		return nil, fmt.Errorf("failed to archive score entry: %w", err)
	}

	m.logger.Debug("Recorded score entry",
		zap.String("userID", userID),
		zap.Uint64("sequence", entry.Sequence),
		zap.Float64("delta", delta),
		zap.String("action", action.String()))

	return entry, nil
}

// Sum adds up the user's entries with start <= timestamp <= end.
func (m *LedgerModel) Sum(userID string, start, end time.Time) float64 {
	l, ok := m.lookup(userID)
	if !ok || start.After(end) {
		return 0
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	lo := sort.Search(len(l.entries), func(i int) bool {
		return !l.entries[i].Timestamp.Before(start)
	})
	hi := sort.Search(len(l.entries), func(i int) bool {
		return l.entries[i].Timestamp.After(end)
	})

	var total float64
	for _, e := range l.entries[lo:hi] {
		total += e.Delta
	}
	return total
}

// Entries returns a copy of the user's entries in ledger order.
func (m *LedgerModel) Entries(userID string) []*types.ScoreEntry {
	l, ok := m.lookup(userID)
	if !ok {
		return nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]*types.ScoreEntry, len(l.entries))
	for i, e := range l.entries {
		c := *e
		result[i] = &c
	}
	return result
}

// UserIDs returns every user with at least one entry.
func (m *LedgerModel) UserIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.ledgers))
	for id, l := range m.ledgers {
		l.mu.RLock()
		n := len(l.entries)
		l.mu.RUnlock()
		if n > 0 {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (m *LedgerModel) lookup(userID string) (*userLedger, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.ledgers[userID]
	return l, ok
}

func (m *LedgerModel) ledgerFor(userID string) *userLedger {
	if l, ok := m.lookup(userID); ok {
		return l
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.ledgers[userID]; ok {
		return l
	}
	l := &userLedger{}
	m.ledgers[userID] = l
	return l
}

// remove drops an uncommitted entry. Sequence numbers are not reused.
func (l *userLedger) remove(sequence uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = slices.DeleteFunc(l.entries, func(e *types.ScoreEntry) bool {
		return e.Sequence == sequence
	})
}
