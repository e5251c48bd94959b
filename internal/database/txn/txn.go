// Package txn provides the unit of work that makes multi-step engine operations atomic.
//
// Models register a compensation for every in-memory mutation on the journal carried by
// the context. When the unit of work fails, the journal replays those compensations in
// reverse order so no partial change survives.
package txn

import (
	"context"
	"fmt"
	"sync"
)

// UnitOfWork runs a function as one atomic operation.
type UnitOfWork interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type journalKey struct{}

// Journal collects undo steps for mutations made inside a unit of work.
type Journal struct {
	mu   sync.Mutex
	undo []func()
	done bool
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// OnRollback registers a compensation to run if the unit of work fails.
func (j *Journal) OnRollback(fn func()) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.done {
		return
	}
	j.undo = append(j.undo, fn)
}

// Rollback runs the registered compensations in reverse order.
func (j *Journal) Rollback() {
	j.mu.Lock()
	undo := j.undo
	j.undo = nil
	j.done = true
	j.mu.Unlock()

	for i := len(undo) - 1; i >= 0; i-- {
		undo[i]()
	}
}

// Commit discards the registered compensations.
func (j *Journal) Commit() {
	j.mu.Lock()
	j.undo = nil
	j.done = true
	j.mu.Unlock()
}

// Len returns the number of pending compensations.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.undo)
}

// WithJournal returns a context carrying the journal.
func WithJournal(ctx context.Context, j *Journal) context.Context {
	return context.WithValue(ctx, journalKey{}, j)
}

// FromContext returns the journal carried by the context, if any.
func FromContext(ctx context.Context) (*Journal, bool) {
	j, ok := ctx.Value(journalKey{}).(*Journal)
	return j, ok
}

// Record registers a compensation on the context's journal.
// Outside a unit of work the mutation is already final and nothing is recorded.
func Record(ctx context.Context, undo func()) {
	if j, ok := FromContext(ctx); ok {
		j.OnRollback(undo)
	}
}

// Memory is the in-memory unit of work.
type Memory struct{}

// NewMemory creates an in-memory unit of work.
func NewMemory() *Memory {
	return &Memory{}
}

// RunInTx runs fn with a fresh journal and rolls it back if fn fails or panics.
// Calls nested inside an existing unit of work join it.
func (m *Memory) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := FromContext(ctx); ok {
		return fn(ctx)
	}

	j := NewJournal()
	defer func() {
		if r := recover(); r != nil {
			j.Rollback()
			err = fmt.Errorf("unit of work panicked: %v", r)
		}
	}()

	if err := fn(WithJournal(ctx, j)); err != nil {
		j.Rollback()
		return err
	}

	j.Commit()
	return nil
}
