package postgres

import (
	"context"
	"fmt"

	"github.com/robalyx/headline/internal/database/dbretry"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

type txKey struct{}

// withTx returns a context carrying the open transaction.
func withTx(ctx context.Context, tx bun.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// txFromContext returns the transaction opened by UnitOfWork, if any.
func txFromContext(ctx context.Context) (bun.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(bun.Tx)
	return tx, ok
}

// Archive writes activity logs and score entries to PostgreSQL.
// Inside a UnitOfWork writes join its transaction; otherwise each write is retried on its own.
type Archive struct {
	db     bun.IDB
	policy dbretry.Policy
	logger *zap.Logger
}

// NewArchive creates an archive on the given database.
func NewArchive(db bun.IDB, policy dbretry.Policy, logger *zap.Logger) *Archive {
	return &Archive{
		db:     db,
		policy: policy,
		logger: logger.Named("db_archive"),
	}
}

// SaveActivity inserts an activity log.
func (a *Archive) SaveActivity(ctx context.Context, log *types.ActivityLog) error {
	err := a.exec(ctx, func(ctx context.Context, db bun.IDB) error {
		_, err := ActivityInsert(db, log).Exec(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to archive activity %d: %w", log.Sequence, err)
	}
	return nil
}

// SaveScoreEntry inserts a score entry.
func (a *Archive) SaveScoreEntry(ctx context.Context, entry *types.ScoreEntry) error {
	err := a.exec(ctx, func(ctx context.Context, db bun.IDB) error {
		_, err := ScoreEntryInsert(db, entry).Exec(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to archive score entry %s/%d: %w", entry.UserID, entry.Sequence, err)
	}
	return nil
}

// exec runs fn on the context's transaction, or on the database with retries.
// A failed statement aborts the surrounding transaction, so it is never retried in place.
func (a *Archive) exec(ctx context.Context, fn func(context.Context, bun.IDB) error) error {
	if tx, ok := txFromContext(ctx); ok {
		return fn(ctx, tx)
	}
	return dbretry.NoResult(ctx, a.policy, func(ctx context.Context) error {
		return fn(ctx, a.db)
	})
}

// ActivityInsert builds the insert statement for an activity log.
func ActivityInsert(db bun.IDB, log *types.ActivityLog) *bun.InsertQuery {
	return db.NewInsert().Model(log).On("CONFLICT (sequence) DO NOTHING")
}

// ScoreEntryInsert builds the insert statement for a score entry.
func ScoreEntryInsert(db bun.IDB, entry *types.ScoreEntry) *bun.InsertQuery {
	return db.NewInsert().Model(entry).On("CONFLICT (user_id, sequence) DO NOTHING")
}
