package postgres

import (
	"context"
	"fmt"

	"github.com/robalyx/headline/internal/database/txn"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// UnitOfWork commits the archive transaction and the in-memory journal together.
// The memory journal is rolled back whenever the database transaction does not commit.
type UnitOfWork struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewUnitOfWork creates a unit of work on the given database.
func NewUnitOfWork(db *bun.DB, logger *zap.Logger) *UnitOfWork {
	return &UnitOfWork{
		db:     db,
		logger: logger.Named("db_uow"),
	}
}

// RunInTx runs fn inside a database transaction. Nested calls join the outer transaction.
func (u *UnitOfWork) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	j := txn.NewJournal()
	defer func() {
		if r := recover(); r != nil {
			j.Rollback()
			err = fmt.Errorf("unit of work panicked: %v", r)
		}
	}()

	err = u.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(txn.WithJournal(withTx(ctx, tx), j))
	})
	if err != nil {
		pending := j.Len()
		j.Rollback()
		u.logger.Debug("Rolled back unit of work",
			zap.Int("compensations", pending),
			zap.Error(err))
		return err
	}

	j.Commit()
	return nil
}
