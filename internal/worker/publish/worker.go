// Package publish runs the front-page publication pass on a schedule.
package publish

import (
	"context"
	"time"

	"github.com/robalyx/headline/internal/database"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/internal/worker/core"
	"go.uber.org/zap"
)

// WorkerType identifies publish workers in status reports.
const WorkerType = "publish"

// Worker publishes every publishable story each time it ticks.
type Worker struct {
	db       database.Client
	admin    *types.User
	reporter *core.StatusReporter
	logger   *zap.Logger
}

// New creates a publish worker acting as admin. The monitor may be nil.
func New(db database.Client, admin *types.User, monitor *core.Monitor, logger *zap.Logger) *Worker {
	logger = logger.Named("publish_worker")
	return &Worker{
		db:       db,
		admin:    admin,
		reporter: core.NewStatusReporter(monitor, WorkerType, logger),
		logger:   logger,
	}
}

// Run publishes on every tick until ticks is closed or ctx is done.
// Failed passes are logged and retried on the next tick.
func (w *Worker) Run(ctx context.Context, ticks <-chan time.Time) error {
	w.logger.Info("Publish worker started", zap.String("workerID", w.reporter.GetWorkerID()))
	w.reporter.Start(ctx)
	defer w.reporter.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			_, _ = w.Tick(ctx)
		}
	}
}

// Tick runs one publication pass and returns the number of stories published.
func (w *Worker) Tick(ctx context.Context) (int, error) {
	w.reporter.UpdateStatus("Publishing stories", 0)

	published, err := w.db.Service().Moderation().Publish(ctx, w.admin)
	if err != nil {
		w.logger.Error("Publish pass failed", zap.Error(err))
		w.reporter.SetHealthy(false)
		w.reporter.UpdateStatus("Publish failed", 100)
		w.reporter.Report(ctx)
		return 0, err
	}

	w.reporter.SetHealthy(true)
	w.reporter.RecordRun(published)
	w.reporter.UpdateStatus("Idle", 100)
	w.reporter.Report(ctx)

	if published > 0 {
		w.logger.Info("Published stories", zap.Int("count", published))
	}
	return published, nil
}

// Status returns the worker's current status.
func (w *Worker) Status() core.Status {
	return w.reporter.Status()
}
