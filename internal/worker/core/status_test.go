package core_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/rueidis"
	"github.com/robalyx/headline/internal/clock"
	"github.com/robalyx/headline/internal/worker/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func setupMonitor(t *testing.T) (*core.Monitor, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return core.NewMonitor(client, clock.NewMock(epoch), zap.NewNop()), mr
}

func TestReportStatus(t *testing.T) {
	t.Parallel()

	monitor, mr := setupMonitor(t)

	reporter := core.NewStatusReporter(monitor, "publish", zap.NewNop())
	reporter.UpdateStatus("Publishing stories", 40)
	reporter.RecordRun(2)
	reporter.RecordRun(1)
	reporter.Report(t.Context())

	key := core.KeyPrefix + "publish:" + reporter.GetWorkerID()
	assert.True(t, mr.Exists(key))
	assert.Equal(t, core.HeartbeatTTL, mr.TTL(key))

	statuses, err := monitor.GetAllStatuses(t.Context())
	require.NoError(t, err)
	require.Len(t, statuses, 1)

	status := statuses[0]
	assert.Equal(t, reporter.GetWorkerID(), status.WorkerID)
	assert.Equal(t, "Publishing stories", status.CurrentTask)
	assert.Equal(t, 40, status.Progress)
	assert.Equal(t, 2, status.Runs)
	assert.Equal(t, 3, status.Published)
	assert.True(t, status.IsHealthy)
	assert.True(t, status.LastSeen.Equal(epoch))
}

func TestGetAllStatusesSkipsMalformed(t *testing.T) {
	t.Parallel()

	monitor, mr := setupMonitor(t)
	require.NoError(t, mr.Set(core.KeyPrefix+"publish:broken", "{not json"))

	core.NewStatusReporter(monitor, "publish", zap.NewNop()).Report(t.Context())

	statuses, err := monitor.GetAllStatuses(t.Context())
	require.NoError(t, err)
	assert.Len(t, statuses, 1)
}

func TestReporterWithoutMonitor(t *testing.T) {
	t.Parallel()

	reporter := core.NewStatusReporter(nil, "publish", zap.NewNop())
	reporter.Start(t.Context())
	reporter.SetHealthy(false)
	reporter.Report(t.Context())
	reporter.Stop()
	reporter.Stop()

	assert.False(t, reporter.Status().IsHealthy)
}

func TestIsStale(t *testing.T) {
	t.Parallel()

	status := core.Status{LastSeen: epoch}
	assert.False(t, status.IsStale(epoch.Add(core.StaleThreshold)))
	assert.True(t, status.IsStale(epoch.Add(core.StaleThreshold+time.Second)))
}
