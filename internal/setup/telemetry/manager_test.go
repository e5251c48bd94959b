package telemetry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/robalyx/headline/internal/setup/config"
	"github.com/robalyx/headline/internal/setup/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoggersWritesSessionFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, old := range []string{"2024-01-01_00-00-00_aaaaaaaa", "2024-01-02_00-00-00_bbbbbbbb", "2024-01-03_00-00-00_cccccccc"} {
		require.NoError(t, os.Mkdir(filepath.Join(dir, old), 0o755))
	}

	m := telemetry.NewManager(&config.Debug{LogLevel: "info", LogDir: dir, MaxLogsToKeep: 3}, &config.Telemetry{})
	logger, dbLogger, err := m.GetLoggers()
	require.NoError(t, err)

	logger.Info("Started")
	dbLogger.Info("Connected")
	require.NoError(t, logger.Sync())
	require.NoError(t, dbLogger.Sync())

	session := m.GetCurrentSessionDir()
	content, err := os.ReadFile(filepath.Join(session, "main.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Started")
	assert.Contains(t, string(content), m.GetInstanceID())
	assert.FileExists(t, filepath.Join(session, "database.log"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.NoDirExists(t, filepath.Join(dir, "2024-01-01_00-00-00_aaaaaaaa"))
}

func TestGetLoggersRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	m := telemetry.NewManager(&config.Debug{LogLevel: "loud"}, &config.Telemetry{})
	_, _, err := m.GetLoggers()
	require.Error(t, err)
}

func TestTracingDisabledWithoutDSN(t *testing.T) {
	t.Parallel()

	m := telemetry.NewManager(&config.Debug{LogLevel: "info"}, &config.Telemetry{})
	assert.False(t, m.StartTracing("test"))
	require.NoError(t, m.Stop(t.Context()))
}
