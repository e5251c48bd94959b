package telemetry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/robalyx/headline/internal/setup/config"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Manager creates the application loggers and owns the tracing exporter.
// When a log directory is configured each run writes into its own timestamped session directory.
type Manager struct {
	instanceID        string
	level             string
	logDir            string
	maxLogsToKeep     int
	currentSessionDir string
	telemetry         config.Telemetry
	tracing           bool
}

// NewManager creates a new Manager instance.
func NewManager(debugCfg *config.Debug, telemetryCfg *config.Telemetry) *Manager {
	return &Manager{
		instanceID:    uuid.NewString(),
		level:         debugCfg.LogLevel,
		logDir:        debugCfg.LogDir,
		maxLogsToKeep: debugCfg.MaxLogsToKeep,
		telemetry:     *telemetryCfg,
	}
}

// GetInstanceID returns the unique identifier of this program run.
func (m *Manager) GetInstanceID() string {
	return m.instanceID
}

// GetCurrentSessionDir returns the session log directory, or an empty string when logging to stderr.
func (m *Manager) GetCurrentSessionDir() string {
	return m.currentSessionDir
}

// GetLoggers initializes the main and database loggers.
func (m *Manager) GetLoggers() (*zap.Logger, *zap.Logger, error) {
	if m.logDir != "" {
		if err := m.setupLogDirectories(); err != nil {
			return nil, nil, err
		}
	}

	mainLogger, err := m.initLogger("main.log")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize main logger: %w", err)
	}

	dbLogger, err := m.initLogger("database.log")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database logger: %w", err)
	}

	return mainLogger, dbLogger, nil
}

// StartTracing configures the Uptrace exporter. It does nothing when no DSN is configured.
func (m *Manager) StartTracing(version string) bool {
	if m.telemetry.UptraceDSN == "" {
		return false
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(m.telemetry.UptraceDSN),
		uptrace.WithServiceName(m.telemetry.ServiceName),
		uptrace.WithServiceVersion(version),
		uptrace.WithDeploymentEnvironment(m.telemetry.Environment),
	)
	m.tracing = true
	return true
}

// Stop flushes pending spans.
func (m *Manager) Stop(ctx context.Context) error {
	if !m.tracing {
		return nil
	}
	m.tracing = false
	return uptrace.Shutdown(ctx)
}

// initLogger creates a zap logger writing to a session file, or to stderr without a log directory.
func (m *Manager) initLogger(name string) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(m.level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	sink := zapcore.Lock(os.Stderr)
	if m.currentSessionDir != "" {
		path := filepath.Join(m.currentSessionDir, name)
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file %s: %w", path, err)
		}
		sink = zapcore.Lock(file)
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), sink, zapLevel)

	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("instanceID", m.instanceID)),
	), nil
}

// setupLogDirectories creates the base directory, rotates old sessions and creates a new session directory.
func (m *Manager) setupLogDirectories() error {
	if err := os.MkdirAll(m.logDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	if err := m.rotateLogSessions(); err != nil {
		return fmt.Errorf("failed to rotate log sessions: %w", err)
	}

	m.currentSessionDir = filepath.Join(m.logDir, time.Now().Format("2006-01-02_15-04-05")+"_"+m.instanceID[:8])
	if err := os.MkdirAll(m.currentSessionDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	return nil
}

// rotateLogSessions removes the oldest sessions so that, with the new one, at most maxLogsToKeep remain.
func (m *Manager) rotateLogSessions() error {
	if m.maxLogsToKeep <= 0 {
		return nil
	}

	sessions, err := filepath.Glob(filepath.Join(m.logDir, "*"))
	if err != nil {
		return err
	}

	keep := m.maxLogsToKeep - 1
	if len(sessions) <= keep {
		return nil
	}

	// Session names start with their timestamp
	slices.Sort(sessions)
	for _, session := range sessions[:len(sessions)-keep] {
		if err := os.RemoveAll(session); err != nil {
			return err
		}
	}

	return nil
}
