package postgres_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/robalyx/headline/internal/database/postgres"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// newDB returns a bun.DB that is never connected; it only renders queries.
func newDB(t *testing.T) *bun.DB {
	t.Helper()
	db := bun.NewDB(sql.OpenDB(pgdriver.NewConnector(pgdriver.WithAddr("localhost:0"))), pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestActivityInsert(t *testing.T) {
	t.Parallel()

	db := newDB(t)
	query := postgres.ActivityInsert(db, &types.ActivityLog{
		Sequence:          7,
		StoryID:           "story-1",
		ActorID:           "user-1",
		ActivityType:      enum.ActivityTypeStoryPromoted,
		ActivityTimestamp: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}).String()

	assert.Contains(t, query, `INSERT INTO "activity_logs"`)
	assert.Contains(t, query, `'story-1'`)
	assert.Contains(t, query, "ON CONFLICT (sequence) DO NOTHING")
}

func TestScoreEntryInsert(t *testing.T) {
	t.Parallel()

	db := newDB(t)
	query := postgres.ScoreEntryInsert(db, &types.ScoreEntry{
		UserID:    "user-1",
		Sequence:  3,
		Timestamp: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Delta:     2,
		Action:    enum.ActionKindPromote,
	}).String()

	assert.Contains(t, query, `INSERT INTO "score_entries"`)
	assert.Contains(t, query, `'user-1'`)
	assert.Contains(t, query, "ON CONFLICT (user_id, sequence) DO NOTHING")
}

func TestHookLogsFailures(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	hook := postgres.NewHook(zap.New(core))

	hook.AfterQuery(t.Context(), &bun.QueryEvent{
		Query:     "INSERT INTO activity_logs DEFAULT VALUES",
		StartTime: time.Now(),
		Err:       errors.New("relation does not exist"),
	})
	hook.AfterQuery(t.Context(), &bun.QueryEvent{
		Query:     "SELECT 1",
		StartTime: time.Now(),
		Err:       sql.ErrNoRows,
	})
	hook.AfterQuery(t.Context(), &bun.QueryEvent{
		Query:     "SELECT pg_sleep(1)",
		StartTime: time.Now().Add(-time.Second),
	})

	entries := logs.All()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.Equal(t, "INSERT", entries[0].ContextMap()["operation"])
		assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
		assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	}
}
