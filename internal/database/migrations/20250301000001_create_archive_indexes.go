package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			CREATE INDEX IF NOT EXISTS idx_activity_logs_time
			ON activity_logs (activity_timestamp DESC, sequence DESC);

			CREATE INDEX IF NOT EXISTS idx_activity_logs_story_time
			ON activity_logs (story_id, activity_timestamp DESC, sequence DESC)
			WHERE story_id IS NOT NULL;

			CREATE INDEX IF NOT EXISTS idx_activity_logs_actor_time
			ON activity_logs (actor_id, activity_timestamp DESC, sequence DESC);

			CREATE INDEX IF NOT EXISTS idx_activity_logs_type_time
			ON activity_logs (activity_type, activity_timestamp DESC, sequence DESC);

			CREATE INDEX IF NOT EXISTS idx_score_entries_user_time
			ON score_entries (user_id, timestamp, sequence);

			CREATE INDEX IF NOT EXISTS idx_score_entries_time
			ON score_entries (timestamp);
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create archive indexes: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			DROP INDEX IF EXISTS idx_activity_logs_time;
			DROP INDEX IF EXISTS idx_activity_logs_story_time;
			DROP INDEX IF EXISTS idx_activity_logs_actor_time;
			DROP INDEX IF EXISTS idx_activity_logs_type_time;
			DROP INDEX IF EXISTS idx_score_entries_user_time;
			DROP INDEX IF EXISTS idx_score_entries_time;
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop archive indexes: %w", err)
		}

		return nil
	})
}
