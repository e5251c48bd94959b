package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robalyx/headline/internal/export/types"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// FileName is the database file written to the output directory.
const FileName = "headline.db"

// batchSize is the number of rows inserted per transaction.
const batchSize = 1000

// Exporter handles exporting stories and the leaderboard to a SQLite database.
type Exporter struct {
	outDir string
}

// New creates a new SQLite exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes stories and leaderboard rows to a fresh database file.
func (e *Exporter) Export(stories []*types.StoryRecord, leaderboard []*types.LeaderboardRecord) error {
	path := filepath.Join(e.outDir, FileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing file %s: %w", FileName, err)
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenCreate|sqlite.OpenReadWrite)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	defer conn.Close()

	err = sqlitex.ExecuteScript(conn, `
		CREATE TABLE stories (
			id TEXT PRIMARY KEY,
			author_id TEXT NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			status TEXT NOT NULL,
			promotes INTEGER NOT NULL,
			demotes INTEGER NOT NULL,
			flags INTEGER NOT NULL,
			vote_count INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			published_at TEXT
		);
		CREATE TABLE leaderboard (
			rank INTEGER PRIMARY KEY,
			user_id TEXT NOT NULL,
			score REAL NOT NULL
		);
	`, nil)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	err = insertBatches(conn, stories, `
		INSERT INTO stories (id, author_id, title, url, status, promotes, demotes, flags, vote_count, created_at, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		func(r *types.StoryRecord) []any {
			var publishedAt any
			if !r.PublishedAt.IsZero() {
				publishedAt = r.PublishedAt.UTC().Format(time.RFC3339)
			}
			return []any{
				r.ID, r.AuthorID, r.Title, r.URL, r.Status,
				r.Promotes, r.Demotes, r.Flags, r.VoteCount,
				r.CreatedAt.UTC().Format(time.RFC3339), publishedAt,
			}
		})
	if err != nil {
		return fmt.Errorf("failed to export stories: %w", err)
	}

	err = insertBatches(conn, leaderboard,
		"INSERT INTO leaderboard (rank, user_id, score) VALUES (?, ?, ?)",
		func(r *types.LeaderboardRecord) []any {
			return []any{r.Rank, r.UserID, r.Score}
		})
	if err != nil {
		return fmt.Errorf("failed to export leaderboard: %w", err)
	}

	return nil
}

// insertBatches inserts records in transactions of batchSize rows.
func insertBatches[T any](conn *sqlite.Conn, records []T, query string, args func(T) []any) error {
	for i := 0; i < len(records); i += batchSize {
		end := min(i+batchSize, len(records))

		if err := insertBatch(conn, records[i:end], query, args); err != nil {
			return err
		}
	}
	return nil
}

func insertBatch[T any](conn *sqlite.Conn, batch []T, query string, args func(T) []any) (err error) {
	defer sqlitex.Save(conn)(&err)

	for _, record := range batch {
		if err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{Args: args(record)}); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}
	return nil
}
