package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/robalyx/headline/internal/export/types"
)

// File names written to the output directory.
const (
	StoriesFile     = "stories.csv"
	LeaderboardFile = "leaderboard.csv"
)

// Exporter handles exporting stories and the leaderboard to csv files.
type Exporter struct {
	outDir string
}

// New creates a new csv exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes stories and leaderboard rows to separate csv files.
func (e *Exporter) Export(stories []*types.StoryRecord, leaderboard []*types.LeaderboardRecord) error {
	storyRows := make([][]string, len(stories))
	for i, r := range stories {
		var publishedAt string
		if !r.PublishedAt.IsZero() {
			publishedAt = r.PublishedAt.UTC().Format(time.RFC3339)
		}
		storyRows[i] = []string{
			r.ID, r.AuthorID, r.Title, r.URL, r.Status,
			strconv.Itoa(r.Promotes), strconv.Itoa(r.Demotes), strconv.Itoa(r.Flags), strconv.Itoa(r.VoteCount),
			r.CreatedAt.UTC().Format(time.RFC3339), publishedAt,
		}
	}

	if err := e.writeFile(StoriesFile, []string{
		"id", "author_id", "title", "url", "status",
		"promotes", "demotes", "flags", "vote_count", "created_at", "published_at",
	}, storyRows); err != nil {
		return fmt.Errorf("failed to export stories: %w", err)
	}

	leaderboardRows := make([][]string, len(leaderboard))
	for i, r := range leaderboard {
		leaderboardRows[i] = []string{strconv.Itoa(r.Rank), r.UserID, fmt.Sprintf("%.2f", r.Score)}
	}

	if err := e.writeFile(LeaderboardFile, []string{"rank", "user_id", "score"}, leaderboardRows); err != nil {
		return fmt.Errorf("failed to export leaderboard: %w", err)
	}

	return nil
}

// writeFile replaces filename with the header and rows.
func (e *Exporter) writeFile(filename string, header []string, rows [][]string) error {
	file, err := os.Create(filepath.Join(e.outDir, filename))
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}

	return file.Sync()
}
