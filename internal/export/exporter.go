// Package export writes snapshots of stories and the leaderboard to portable files.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/robalyx/headline/internal/clock"
	"github.com/robalyx/headline/internal/database"
	dbTypes "github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/internal/database/types/enum"
	"github.com/robalyx/headline/internal/export/chart"
	"github.com/robalyx/headline/internal/export/csv"
	"github.com/robalyx/headline/internal/export/sqlite"
	"github.com/robalyx/headline/internal/export/types"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format represents a supported export format.
type Format string

const (
	FormatSQLite Format = "sqlite"
	FormatCSV    Format = "csv"
	FormatChart  Format = "chart"
)

// EngineVersion is bumped on breaking changes to the export layout.
const EngineVersion = "1.0.0"

// MetadataFile describes the export and is written next to the data files.
const MetadataFile = "export_config.json"

// Config holds the configuration for exports.
type Config struct {
	Description string                 `json:"description"`
	Period      enum.LeaderboardPeriod `json:"-"`
	Limit       int                    `json:"limit"`
	// User IDs are replaced by salted hashes when Salt is set.
	Salt        string   `json:"-"`
	HashType    HashType `json:"hashType,omitempty"`
	Iterations  uint32   `json:"iterations,omitempty"`
	Memory      uint32   `json:"memory,omitempty"`
	Concurrency int      `json:"-"`
}

// Metadata is the content of MetadataFile.
type Metadata struct {
	*Config

	EngineVersion string    `json:"engineVersion"`
	Period        string    `json:"period"`
	ExportedAt    time.Time `json:"exportedAt"`
	Stories       int       `json:"stories"`
	Leaderboard   int       `json:"leaderboard"`
	Pseudonymized bool      `json:"pseudonymized"`
}

// Exporter handles exporting stories and the leaderboard.
type Exporter struct {
	client  database.Client
	clock   clock.Clock
	outDir  string
	config  *Config
	formats []Format
	logger  *zap.Logger
}

// New creates a new exporter instance writing the given formats, or every format when none are given.
func New(
	client database.Client, clk clock.Clock, outDir string, config *Config, logger *zap.Logger, formats ...Format,
) *Exporter {
	if len(formats) == 0 {
		formats = []Format{FormatSQLite, FormatCSV, FormatChart}
	}
	if config.HashType == "" {
		config.HashType = HashTypeSHA256
	}
	if config.Iterations == 0 {
		config.Iterations = 1
	}
	return &Exporter{
		client:  client,
		clock:   clk,
		outDir:  outDir,
		config:  config,
		formats: formats,
		logger:  logger.Named("export"),
	}
}

// ExportAll writes the metadata file and every configured format.
func (e *Exporter) ExportAll(ctx context.Context) (*Metadata, error) {
	if err := os.MkdirAll(e.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	stories, leaderboard, err := e.collect(ctx)
	if err != nil {
		return nil, err
	}

	if e.config.Salt != "" {
		e.pseudonymize(stories, leaderboard)
	}

	metadata := &Metadata{
		Config:        e.config,
		EngineVersion: EngineVersion,
		Period:        e.config.Period.String(),
		ExportedAt:    e.clock.Now(),
		Stories:       len(stories),
		Leaderboard:   len(leaderboard),
		Pseudonymized: e.config.Salt != "",
	}

	data, err := sonic.MarshalIndent(metadata, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(e.outDir, MetadataFile), data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write export metadata: %w", err)
	}

	p := pool.New().WithErrors()
	for _, format := range e.formats {
		p.Go(func() error {
			if err := e.export(format, stories, leaderboard); err != nil {
				return fmt.Errorf("failed to export %s format: %w", format, err)
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	e.logger.Info("Export completed",
		zap.String("outDir", e.outDir),
		zap.Int("stories", len(stories)),
		zap.Int("leaderboard", len(leaderboard)))

	return metadata, nil
}

// collect reads the records to export from the engine.
func (e *Exporter) collect(ctx context.Context) ([]*types.StoryRecord, []*types.LeaderboardRecord, error) {
	summaries := e.client.Service().Story().Summaries(dbTypes.StoryFilter{})
	stories := make([]*types.StoryRecord, 0, len(summaries))
	for _, s := range summaries {
		if s.Story.IsDeleted() {
			continue
		}
		stories = append(stories, &types.StoryRecord{
			ID:          s.Story.ID,
			AuthorID:    s.Story.AuthorID,
			Title:       s.Story.Title,
			URL:         s.Story.URL,
			Status:      s.Effective.String(),
			Promotes:    s.Promotes,
			Demotes:     s.Demotes,
			Flags:       s.Flags,
			VoteCount:   s.VoteCount,
			CreatedAt:   s.Story.CreatedAt,
			PublishedAt: s.Story.PublishedAt,
		})
	}

	entries, err := e.client.Service().Score().Leaderboard(ctx, e.config.Period, e.config.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	leaderboard := make([]*types.LeaderboardRecord, len(entries))
	for i, entry := range entries {
		leaderboard[i] = &types.LeaderboardRecord{Rank: entry.Rank, UserID: entry.UserID, Score: entry.Score}
	}

	return stories, leaderboard, nil
}

// pseudonymize replaces user IDs with salted hashes in place.
func (e *Exporter) pseudonymize(stories []*types.StoryRecord, leaderboard []*types.LeaderboardRecord) {
	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, s := range stories {
		add(s.AuthorID)
	}
	for _, l := range leaderboard {
		add(l.UserID)
	}

	hashes := hashIDs(ids, e.config.Salt, e.config.HashType, e.config.Concurrency, e.config.Iterations, e.config.Memory)
	for _, s := range stories {
		s.AuthorID = hashes[s.AuthorID]
	}
	for _, l := range leaderboard {
		l.UserID = hashes[l.UserID]
	}
}

// hourlyActivity counts the moderation events of the chart window from the activity log.
func (e *Exporter) hourlyActivity() []*types.HourlyActivity {
	now := e.clock.Now()
	logs, _ := e.client.Model().Activity().GetLogs(dbTypes.ActivityFilter{
		StartDate: now.Truncate(time.Hour).Add(-(chart.HoursToShow - 1) * time.Hour),
		EndDate:   now,
	}, nil, 0)

	byHour := make(map[time.Time]*types.HourlyActivity)
	for _, log := range logs {
		hour := log.ActivityTimestamp.UTC().Truncate(time.Hour)
		bucket, ok := byHour[hour]
		if !ok {
			bucket = &types.HourlyActivity{Hour: hour}
			byHour[hour] = bucket
		}

		switch log.ActivityType {
		case enum.ActivityTypeStorySubmitted:
			bucket.Submitted++
		case enum.ActivityTypeStoryPublished:
			bucket.Published++
		case enum.ActivityTypeStoryMarkedSpam:
			bucket.Spam++
		case enum.ActivityTypeStoryDeleted:
			bucket.Deleted++
		default:
		}
	}

	activity := make([]*types.HourlyActivity, 0, len(byHour))
	for _, bucket := range byHour {
		activity = append(activity, bucket)
	}
	return activity
}

// export handles exporting data in the specified format.
func (e *Exporter) export(format Format, stories []*types.StoryRecord, leaderboard []*types.LeaderboardRecord) error {
	if format == FormatChart {
		return chart.New(e.outDir, e.clock.Now()).Export(e.hourlyActivity())
	}

	var exporter interface {
		Export(stories []*types.StoryRecord, leaderboard []*types.LeaderboardRecord) error
	}

	switch format {
	case FormatSQLite:
		exporter = sqlite.New(e.outDir)
	case FormatCSV:
		exporter = csv.New(e.outDir)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return exporter.Export(stories, leaderboard)
}
