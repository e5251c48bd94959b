package types

import (
	"time"

	"github.com/robalyx/headline/internal/database/types/enum"
)

// ScoreEntry is an immutable record of a reputation change for a user.
type ScoreEntry struct {
	UserID    string          `bun:",pk,notnull"  json:"userId"`
	Sequence  uint64          `bun:",pk,notnull"  json:"sequence"` // Per-user, monotonic
	Timestamp time.Time       `bun:",notnull"     json:"timestamp"`
	Delta     float64         `bun:",notnull"     json:"delta"`
	Action    enum.ActionKind `bun:",notnull"     json:"action"`
	StoryID   string          `bun:",nullzero"    json:"storyId,omitempty"`
}

// LeaderboardEntry represents a user's position on the leaderboard.
type LeaderboardEntry struct {
	UserID string  `json:"userId"`
	Score  float64 `json:"score"`
	Rank   int     `json:"rank"`
}
