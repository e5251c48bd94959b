package types

import (
	"time"

	"github.com/robalyx/headline/internal/database/types/enum"
)

// ActivityLog stores an audit record of an action taken on a story or user.
type ActivityLog struct {
	Sequence          uint64            `bun:",pk"                json:"sequence"`
	StoryID           string            `bun:",nullzero"          json:"storyId,omitempty"`
	UserID            string            `bun:",nullzero"          json:"userId,omitempty"` // Target user for account actions
	ActorID           string            `bun:",notnull"           json:"actorId"`
	ActivityType      enum.ActivityType `bun:",notnull"           json:"activityType"`
	ActivityTimestamp time.Time         `bun:",notnull"           json:"activityTimestamp"`
	Details           map[string]any    `bun:"type:jsonb,nullzero" json:"details,omitempty"`
}

// ActivityFilter is used to provide a filter criteria for retrieving activity logs.
type ActivityFilter struct {
	StoryID      string
	UserID       string
	ActorID      string
	ActivityType enum.ActivityType
	StartDate    time.Time
	EndDate      time.Time
}

// LogCursor represents a pagination cursor for activity logs.
type LogCursor struct {
	Timestamp time.Time
	Sequence  uint64
}
