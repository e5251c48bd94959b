package types

import (
	"time"

	"github.com/robalyx/headline/internal/database/types/enum"
)

// UserAchievement records a milestone a user has reached.
type UserAchievement struct {
	UserID     string         `json:"userId"`
	Milestone  enum.Milestone `json:"milestone"`
	AchievedAt time.Time      `json:"achievedAt"`
	Displayed  bool           `json:"displayed"` // False until the user has seen it
}
