package types

import (
	"time"

	"github.com/robalyx/headline/internal/database/types/enum"
)

// Rules holds the thresholds that drive story transitions.
type Rules struct {
	PromotionThreshold int           // Minimum vote count for a story to become publishable
	SpamThreshold      int           // Distinct spam flags that suspend a story
	MinAge             time.Duration // Youngest age at which a story can be published
	MaxAge             time.Duration // Oldest age at which a story can be published
	PopularStoryVotes  int           // Promotes needed for the popular story milestone
}

// DefaultRules returns the thresholds used when no configuration overrides them.
func DefaultRules() Rules {
	return Rules{
		PromotionThreshold: 3,
		SpamThreshold:      5,
		MinAge:             2 * time.Hour,
		MaxAge:             72 * time.Hour,
		PopularStoryVotes:  10,
	}
}

// Weights holds the score delta awarded for each action.
// A zero weight disables scoring for that action.
type Weights struct {
	Post      float64
	Promote   float64
	Demote    float64
	Comment   float64
	SpamFlag  float64
	Published float64
}

// DefaultWeights returns the score weights used when no configuration overrides them.
func DefaultWeights() Weights {
	return Weights{
		Post:      5,
		Promote:   2,
		Demote:    -1,
		Comment:   1,
		SpamFlag:  0.5,
		Published: 10,
	}
}

// For returns the delta for an action. Reversals negate the original vote's weight.
func (w Weights) For(action enum.ActionKind) float64 {
	switch action {
	case enum.ActionKindPost:
		return w.Post
	case enum.ActionKindPromote:
		return w.Promote
	case enum.ActionKindDemote:
		return w.Demote
	case enum.ActionKindComment:
		return w.Comment
	case enum.ActionKindSpamFlag:
		return w.SpamFlag
	case enum.ActionKindPromoteReversal:
		return -w.Promote
	case enum.ActionKindDemoteReversal:
		return -w.Demote
	case enum.ActionKindPublished:
		return w.Published
	default:
		return 0
	}
}
