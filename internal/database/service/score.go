package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/robalyx/headline/internal/clock"
	"github.com/robalyx/headline/internal/database/models"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/internal/database/types/enum"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ScoreService computes reputation from the score ledger.
type ScoreService struct {
	ledger  *models.LedgerModel
	users   *models.UserModel
	weights types.Weights
	clock   clock.Clock
	group   singleflight.Group
	logger  *zap.Logger
}

// NewScore creates a new score service.
func NewScore(
	ledger *models.LedgerModel, users *models.UserModel, weights types.Weights, clk clock.Clock, logger *zap.Logger,
) *ScoreService {
	return &ScoreService{
		ledger:  ledger,
		users:   users,
		weights: weights,
		clock:   clk,
		logger:  logger.Named("score_service"),
	}
}

// Weights returns the configured score weights.
func (s *ScoreService) Weights() types.Weights {
	return s.weights
}

// Record appends a score entry for the user.
func (s *ScoreService) Record(
	ctx context.Context, userID string, delta float64, action enum.ActionKind, storyID string, timestamp time.Time,
) (*types.ScoreEntry, error) {
	return s.ledger.Record(ctx, userID, delta, action, storyID, timestamp)
}

// Award records the configured weight for an action at the current time.
// Actions with a zero weight are not scored and return a nil entry.
func (s *ScoreService) Award(
	ctx context.Context, userID string, action enum.ActionKind, storyID string,
) (*types.ScoreEntry, error) {
	delta := s.weights.For(action)
	if delta == 0 {
		return nil, nil
	}

	entry, err := s.ledger.Record(ctx, userID, delta, action, storyID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to award %s score: %w", action, err)
	}
	return entry, nil
}

// ScoreBetween sums the user's entries with start <= timestamp <= end.
// Windows reaching past the current time are rejected.
func (s *ScoreService) ScoreBetween(userID string, start, end time.Time) (float64, error) {
	now := s.clock.Now()
	if start.After(now) || end.After(now) {
		return 0, types.ErrFutureTimestamp
	}
	return s.ledger.Sum(userID, start, end), nil
}

// CurrentScore returns the user's reputation: every entry since the account was created.
func (s *ScoreService) CurrentScore(userID string) (float64, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return 0, err
	}
	return s.ScoreBetween(userID, user.CreatedAt, s.clock.Now())
}

// History returns the user's score entries in ledger order.
func (s *ScoreService) History(userID string) []*types.ScoreEntry {
	return s.ledger.Entries(userID)
}

// Leaderboard ranks users by score over the period. Identical concurrent requests share one computation.
func (s *ScoreService) Leaderboard(
	ctx context.Context, period enum.LeaderboardPeriod, limit int,
) ([]*types.LeaderboardEntry, error) {
	key := fmt.Sprintf("%s:%d", period, limit)

	result, err, shared := s.group.Do(key, func() (any, error) {
		return s.computeLeaderboard(ctx, period, limit)
	})
	if err != nil {
		return nil, err
	}

	if shared {
		s.logger.Debug("Shared leaderboard computation", zap.String("period", period.String()))
	}

	// Callers get their own copy of the shared slice
	entries := result.([]*types.LeaderboardEntry)
	out := make([]*types.LeaderboardEntry, len(entries))
	for i, e := range entries {
		c := *e
		out[i] = &c
	}
	return out, nil
}

func (s *ScoreService) computeLeaderboard(
	ctx context.Context, period enum.LeaderboardPeriod, limit int,
) ([]*types.LeaderboardEntry, error) {
	start, end := period.Bounds(s.clock.Now())

	userIDs := s.ledger.UserIDs()
	entries := make([]*types.LeaderboardEntry, 0, len(userIDs))
	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		score, err := s.ScoreBetween(userID, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to score user %s: %w", userID, err)
		}
		if score == 0 {
			continue
		}
		entries = append(entries, &types.LeaderboardEntry{UserID: userID, Score: score})
	}

	slices.SortFunc(entries, func(a, b *types.LeaderboardEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for i, e := range entries {
		e.Rank = i + 1
	}

	return entries, nil
}
