package service

import (
	"context"
	"errors"

	"github.com/robalyx/headline/internal/clock"
	"github.com/robalyx/headline/internal/database/models"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/internal/database/types/enum"
	"go.uber.org/zap"
)

// ReputationMilestone is the score at which the reputation milestone unlocks.
const ReputationMilestone = 100

// AchievementService records milestones and evaluates the rules that unlock them.
type AchievementService struct {
	model  *models.AchievementModel
	votes  *models.VoteModel
	score  *ScoreService
	rules  types.Rules
	clock  clock.Clock
	logger *zap.Logger
}

// NewAchievement creates a new achievement service.
func NewAchievement(
	model *models.AchievementModel,
	votes *models.VoteModel,
	score *ScoreService,
	rules types.Rules,
	clk clock.Clock,
	logger *zap.Logger,
) *AchievementService {
	return &AchievementService{
		model:  model,
		votes:  votes,
		score:  score,
		rules:  rules,
		clock:  clk,
		logger: logger.Named("achievement_service"),
	}
}

// RecordMilestone stores a milestone for the user. Recording it again is a no-op.
// It reports whether the milestone was newly reached.
func (s *AchievementService) RecordMilestone(ctx context.Context, userID string, milestone enum.Milestone) bool {
	created := s.model.Record(ctx, userID, milestone, s.clock.Now())
	if created {
		s.logger.Info("User reached milestone",
			zap.String("userID", userID),
			zap.String("milestone", milestone.String()))
	}
	return created
}

// MarkAllDisplayed flags every achievement of the user as seen.
func (s *AchievementService) MarkAllDisplayed(ctx context.Context, userID string) int {
	return s.model.MarkAllDisplayed(ctx, userID)
}

// NewAchievements returns the achievements the user has not yet seen.
func (s *AchievementService) NewAchievements(userID string) []*types.UserAchievement {
	return s.model.GetUndisplayed(userID)
}

// AllAchievements returns every achievement of the user.
func (s *AchievementService) AllAchievements(userID string) []*types.UserAchievement {
	return s.model.GetAll(userID)
}

// OnStorySubmitted evaluates milestones after the user submits a story.
func (s *AchievementService) OnStorySubmitted(ctx context.Context, authorID string) error {
	s.RecordMilestone(ctx, authorID, enum.MilestoneFirstStory)
	return s.checkReputation(ctx, authorID)
}

// OnVoteCast evaluates milestones after the user promotes or demotes a story.
func (s *AchievementService) OnVoteCast(ctx context.Context, voterID string) error {
	s.RecordMilestone(ctx, voterID, enum.MilestoneFirstVote)
	return s.checkReputation(ctx, voterID)
}

// OnPromoted evaluates the author's milestones after their story gains a promote.
func (s *AchievementService) OnPromoted(ctx context.Context, story *types.Story) error {
	promotes, _, _ := s.votes.Counts(story.ID)
	if s.rules.PopularStoryVotes > 0 && promotes >= s.rules.PopularStoryVotes {
		s.RecordMilestone(ctx, story.AuthorID, enum.MilestonePopularStory)
	}
	return s.checkReputation(ctx, story.AuthorID)
}

// OnPublished evaluates the author's milestones after their story is published.
func (s *AchievementService) OnPublished(ctx context.Context, story *types.Story) error {
	s.RecordMilestone(ctx, story.AuthorID, enum.MilestoneStoryPublished)
	return s.checkReputation(ctx, story.AuthorID)
}

// OnCommented evaluates milestones after the user comments.
func (s *AchievementService) OnCommented(ctx context.Context, authorID string) error {
	s.RecordMilestone(ctx, authorID, enum.MilestoneFirstComment)
	return s.checkReputation(ctx, authorID)
}

func (s *AchievementService) checkReputation(ctx context.Context, userID string) error {
	if s.model.Has(userID, enum.MilestoneReputation100) {
		return nil
	}

	score, err := s.score.CurrentScore(userID)
	if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrFutureTimestamp) {
		return nil
	}
	if err != nil {
		return err
	}

	if score >= ReputationMilestone {
		s.RecordMilestone(ctx, userID, enum.MilestoneReputation100)
	}
	return nil
}
