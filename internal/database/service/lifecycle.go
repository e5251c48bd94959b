package service

import (
	"time"

	"github.com/robalyx/headline/internal/database/models"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/internal/database/types/enum"
	"go.uber.org/zap"
)

// transitions lists the stored status changes the state machine permits.
var transitions = map[enum.StoryStatus][]enum.StoryStatus{
	enum.StoryStatusNew:      {enum.StoryStatusSpam, enum.StoryStatusPublished, enum.StoryStatusDeleted},
	enum.StoryStatusApproved: {enum.StoryStatusPublished, enum.StoryStatusDeleted},
	enum.StoryStatusSpam:     {enum.StoryStatusApproved, enum.StoryStatusDeleted},
}

// LifecycleService holds the story state machine and the permission predicates that gate it.
// Every method is free of side effects.
type LifecycleService struct {
	votes  *models.VoteModel
	rules  types.Rules
	logger *zap.Logger
}

// NewLifecycle creates a new lifecycle service.
func NewLifecycle(votes *models.VoteModel, rules types.Rules, logger *zap.Logger) *LifecycleService {
	return &LifecycleService{
		votes:  votes,
		rules:  rules,
		logger: logger.Named("lifecycle_service"),
	}
}

// Rules returns the configured thresholds.
func (s *LifecycleService) Rules() types.Rules {
	return s.rules
}

// IsPublishable evaluates the publication guard for a story with the given vote count.
// The story must be New or Approved, aged within [MinAge, MaxAge] and have at least
// PromotionThreshold votes.
func (s *LifecycleService) IsPublishable(story *types.Story, votes int, now time.Time) bool {
	if story.Status != enum.StoryStatusNew && story.Status != enum.StoryStatusApproved {
		return false
	}

	age := story.Age(now)
	if age < s.rules.MinAge || age > s.rules.MaxAge {
		return false
	}

	return votes >= s.rules.PromotionThreshold
}

// EffectiveStatus returns the stored status, or Publishable when the guard currently holds.
func (s *LifecycleService) EffectiveStatus(story *types.Story, now time.Time) enum.StoryStatus {
	if s.IsPublishable(story, s.votes.VoteCount(story.ID), now) {
		return enum.StoryStatusPublishable
	}
	return story.Status
}

// CanTransition reports whether the state machine allows moving between two stored statuses.
func (s *LifecycleService) CanTransition(from, to enum.StoryStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ReachesSpamThreshold reports whether a flag count suspends a story.
func (s *LifecycleService) ReachesSpamThreshold(flags int) bool {
	return flags >= s.rules.SpamThreshold
}

// CanPromote checks whether the user may promote the story.
func (s *LifecycleService) CanPromote(user *types.User, story *types.Story) error {
	if err := s.checkVoter(user, story); err != nil {
		return err
	}
	if s.votes.HasPromoted(story.ID, user.ID) {
		return types.ErrDuplicateVote
	}
	return nil
}

// CanDemote checks whether the user may demote the story.
func (s *LifecycleService) CanDemote(user *types.User, story *types.Story) error {
	if err := s.checkVoter(user, story); err != nil {
		return err
	}
	if s.votes.HasDemoted(story.ID, user.ID) {
		return types.ErrDuplicateVote
	}
	return nil
}

// CanMarkAsSpam checks whether the user may flag the story as spam.
// Only stories that have not been cleared or published can be flagged.
func (s *LifecycleService) CanMarkAsSpam(user *types.User, story *types.Story) error {
	if err := checkActor(user, story); err != nil {
		return err
	}
	if story.Status != enum.StoryStatusNew {
		return types.ErrInvalidState
	}
	if s.votes.HasFlaggedSpam(story.ID, user.ID) {
		return types.ErrDuplicateVote
	}
	return nil
}

// checkVoter applies the checks shared by promote and demote.
// Votes are accepted on New, Approved and Published stories.
func (s *LifecycleService) checkVoter(user *types.User, story *types.Story) error {
	if err := checkActor(user, story); err != nil {
		return err
	}
	if story.Status == enum.StoryStatusSpam {
		return types.ErrInvalidState
	}
	return nil
}

// checkActor rejects anonymous, locked and self-acting users, then deleted stories.
func checkActor(user *types.User, story *types.Story) error {
	if user == nil || user.Locked {
		return types.ErrForbidden
	}
	if user.ID == story.AuthorID {
		return types.ErrForbidden
	}
	if story.IsDeleted() {
		return types.ErrStoryDeleted
	}
	return nil
}
