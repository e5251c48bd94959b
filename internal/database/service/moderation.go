package service

import (
	"context"
	"fmt"

	"github.com/robalyx/headline/internal/clock"
	"github.com/robalyx/headline/internal/database/models"
	"github.com/robalyx/headline/internal/database/txn"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/internal/database/types/enum"
	"go.uber.org/zap"
)

// ModerationService orchestrates every mutating operation on a story. Each operation holds
// the story's lock from the guard check to the end of its unit of work, and notifications
// are sent only after the unit of work commits.
type ModerationService struct {
	uow          txn.UnitOfWork
	stories      *models.StoryModel
	users        *models.UserModel
	votes        *models.VoteModel
	tags         *models.TagModel
	comments     *models.CommentModel
	activity     *models.ActivityModel
	lifecycle    *LifecycleService
	score        *ScoreService
	achievements *AchievementService
	tagService   *TagService
	auth         Authorizer
	notifier     Notifier
	locks        *StoryLocks
	clock        clock.Clock
	logger       *zap.Logger
}

// NewModeration creates a new moderation service.
func NewModeration(
	uow txn.UnitOfWork,
	repo Models,
	lifecycle *LifecycleService,
	score *ScoreService,
	achievements *AchievementService,
	tagService *TagService,
	auth Authorizer,
	notifier Notifier,
	locks *StoryLocks,
	clk clock.Clock,
	logger *zap.Logger,
) *ModerationService {
	return &ModerationService{
		uow:          uow,
		stories:      repo.Story(),
		users:        repo.User(),
		votes:        repo.Vote(),
		tags:         repo.Tag(),
		comments:     repo.Comment(),
		activity:     repo.Activity(),
		lifecycle:    lifecycle,
		score:        score,
		achievements: achievements,
		tagService:   tagService,
		auth:         auth,
		notifier:     notifier,
		locks:        locks,
		clock:        clk,
		logger:       logger.Named("moderation_service"),
	}
}

// Promote records the voter's promote and awards the author. A previous demote by the
// voter is reversed first. It returns the story's updated vote count.
func (s *ModerationService) Promote(ctx context.Context, storyID string, voter *types.User) (count int, err error) {
	ctx, span := startSpan(ctx, "moderation.Promote", storyID)
	defer func() { finishSpan(span, err) }()

	return s.vote(ctx, storyID, voter, true)
}

// Demote records the voter's demote and charges the author. A previous promote by the
// voter is reversed first. It returns the story's updated vote count.
func (s *ModerationService) Demote(ctx context.Context, storyID string, voter *types.User) (count int, err error) {
	ctx, span := startSpan(ctx, "moderation.Demote", storyID)
	defer func() { finishSpan(span, err) }()

	return s.vote(ctx, storyID, voter, false)
}

func (s *ModerationService) vote(ctx context.Context, storyID string, voter *types.User, promote bool) (int, error) {
	actor, err := resolveActor(s.users, voter)
	if err != nil {
		return 0, err
	}

	unlock := s.locks.Lock(storyID)
	defer unlock()

	story, err := s.stories.Get(storyID)
	if err != nil {
		return 0, err
	}

	if promote {
		err = s.lifecycle.CanPromote(actor, story)
	} else {
		err = s.lifecycle.CanDemote(actor, story)
	}
	if err != nil {
		return 0, err
	}

	err = s.uow.RunInTx(ctx, func(ctx context.Context) error {
		now := s.clock.Now()

		var (
			reversed     bool
			reversal     enum.ActionKind
			action       enum.ActionKind
			activityType enum.ActivityType
			registerErr  error
		)
		if promote {
			reversed = s.votes.RemoveDemote(ctx, storyID, actor.ID)
			reversal, action, activityType = enum.ActionKindDemoteReversal, enum.ActionKindPromote, enum.ActivityTypeStoryPromoted
			registerErr = s.votes.RegisterPromote(ctx, storyID, actor.ID, now)
		} else {
			reversed = s.votes.RemovePromote(ctx, storyID, actor.ID)
			reversal, action, activityType = enum.ActionKindPromoteReversal, enum.ActionKindDemote, enum.ActivityTypeStoryDemoted
			registerErr = s.votes.RegisterDemote(ctx, storyID, actor.ID, now)
		}
		if registerErr != nil {
			return registerErr
		}

		if reversed {
			if _, err := s.score.Award(ctx, story.AuthorID, reversal, storyID); err != nil {
				return err
			}
		}
		if _, err := s.score.Award(ctx, story.AuthorID, action, storyID); err != nil {
			return err
		}

		if err := s.log(ctx, story.ID, actor.ID, activityType, map[string]any{"switched": reversed}); err != nil {
			return err
		}

		if err := s.achievements.OnVoteCast(ctx, actor.ID); err != nil {
			return err
		}
		if promote {
			return s.achievements.OnPromoted(ctx, story)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return s.votes.VoteCount(storyID), nil
}

// FlagSpam records the flagger's spam flag. When the flag count reaches the spam threshold the
// story is suspended and moderators are notified. It reports whether the story was suspended.
func (s *ModerationService) FlagSpam(ctx context.Context, storyID string, flagger *types.User) (suspended bool, err error) {
	ctx, span := startSpan(ctx, "moderation.FlagSpam", storyID)
	defer func() { finishSpan(span, err) }()

	actor, err := resolveActor(s.users, flagger)
	if err != nil {
		return false, err
	}

	unlock := s.locks.Lock(storyID)
	defer unlock()

	story, err := s.stories.Get(storyID)
	if err != nil {
		return false, err
	}
	if err := s.lifecycle.CanMarkAsSpam(actor, story); err != nil {
		return false, err
	}

	err = s.uow.RunInTx(ctx, func(ctx context.Context) error {
		now := s.clock.Now()

		if err := s.votes.RegisterSpamFlag(ctx, storyID, actor.ID, now); err != nil {
			return err
		}
		if _, err := s.score.Award(ctx, actor.ID, enum.ActionKindSpamFlag, storyID); err != nil {
			return err
		}

		flags := s.votes.SpamFlagCount(storyID)
		if err := s.log(ctx, storyID, actor.ID, enum.ActivityTypeStoryFlagged, map[string]any{"flags": flags}); err != nil {
			return err
		}

		if !s.lifecycle.ReachesSpamThreshold(flags) {
			return nil
		}

		story.Status = enum.StoryStatusSpam
		if err := s.stories.Save(ctx, story); err != nil {
			return err
		}
		suspended = true

		return s.log(ctx, storyID, actor.ID, enum.ActivityTypeStoryMarkedSpam, map[string]any{"flags": flags})
	})
	if err != nil {
		return false, err
	}

	if suspended {
		s.logger.Info("Story suspended by spam flags", zap.String("storyID", storyID))
		s.notifier.NotifySpamFlagged(context.WithoutCancel(ctx), story)
	}

	return suspended, nil
}

// MarkSpam moves a story straight to the spam state and notifies moderators.
func (s *ModerationService) MarkSpam(ctx context.Context, storyID string, admin *types.User) (err error) {
	ctx, span := startSpan(ctx, "moderation.MarkSpam", storyID)
	defer func() { finishSpan(span, err) }()

	story, unlock, err := s.adminStory(storyID, admin)
	if err != nil {
		return err
	}
	defer unlock()

	if !s.lifecycle.CanTransition(story.Status, enum.StoryStatusSpam) {
		return fmt.Errorf("%w: cannot mark %s story as spam", types.ErrInvalidState, story.Status)
	}

	err = s.uow.RunInTx(ctx, func(ctx context.Context) error {
		story.Status = enum.StoryStatusSpam
		if err := s.stories.Save(ctx, story); err != nil {
			return err
		}
		return s.log(ctx, storyID, admin.ID, enum.ActivityTypeStoryMarkedSpam, nil)
	})
	if err != nil {
		return err
	}

	s.notifier.NotifySpamFlagged(context.WithoutCancel(ctx), story)
	return nil
}

// Approve clears a spam-suspended story and restores voting on it.
func (s *ModerationService) Approve(ctx context.Context, storyID string, admin *types.User) (err error) {
	ctx, span := startSpan(ctx, "moderation.Approve", storyID)
	defer func() { finishSpan(span, err) }()

	story, unlock, err := s.adminStory(storyID, admin)
	if err != nil {
		return err
	}
	defer unlock()

	if story.Status != enum.StoryStatusSpam {
		return types.ErrNotInSpamState
	}

	err = s.uow.RunInTx(ctx, func(ctx context.Context) error {
		story.Status = enum.StoryStatusApproved
		story.ApprovedAt = s.clock.Now()
		if err := s.stories.Save(ctx, story); err != nil {
			return err
		}
		return s.log(ctx, storyID, admin.ID, enum.ActivityTypeStoryApproved, nil)
	})
	if err != nil {
		return err
	}

	s.notifier.NotifyApproved(context.WithoutCancel(ctx), story)
	return nil
}

// Publish moves every currently publishable story to Published in one unit of work.
// It returns the number of stories published; none qualifying is not an error.
func (s *ModerationService) Publish(ctx context.Context, admin *types.User) (published int, err error) {
	ctx, span := startSpan(ctx, "moderation.Publish", "")
	defer func() { finishSpan(span, err) }()

	actor, err := s.administrator(admin)
	if err != nil {
		return 0, err
	}

	candidates := s.stories.List(types.StoryFilter{
		Statuses: []enum.StoryStatus{enum.StoryStatusNew, enum.StoryStatusApproved},
	})
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
	}

	unlock := s.locks.LockAll(ids)
	defer unlock()

	err = s.uow.RunInTx(ctx, func(ctx context.Context) error {
		published = 0
		now := s.clock.Now()

		for _, id := range ids {
			// Re-read under the lock; votes may have landed since listing
			story, err := s.stories.Get(id)
			if err != nil {
				return err
			}
			if !s.lifecycle.IsPublishable(story, s.votes.VoteCount(id), now) {
				continue
			}

			story.Status = enum.StoryStatusPublished
			story.PublishedAt = now
			if err := s.stories.Save(ctx, story); err != nil {
				return err
			}
			if _, err := s.score.Award(ctx, story.AuthorID, enum.ActionKindPublished, id); err != nil {
				return err
			}
			if err := s.log(ctx, id, actor.ID, enum.ActivityTypeStoryPublished, nil); err != nil {
				return err
			}
			if err := s.achievements.OnPublished(ctx, story); err != nil {
				return err
			}
			published++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Published stories",
		zap.Int("published", published),
		zap.Int("candidates", len(ids)))

	return published, nil
}

// Delete removes a story's content and every vote, flag, tag and comment on it. A tombstone
// remains so later operations fail with ErrStoryDeleted. Score entries are kept.
func (s *ModerationService) Delete(ctx context.Context, storyID string, admin *types.User) (err error) {
	ctx, span := startSpan(ctx, "moderation.Delete", storyID)
	defer func() { finishSpan(span, err) }()

	story, unlock, err := s.adminStory(storyID, admin)
	if err != nil {
		return err
	}
	defer unlock()

	if !s.lifecycle.CanTransition(story.Status, enum.StoryStatusDeleted) {
		return fmt.Errorf("%w: cannot delete %s story", types.ErrInvalidState, story.Status)
	}

	return s.uow.RunInTx(ctx, func(ctx context.Context) error {
		details := map[string]any{
			"title":    story.Title,
			"url":      story.URL,
			"comments": s.comments.DeleteByStory(ctx, storyID),
		}
		s.votes.Clear(ctx, storyID)
		s.tags.ClearStory(ctx, storyID)

		tombstone := &types.Story{
			ID:        story.ID,
			AuthorID:  story.AuthorID,
			Status:    enum.StoryStatusDeleted,
			CreatedAt: story.CreatedAt,
			DeletedAt: s.clock.Now(),
		}
		if err := s.stories.Save(ctx, tombstone); err != nil {
			return err
		}

		return s.log(ctx, storyID, admin.ID, enum.ActivityTypeStoryDeleted, details)
	})
}

// Update applies an administrator's edits. Moderation state and votes are left untouched.
func (s *ModerationService) Update(
	ctx context.Context, storyID string, editor *types.User, update types.StoryUpdate,
) (result *types.Story, err error) {
	ctx, span := startSpan(ctx, "moderation.Update", storyID)
	defer func() { finishSpan(span, err) }()

	story, unlock, err := s.adminStory(storyID, editor)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if update.CreatedAt != nil && update.CreatedAt.After(s.clock.Now()) {
		return nil, types.ErrFutureTimestamp
	}
	if update.Title != nil && *update.Title == "" {
		return nil, types.ErrInvalidSubmission
	}

	changed := make([]string, 0, 5)
	if update.Title != nil {
		story.Title = *update.Title
		changed = append(changed, "title")
	}
	if update.Description != nil {
		story.Description = *update.Description
		changed = append(changed, "description")
	}
	if update.CategoryID != nil {
		story.CategoryID = *update.CategoryID
		changed = append(changed, "category")
	}
	if update.CreatedAt != nil {
		story.CreatedAt = *update.CreatedAt
		changed = append(changed, "createdAt")
	}
	if update.Tags != nil {
		story.Tags = s.tagService.NormalizeAll(update.Tags)
		changed = append(changed, "tags")
	}

	err = s.uow.RunInTx(ctx, func(ctx context.Context) error {
		if update.Tags != nil {
			s.tags.SetStoryTags(ctx, storyID, story.Tags, s.clock.Now())
		}
		if err := s.stories.Save(ctx, story); err != nil {
			return err
		}
		return s.log(ctx, storyID, editor.ID, enum.ActivityTypeStoryUpdated, map[string]any{"fields": changed})
	})
	if err != nil {
		return nil, err
	}

	return story, nil
}

// administrator resolves the acting user and requires administrator privilege.
func (s *ModerationService) administrator(user *types.User) (*types.User, error) {
	actor, err := resolveActor(s.users, user)
	if err != nil {
		return nil, err
	}
	if !s.auth.IsAdministrator(actor) {
		return nil, types.ErrForbidden
	}
	return actor, nil
}

// adminStory checks administrator privilege, locks the story and loads it.
// Deleted stories are rejected. The caller must call the returned unlock function.
func (s *ModerationService) adminStory(storyID string, admin *types.User) (*types.Story, func(), error) {
	if _, err := s.administrator(admin); err != nil {
		return nil, nil, err
	}

	unlock := s.locks.Lock(storyID)

	story, err := s.stories.Get(storyID)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	if story.IsDeleted() {
		unlock()
		return nil, nil, types.ErrStoryDeleted
	}

	return story, unlock, nil
}

func (s *ModerationService) log(
	ctx context.Context, storyID, actorID string, activityType enum.ActivityType, details map[string]any,
) error {
	return s.activity.Log(ctx, &types.ActivityLog{
		StoryID:           storyID,
		ActorID:           actorID,
		ActivityType:      activityType,
		ActivityTimestamp: s.clock.Now(),
		Details:           details,
	})
}
