package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/robalyx/headline/internal/clock"
	"github.com/robalyx/headline/internal/database/models"
	"github.com/robalyx/headline/internal/database/txn"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/internal/database/types/enum"
	"github.com/robalyx/headline/pkg/utils"
	"go.uber.org/zap"
)

const (
	// MaxCommentLength is the longest comment body accepted, in runes.
	MaxCommentLength = 2000
	// MaxTitleLength is the longest story title kept, in runes.
	MaxTitleLength = 200
)

// StoryService handles story submission, comments and read projections.
type StoryService struct {
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
	locks        *StoryLocks
	normalizer   *utils.TextNormalizer
	clock        clock.Clock
	logger       *zap.Logger
}

// NewStory creates a new story service.
func NewStory(
	uow txn.UnitOfWork,
	repo Models,
	lifecycle *LifecycleService,
	score *ScoreService,
	achievements *AchievementService,
	tagService *TagService,
	locks *StoryLocks,
	clk clock.Clock,
	logger *zap.Logger,
) *StoryService {
	return &StoryService{
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
		locks:        locks,
		normalizer:   utils.NewTextNormalizer(),
		clock:        clk,
		logger:       logger.Named("story_service"),
	}
}

// Submit creates a new story for the author and awards the post score.
func (s *StoryService) Submit(ctx context.Context, author *types.User, sub types.Submission) (*types.Story, error) {
	actor, err := resolveActor(s.users, author)
	if err != nil {
		return nil, err
	}

	title := utils.Truncate(utils.CompressAllWhitespace(sub.Title), MaxTitleLength)
	url := strings.TrimSpace(sub.URL)
	if title == "" || url == "" {
		return nil, types.ErrInvalidSubmission
	}

	now := s.clock.Now()
	story := &types.Story{
		ID:          uuid.NewString(),
		AuthorID:    actor.ID,
		Title:       title,
		URL:         url,
		Description: utils.CompressWhitespacePreserveNewlines(sub.Description),
		CategoryID:  sub.CategoryID,
		Tags:        s.tagService.NormalizeAll(sub.Tags),
		Status:      enum.StoryStatusNew,
		CreatedAt:   now,
	}

	err = s.uow.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.stories.Create(ctx, story); err != nil {
			return err
		}
		s.tags.SetStoryTags(ctx, story.ID, story.Tags, now)

		if _, err := s.score.Award(ctx, actor.ID, enum.ActionKindPost, story.ID); err != nil {
			return err
		}
		if err := s.touch(ctx, actor); err != nil {
			return err
		}
		if err := s.activity.Log(ctx, &types.ActivityLog{
			StoryID:           story.ID,
			ActorID:           actor.ID,
			ActivityType:      enum.ActivityTypeStorySubmitted,
			ActivityTimestamp: now,
			Details:           map[string]any{"title": story.Title, "url": story.URL},
		}); err != nil {
			return err
		}
		return s.achievements.OnStorySubmitted(ctx, actor.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Story submitted",
		zap.String("storyID", story.ID),
		zap.String("authorID", actor.ID))

	return story, nil
}

// Get returns the story with the given ID.
func (s *StoryService) Get(id string) (*types.Story, error) {
	return s.stories.Get(id)
}

// List returns stories matching the filter in submission order. Tag filters are normalized.
func (s *StoryService) List(filter types.StoryFilter) []*types.Story {
	if filter.Tag != "" {
		filter.Tag = s.tagService.Normalize(filter.Tag)
	}
	return s.stories.List(filter)
}

// EffectiveStatus returns the story's status with the derived Publishable state applied.
func (s *StoryService) EffectiveStatus(id string) (enum.StoryStatus, error) {
	story, err := s.stories.Get(id)
	if err != nil {
		return 0, err
	}
	return s.lifecycle.EffectiveStatus(story, s.clock.Now()), nil
}

// Summary returns the story with its vote counts and derived status.
func (s *StoryService) Summary(id string) (*types.StorySummary, error) {
	story, err := s.stories.Get(id)
	if err != nil {
		return nil, err
	}
	return s.summarize(story), nil
}

// Summaries returns summaries for every story matching the filter.
func (s *StoryService) Summaries(filter types.StoryFilter) []*types.StorySummary {
	stories := s.List(filter)
	result := make([]*types.StorySummary, len(stories))
	for i, story := range stories {
		result[i] = s.summarize(story)
	}
	return result
}

// Comment adds a comment to the story and awards the comment score.
// Bodies that are empty or repeat an existing comment on the story are rejected.
func (s *StoryService) Comment(
	ctx context.Context, storyID string, author *types.User, body string,
) (*types.Comment, error) {
	actor, err := resolveActor(s.users, author)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(storyID)
	defer unlock()

	story, err := s.stories.Get(storyID)
	if err != nil {
		return nil, err
	}
	if story.IsDeleted() {
		return nil, types.ErrStoryDeleted
	}

	body = utils.CompressWhitespacePreserveNewlines(body)
	if s.normalizer.Normalize(body) == "" || utf8.RuneCountInString(body) > MaxCommentLength {
		return nil, types.ErrInvalidComment
	}
	for _, existing := range s.comments.GetByStory(storyID) {
		if s.normalizer.Similar(body, existing.Body) {
			return nil, types.ErrCommentTooSimilar
		}
	}

	now := s.clock.Now()
	comment := &types.Comment{
		ID:        uuid.NewString(),
		StoryID:   storyID,
		AuthorID:  actor.ID,
		Body:      body,
		CreatedAt: now,
	}

	err = s.uow.RunInTx(ctx, func(ctx context.Context) error {
		s.comments.Add(ctx, comment)

		if _, err := s.score.Award(ctx, actor.ID, enum.ActionKindComment, storyID); err != nil {
			return err
		}
		if err := s.touch(ctx, actor); err != nil {
			return err
		}
		if err := s.activity.Log(ctx, &types.ActivityLog{
			StoryID:           storyID,
			ActorID:           actor.ID,
			ActivityType:      enum.ActivityTypeStoryCommented,
			ActivityTimestamp: now,
		}); err != nil {
			return err
		}
		return s.achievements.OnCommented(ctx, actor.ID)
	})
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// Comments returns the story's comments, oldest first.
func (s *StoryService) Comments(storyID string) []*types.Comment {
	return s.comments.GetByStory(storyID)
}

func (s *StoryService) summarize(story *types.Story) *types.StorySummary {
	promotes, demotes, flags := s.votes.Counts(story.ID)
	return &types.StorySummary{
		Story:     story,
		Effective: s.lifecycle.EffectiveStatus(story, s.clock.Now()),
		Promotes:  promotes,
		Demotes:   demotes,
		Flags:     flags,
		VoteCount: promotes - demotes,
	}
}

func (s *StoryService) touch(ctx context.Context, user *types.User) error {
	return s.users.Touch(ctx, user.ID, s.clock.Now())
}
