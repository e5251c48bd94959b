package service_test

import (
	"testing"
	"time"

	"github.com/robalyx/headline/internal/database/models"
	"github.com/robalyx/headline/internal/database/service"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIsPublishable(t *testing.T) {
	t.Parallel()

	lifecycle := service.NewLifecycle(models.NewVote(zap.NewNop()), testSettings().Rules, zap.NewNop())

	tests := []struct {
		name   string
		status enum.StoryStatus
		age    time.Duration
		votes  int
		want   bool
	}{
		{name: "inside window with votes", status: enum.StoryStatusNew, age: 5 * time.Hour, votes: 3, want: true},
		{name: "too young", status: enum.StoryStatusNew, age: time.Hour, votes: 3, want: false},
		{name: "too old", status: enum.StoryStatusNew, age: 80 * time.Hour, votes: 30, want: false},
		{name: "lower bound inclusive", status: enum.StoryStatusNew, age: 2 * time.Hour, votes: 3, want: true},
		{name: "upper bound inclusive", status: enum.StoryStatusNew, age: 72 * time.Hour, votes: 3, want: true},
		{name: "below threshold", status: enum.StoryStatusNew, age: 5 * time.Hour, votes: 2, want: false},
		{name: "approved", status: enum.StoryStatusApproved, age: 5 * time.Hour, votes: 3, want: true},
		{name: "spam", status: enum.StoryStatusSpam, age: 5 * time.Hour, votes: 9, want: false},
		{name: "published", status: enum.StoryStatusPublished, age: 5 * time.Hour, votes: 9, want: false},
		{name: "deleted", status: enum.StoryStatusDeleted, age: 5 * time.Hour, votes: 9, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			story := &types.Story{ID: "s1", Status: tt.status, CreatedAt: epoch}
			assert.Equal(t, tt.want, lifecycle.IsPublishable(story, tt.votes, epoch.Add(tt.age)))
		})
	}
}

func TestPermissionPredicates(t *testing.T) {
	t.Parallel()

	votes := models.NewVote(zap.NewNop())
	lifecycle := service.NewLifecycle(votes, testSettings().Rules, zap.NewNop())

	voter := &types.User{ID: "voter"}
	story := func(status enum.StoryStatus) *types.Story {
		return &types.Story{ID: "s-" + status.String(), AuthorID: "author", Status: status}
	}
	require.NoError(t, votes.RegisterPromote(t.Context(), "s-New", "voter", epoch))
	require.NoError(t, votes.RegisterSpamFlag(t.Context(), "s-New", "voter", epoch))

	tests := []struct {
		name      string
		user      *types.User
		story     *types.Story
		promote   error
		demote    error
		spam      error
	}{
		{
			name: "anonymous", user: nil, story: story(enum.StoryStatusApproved),
			promote: types.ErrForbidden, demote: types.ErrForbidden, spam: types.ErrForbidden,
		},
		{
			name: "locked", user: &types.User{ID: "voter", Locked: true}, story: story(enum.StoryStatusApproved),
			promote: types.ErrForbidden, demote: types.ErrForbidden, spam: types.ErrForbidden,
		},
		{
			name: "author", user: &types.User{ID: "author"}, story: story(enum.StoryStatusDeleted),
			promote: types.ErrForbidden, demote: types.ErrForbidden, spam: types.ErrForbidden,
		},
		{
			name: "deleted", user: voter, story: story(enum.StoryStatusDeleted),
			promote: types.ErrStoryDeleted, demote: types.ErrStoryDeleted, spam: types.ErrStoryDeleted,
		},
		{
			name: "spam", user: voter, story: story(enum.StoryStatusSpam),
			promote: types.ErrInvalidState, demote: types.ErrInvalidState, spam: types.ErrInvalidState,
		},
		{
			name: "published", user: voter, story: story(enum.StoryStatusPublished),
			promote: nil, demote: nil, spam: types.ErrInvalidState,
		},
		{
			name: "already cast", user: voter, story: story(enum.StoryStatusNew),
			promote: types.ErrDuplicateVote, demote: nil, spam: types.ErrDuplicateVote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.ErrorIs(t, lifecycle.CanPromote(tt.user, tt.story), tt.promote)
			assert.ErrorIs(t, lifecycle.CanDemote(tt.user, tt.story), tt.demote)
			assert.ErrorIs(t, lifecycle.CanMarkAsSpam(tt.user, tt.story), tt.spam)
		})
	}
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	lifecycle := service.NewLifecycle(models.NewVote(zap.NewNop()), testSettings().Rules, zap.NewNop())

	assert.True(t, lifecycle.CanTransition(enum.StoryStatusNew, enum.StoryStatusSpam))
	assert.True(t, lifecycle.CanTransition(enum.StoryStatusSpam, enum.StoryStatusApproved))
	assert.True(t, lifecycle.CanTransition(enum.StoryStatusApproved, enum.StoryStatusPublished))
	assert.True(t, lifecycle.CanTransition(enum.StoryStatusSpam, enum.StoryStatusDeleted))
	assert.False(t, lifecycle.CanTransition(enum.StoryStatusPublished, enum.StoryStatusDeleted))
	assert.False(t, lifecycle.CanTransition(enum.StoryStatusDeleted, enum.StoryStatusNew))
	assert.False(t, lifecycle.CanTransition(enum.StoryStatusApproved, enum.StoryStatusSpam))

	assert.False(t, lifecycle.ReachesSpamThreshold(2))
	assert.True(t, lifecycle.ReachesSpamThreshold(3))
}
