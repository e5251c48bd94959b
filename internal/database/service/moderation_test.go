package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robalyx/headline/internal/database"
	"github.com/robalyx/headline/internal/database/models"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/internal/database/types/enum"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishableWindow(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testSettings())
	story := h.submit(t)

	for _, voter := range h.members(t, 3) {
		_, err := h.moderation().Promote(t.Context(), story.ID, voter)
		require.NoError(t, err)
	}

	h.clock.Set(epoch.Add(time.Hour))
	assert.Equal(t, enum.StoryStatusNew, h.status(t, story.ID), "too young")

	h.clock.Set(epoch.Add(5 * time.Hour))
	assert.Equal(t, enum.StoryStatusPublishable, h.status(t, story.ID))

	h.clock.Set(epoch.Add(73 * time.Hour))
	assert.Equal(t, enum.StoryStatusNew, h.status(t, story.ID), "too old")
}

func TestPromoteScoresAuthor(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testSettings())
	story := h.submit(t)

	for _, voter := range h.members(t, 2) {
		_, err := h.moderation().Promote(t.Context(), story.ID, voter)
		require.NoError(t, err)
	}

	score, err := h.score().CurrentScore(h.author.ID)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, score, 1e-9)
}

func TestPromoteChecks(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testSettings())
	story := h.submit(t)
	voter := h.member(t)
	locked := h.member(t)
	require.NoError(t, h.accounts().Lock(t.Context(), h.admin, locked.ID))

	tests := []struct {
		name    string
		storyID string
		user    *types.User
		wantErr error
	}{
		{name: "anonymous", storyID: story.ID, user: nil, wantErr: types.ErrForbidden},
		{name: "locked user", storyID: story.ID, user: locked, wantErr: types.ErrForbidden},
		{name: "unknown user", storyID: story.ID, user: &types.User{ID: "ghost"}, wantErr: types.ErrForbidden},
		{name: "author", storyID: story.ID, user: h.author, wantErr: types.ErrForbidden},
		{name: "missing story", storyID: "missing", user: voter, wantErr: types.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.moderation().Promote(t.Context(), tt.storyID, tt.user)
			require.ErrorIs(t, err, tt.wantErr)
			_, err = h.moderation().Demote(t.Context(), tt.storyID, tt.user)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	count, err := h.moderation().Promote(t.Context(), story.ID, voter)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = h.moderation().Promote(t.Context(), story.ID, voter)
	require.ErrorIs(t, err, types.ErrDuplicateVote)
}

func TestVoteSwitch(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testSettings())
	story := h.submit(t)
	voter := h.member(t)
	votes := h.client.Model().Vote()

	count, err := h.moderation().Demote(t.Context(), story.ID, voter)
	require.NoError(t, err)
	assert.Equal(t, -1, count)

	count, err = h.moderation().Promote(t.Context(), story.ID, voter)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.True(t, votes.HasPromoted(story.ID, voter.ID))
	assert.False(t, votes.HasDemoted(story.ID, voter.ID))

	count, err = h.moderation().Demote(t.Context(), story.ID, voter)
	require.NoError(t, err)
	assert.Equal(t, -1, count)

	var actions []enum.ActionKind
	for _, e := range h.score().History(h.author.ID) {
		actions = append(actions, e.Action)
	}
	assert.Equal(t, []enum.ActionKind{
		enum.ActionKindPost,
		enum.ActionKindDemote,
		enum.ActionKindDemoteReversal,
		enum.ActionKindPromote,
		enum.ActionKindPromoteReversal,
		enum.ActionKindDemote,
	}, actions)

	// Post, then one net demote
	score, err := h.score().CurrentScore(h.author.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, score, 1e-9)
}

func TestFlagSpam(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testSettings())
	story := h.submit(t)
	flaggers := h.members(t, 3)

	for _, flagger := range flaggers[:2] {
		suspended, err := h.moderation().FlagSpam(t.Context(), story.ID, flagger)
		require.NoError(t, err)
		assert.False(t, suspended)
	}
	assert.Equal(t, enum.StoryStatusNew, h.status(t, story.ID))
	assert.Empty(t, h.notifier.spamIDs())

	_, err := h.moderation().FlagSpam(t.Context(), story.ID, flaggers[0])
	require.ErrorIs(t, err, types.ErrDuplicateVote)

	suspended, err := h.moderation().FlagSpam(t.Context(), story.ID, flaggers[2])
	require.NoError(t, err)
	assert.True(t, suspended)
	assert.Equal(t, enum.StoryStatusSpam, h.status(t, story.ID))
	assert.Equal(t, []string{story.ID}, h.notifier.spamIDs())

	_, err = h.moderation().Promote(t.Context(), story.ID, h.member(t))
	require.ErrorIs(t, err, types.ErrInvalidState)
	_, err = h.moderation().FlagSpam(t.Context(), story.ID, h.member(t))
	require.ErrorIs(t, err, types.ErrInvalidState)
}

func TestApprove(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testSettings())
	story := h.submit(t)
	member := h.member(t)

	require.ErrorIs(t, h.moderation().Approve(t.Context(), story.ID, member), types.ErrForbidden,
		"privilege is checked before state")
	require.ErrorIs(t, h.moderation().Approve(t.Context(), story.ID, h.admin), types.ErrNotInSpamState)

	require.NoError(t, h.moderation().MarkSpam(t.Context(), story.ID, h.admin))
	assert.Equal(t, []string{story.ID}, h.notifier.spamIDs())
	require.ErrorIs(t, h.moderation().MarkSpam(t.Context(), story.ID, h.admin), types.ErrInvalidState)

	require.NoError(t, h.moderation().Approve(t.Context(), story.ID, h.admin))
	assert.Equal(t, []string{story.ID}, h.notifier.approvedIDs())

	approved, err := h.stories().Get(story.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.StoryStatusApproved, approved.Status)
	assert.Equal(t, epoch, approved.ApprovedAt)

	_, err = h.moderation().Promote(t.Context(), story.ID, member)
	require.NoError(t, err, "approval restores voting")
	_, err = h.moderation().FlagSpam(t.Context(), story.ID, h.member(t))
	require.ErrorIs(t, err, types.ErrInvalidState)
}

func TestPublish(t *testing.T) {
	t.Parallel()

	settings := testSettings()
	settings.Weights.Published = 10
	h := newHarness(t, settings)

	ready := h.submit(t)
	unpopular := h.submit(t)
	for _, voter := range h.members(t, 3) {
		_, err := h.moderation().Promote(t.Context(), ready.ID, voter)
		require.NoError(t, err)
	}

	h.clock.Advance(30 * time.Minute)
	young := h.submit(t)
	for _, voter := range h.members(t, 3) {
		_, err := h.moderation().Promote(t.Context(), young.ID, voter)
		require.NoError(t, err)
	}

	_, err := h.moderation().Publish(t.Context(), h.member(t))
	require.ErrorIs(t, err, types.ErrForbidden)

	h.clock.Set(epoch.Add(2 * time.Hour))
	published, err := h.moderation().Publish(t.Context(), h.admin)
	require.NoError(t, err)
	assert.Equal(t, 1, published)

	published, err = h.moderation().Publish(t.Context(), h.admin)
	require.NoError(t, err)
	assert.Equal(t, 0, published, "publishing is idempotent")

	assert.Equal(t, enum.StoryStatusPublished, h.status(t, ready.ID))
	assert.Equal(t, enum.StoryStatusNew, h.status(t, unpopular.ID))
	assert.Equal(t, enum.StoryStatusNew, h.status(t, young.ID))

	// Published stories keep accepting votes
	count, err := h.moderation().Promote(t.Context(), ready.ID, h.member(t))
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.Equal(t, enum.StoryStatusPublished, h.status(t, ready.ID))

	require.ErrorIs(t, h.moderation().Delete(t.Context(), ready.ID, h.admin), types.ErrInvalidState)

	assert.True(t, h.client.Model().Achievement().Has(h.author.ID, enum.MilestoneStoryPublished))

	h.clock.Set(epoch.Add(3 * time.Hour))
	published, err = h.moderation().Publish(t.Context(), h.admin)
	require.NoError(t, err)
	assert.Equal(t, 1, published, "the younger story enters its window")
}

func TestPublishNothingQualifies(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testSettings())
	h.submit(t)

	published, err := h.moderation().Publish(t.Context(), h.admin)
	require.NoError(t, err)
	assert.Zero(t, published)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testSettings())
	story := h.submit(t)
	voter := h.member(t)

	_, err := h.moderation().Promote(t.Context(), story.ID, voter)
	require.NoError(t, err)
	_, err = h.stories().Comment(t.Context(), story.ID, voter, "Worth reading for the iterator changes")
	require.NoError(t, err)

	require.ErrorIs(t, h.moderation().Delete(t.Context(), story.ID, voter), types.ErrForbidden)
	require.NoError(t, h.moderation().Delete(t.Context(), story.ID, h.admin))
	require.ErrorIs(t, h.moderation().Delete(t.Context(), story.ID, h.admin), types.ErrStoryDeleted)

	tombstone, err := h.stories().Get(story.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.StoryStatusDeleted, tombstone.Status)
	assert.Empty(t, tombstone.Title)
	assert.Empty(t, tombstone.Tags)

	assert.Zero(t, h.client.Model().Vote().VoteCount(story.ID))
	assert.Empty(t, h.stories().Comments(story.ID))
	assert.Empty(t, h.client.Model().Tag().StoryTags(story.ID))
	assert.Len(t, h.score().History(h.author.ID), 2, "ledger entries survive deletion")

	_, err = h.moderation().Promote(t.Context(), story.ID, h.member(t))
	require.ErrorIs(t, err, types.ErrStoryDeleted)
	_, err = h.moderation().FlagSpam(t.Context(), story.ID, h.member(t))
	require.ErrorIs(t, err, types.ErrStoryDeleted)
	require.ErrorIs(t, h.moderation().Approve(t.Context(), story.ID, h.admin), types.ErrStoryDeleted)
	_, err = h.stories().Comment(t.Context(), story.ID, voter, "Anyone still here?")
	require.ErrorIs(t, err, types.ErrStoryDeleted)
}

func TestDeleteSpamStory(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testSettings())
	story := h.submit(t)

	require.NoError(t, h.moderation().MarkSpam(t.Context(), story.ID, h.admin))
	require.NoError(t, h.moderation().Delete(t.Context(), story.ID, h.admin))
	assert.Equal(t, enum.StoryStatusDeleted, h.status(t, story.ID))
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testSettings())
	story := h.submit(t)
	voter := h.member(t)
	_, err := h.moderation().Promote(t.Context(), story.ID, voter)
	require.NoError(t, err)

	title := "Go 1.24 is out"
	backdated := epoch.Add(-time.Hour)
	_, err = h.moderation().Update(t.Context(), story.ID, voter, types.StoryUpdate{Title: &title})
	require.ErrorIs(t, err, types.ErrForbidden)

	future := epoch.Add(time.Hour)
	_, err = h.moderation().Update(t.Context(), story.ID, h.admin, types.StoryUpdate{CreatedAt: &future})
	require.ErrorIs(t, err, types.ErrFutureTimestamp)

	updated, err := h.moderation().Update(t.Context(), story.ID, h.admin, types.StoryUpdate{
		Title:     &title,
		Tags:      []string{"golang", "GoLang", " "},
		CreatedAt: &backdated,
	})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, []string{"golang"}, updated.Tags)
	assert.Equal(t, backdated, updated.CreatedAt)
	assert.Equal(t, "https://go.dev/blog/go1.24", updated.URL)

	assert.Equal(t, enum.StoryStatusNew, updated.Status)
	assert.Equal(t, 1, h.client.Model().Vote().VoteCount(story.ID))
	assert.Equal(t, []string{"golang"}, h.client.Model().Tag().StoryTags(story.ID))

	logs, _ := h.client.Model().Activity().GetLogs(types.ActivityFilter{
		StoryID:      story.ID,
		ActivityType: enum.ActivityTypeStoryUpdated,
	}, nil, 10)
	require.Len(t, logs, 1)
	assert.Equal(t, h.admin.ID, logs[0].ActorID)
}

// promoteFailingArchive rejects the activity record written by a promote.
type promoteFailingArchive struct {
	models.NopArchive
}

var errArchiveDown = errors.New("archive down")

func (promoteFailingArchive) SaveActivity(_ context.Context, log *types.ActivityLog) error {
	if log.ActivityType == enum.ActivityTypeStoryPromoted {
		return errArchiveDown
	}
	return nil
}

func TestRollbackOnArchiveFailure(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testSettings(), database.WithArchive(promoteFailingArchive{}))
	story := h.submit(t)
	voter := h.member(t)

	_, err := h.moderation().Demote(t.Context(), story.ID, voter)
	require.NoError(t, err)
	entriesBefore := len(h.score().History(h.author.ID))

	_, err = h.moderation().Promote(t.Context(), story.ID, voter)
	require.ErrorIs(t, err, errArchiveDown)

	votes := h.client.Model().Vote()
	assert.True(t, votes.HasDemoted(story.ID, voter.ID), "switch is undone")
	assert.False(t, votes.HasPromoted(story.ID, voter.ID))
	assert.Equal(t, -1, votes.VoteCount(story.ID))
	assert.Len(t, h.score().History(h.author.ID), entriesBefore)
}

func TestConcurrentPromotes(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testSettings())
	story := h.submit(t)
	voters := h.members(t, 40)

	var wg conc.WaitGroup
	for _, voter := range voters {
		wg.Go(func() {
			_, err := h.moderation().Promote(t.Context(), story.ID, voter)
			assert.NoError(t, err)
		})
	}
	wg.Wait()

	assert.Equal(t, len(voters), h.client.Model().Vote().VoteCount(story.ID))
	assert.Len(t, h.score().History(h.author.ID), len(voters)+1)
}

func TestConcurrentDuplicatePromotes(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testSettings())
	story := h.submit(t)
	voter := h.member(t)

	results := make(chan error, 20)
	var wg conc.WaitGroup
	for range 20 {
		wg.Go(func() {
			_, err := h.moderation().Promote(t.Context(), story.ID, voter)
			results <- err
		})
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		require.ErrorIs(t, err, types.ErrDuplicateVote)
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, h.client.Model().Vote().VoteCount(story.ID))
}

func TestConcurrentPublishAndVotes(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testSettings())
	story := h.submit(t)
	voters := h.members(t, 10)
	h.clock.Set(epoch.Add(3 * time.Hour))

	var wg conc.WaitGroup
	for _, voter := range voters {
		wg.Go(func() {
			_, err := h.moderation().Promote(t.Context(), story.ID, voter)
			assert.NoError(t, err)
		})
	}
	wg.Go(func() {
		_, err := h.moderation().Publish(t.Context(), h.admin)
		assert.NoError(t, err)
	})
	wg.Wait()

	_, err := h.moderation().Publish(t.Context(), h.admin)
	require.NoError(t, err)

	assert.Equal(t, len(voters), h.client.Model().Vote().VoteCount(story.ID))
	assert.Equal(t, enum.StoryStatusPublished, h.status(t, story.ID))
}
