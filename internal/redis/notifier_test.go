package redis_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/rueidis"
	"github.com/robalyx/headline/internal/clock"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/internal/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func setupTest(t *testing.T, queueCap int64) (*redis.Notifier, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return redis.NewNotifier(client, clock.NewMock(epoch), queueCap, zap.NewNop()), mr
}

func story(id string) *types.Story {
	return &types.Story{ID: id, AuthorID: "author-1", Title: "Title " + id, URL: "https://example.com/" + id}
}

func TestNotifySpamFlaggedQueuesStory(t *testing.T) {
	t.Parallel()

	notifier, mr := setupTest(t, 0)

	notifier.NotifySpamFlagged(t.Context(), story("s1"))
	notifier.NotifySpamFlagged(t.Context(), story("s2"))

	items, err := mr.List(redis.ReviewQueueKey)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	events, err := notifier.ReviewQueue(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "s2", events[0].StoryID)
	assert.Equal(t, redis.EventSpamFlagged, events[0].Type)
	assert.Equal(t, "author-1", events[0].AuthorID)
	assert.True(t, events[0].At.Equal(epoch))
	assert.Equal(t, "s1", events[1].StoryID)
}

func TestNotifyApprovedDoesNotQueue(t *testing.T) {
	t.Parallel()

	notifier, mr := setupTest(t, 0)

	notifier.NotifyApproved(t.Context(), story("s1"))

	assert.False(t, mr.Exists(redis.ReviewQueueKey))
	events, err := notifier.ReviewQueue(t.Context(), 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestReviewQueueIsCapped(t *testing.T) {
	t.Parallel()

	notifier, mr := setupTest(t, 2)

	for _, id := range []string{"s1", "s2", "s3"} {
		notifier.NotifySpamFlagged(t.Context(), story(id))
	}

	items, err := mr.List(redis.ReviewQueueKey)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	events, err := notifier.ReviewQueue(t.Context(), 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "s3", events[0].StoryID)
}

func TestReviewQueueSkipsMalformedEntries(t *testing.T) {
	t.Parallel()

	notifier, mr := setupTest(t, 0)
	notifier.NotifySpamFlagged(t.Context(), story("s1"))
	_, err := mr.Lpush(redis.ReviewQueueKey, "not json")
	require.NoError(t, err)

	events, err := notifier.ReviewQueue(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "s1", events[0].StoryID)

	none, err := notifier.ReviewQueue(t.Context(), 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
