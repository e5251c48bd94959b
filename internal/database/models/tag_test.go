package models_test

import (
	"context"
	"errors"
	"testing"

	"github.com/robalyx/headline/internal/database/models"
	"github.com/robalyx/headline/internal/database/txn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTagAssociations(t *testing.T) {
	t.Parallel()

	tags := models.NewTag(zap.NewNop())
	ctx := t.Context()

	tags.SetStoryTags(ctx, "s1", []string{"go", "news"}, epoch)
	tags.SetStoryTags(ctx, "s2", []string{"go"}, epoch)
	assert.True(t, tags.AddUserTag(ctx, "alice", "go", epoch))
	assert.False(t, tags.AddUserTag(ctx, "alice", "go", epoch))

	assert.Equal(t, []string{"go", "news"}, tags.StoryTags("s1"))
	assert.Equal(t, []string{"go"}, tags.UserTags("alice"))

	usage := tags.Usage()
	require.Len(t, usage, 2)
	assert.Equal(t, "go", usage[0].Name)
	assert.Equal(t, 3, usage[0].Count())

	tags.ClearStory(ctx, "s1")
	assert.Empty(t, tags.StoryTags("s1"))
	_, ok := tags.Get("news")
	assert.True(t, ok, "tags outlive their associations")
}

func TestTagRollback(t *testing.T) {
	t.Parallel()

	tags := models.NewTag(zap.NewNop())
	tags.SetStoryTags(t.Context(), "s1", []string{"go"}, epoch)

	errAbort := errors.New("abort")
	err := txn.NewMemory().RunInTx(t.Context(), func(ctx context.Context) error {
		tags.SetStoryTags(ctx, "s1", []string{"rust"}, epoch)
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	assert.Equal(t, []string{"go"}, tags.StoryTags("s1"))
	_, ok := tags.Get("rust")
	assert.False(t, ok)
}
