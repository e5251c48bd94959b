package models_test

import (
	"testing"
	"time"

	"github.com/robalyx/headline/internal/database/models"
	"github.com/robalyx/headline/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAchievementRecord(t *testing.T) {
	t.Parallel()

	achievements := models.NewAchievement(zap.NewNop())
	ctx := t.Context()

	assert.True(t, achievements.Record(ctx, "alice", enum.MilestoneFirstStory, epoch))
	assert.False(t, achievements.Record(ctx, "alice", enum.MilestoneFirstStory, epoch.Add(time.Hour)))
	assert.True(t, achievements.Record(ctx, "alice", enum.MilestoneFirstVote, epoch.Add(time.Minute)))

	all := achievements.GetAll("alice")
	require.Len(t, all, 2)
	assert.Equal(t, enum.MilestoneFirstStory, all[0].Milestone)
	assert.Equal(t, epoch, all[0].AchievedAt)

	assert.Len(t, achievements.GetUndisplayed("alice"), 2)
	assert.Equal(t, 2, achievements.MarkAllDisplayed(ctx, "alice"))
	assert.Empty(t, achievements.GetUndisplayed("alice"))
	assert.Len(t, achievements.GetAll("alice"), 2)
	assert.Equal(t, 0, achievements.MarkAllDisplayed(ctx, "alice"))
}
