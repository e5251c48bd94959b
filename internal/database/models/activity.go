package models

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/robalyx/headline/internal/database/txn"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/internal/database/types/enum"
	"go.uber.org/zap"
)

// ActivityModel stores the moderation activity log.
type ActivityModel struct {
	mu      sync.RWMutex
	seq     uint64
	logs    []*types.ActivityLog
	archive Archive
	logger  *zap.Logger
}

// NewActivity creates an activity log that mirrors records to the given archive.
func NewActivity(archive Archive, logger *zap.Logger) *ActivityModel {
	return &ActivityModel{
		archive: archive,
		logger:  logger.Named("db_activity"),
	}
}

// Log stores an activity record and assigns its sequence number.
func (r *ActivityModel) Log(ctx context.Context, log *types.ActivityLog) error {
	r.mu.Lock()
	r.seq++
	log.Sequence = r.seq
	r.logs = append(r.logs, log)
	r.mu.Unlock()

	txn.Record(ctx, func() { r.remove(log.Sequence) })

	if err := r.archive.SaveActivity(ctx, log); err != nil {
		r.remove(log.Sequence)
		r.logger.Error("Failed to archive activity",
			zap.Error(err),
			zap.String("storyID", log.StoryID),
			zap.String("actorID", log.ActorID),
			zap.String("activityType", log.ActivityType.String()))
		return fmt.Errorf("failed to archive activity: %w", err)
	}

	r.logger.Debug("Logged activity",
		zap.String("storyID", log.StoryID),
		zap.String("userID", log.UserID),
		zap.String("actorID", log.ActorID),
		zap.String("activityType", log.ActivityType.String()))

	return nil
}

// GetLogs retrieves activity logs based on filter criteria, newest first.
func (r *ActivityModel) GetLogs(
	filter types.ActivityFilter, cursor *types.LogCursor, limit int,
) ([]*types.ActivityLog, *types.LogCursor) {
	r.mu.RLock()
	matched := make([]*types.ActivityLog, 0)
	for _, log := range r.logs {
		if matches(log, filter, cursor) {
			matched = append(matched, log)
		}
	}
	r.mu.RUnlock()

	// Order by timestamp and sequence for stable pagination
	slices.SortFunc(matched, func(a, b *types.ActivityLog) int {
		if c := b.ActivityTimestamp.Compare(a.ActivityTimestamp); c != 0 {
			return c
		}
		switch {
		case a.Sequence > b.Sequence:
			return -1
		case a.Sequence < b.Sequence:
			return 1
		default:
			return 0
		}
	})

	var nextCursor *types.LogCursor
	if limit > 0 && len(matched) > limit {
		// Use the extra item as the next cursor
		extra := matched[limit]
		nextCursor = &types.LogCursor{
			Timestamp: extra.ActivityTimestamp,
			Sequence:  extra.Sequence,
		}
		matched = matched[:limit]
	}

	result := make([]*types.ActivityLog, len(matched))
	for i, log := range matched {
		c := *log
		result[i] = &c
	}
	return result, nextCursor
}

func matches(log *types.ActivityLog, filter types.ActivityFilter, cursor *types.LogCursor) bool {
	if filter.StoryID != "" && log.StoryID != filter.StoryID {
		return false
	}
	if filter.UserID != "" && log.UserID != filter.UserID {
		return false
	}
	if filter.ActorID != "" && log.ActorID != filter.ActorID {
		return false
	}
	if filter.ActivityType != enum.ActivityTypeAll && log.ActivityType != filter.ActivityType {
		return false
	}
	if !filter.StartDate.IsZero() && !filter.EndDate.IsZero() &&
		(log.ActivityTimestamp.Before(filter.StartDate) || log.ActivityTimestamp.After(filter.EndDate)) {
		return false
	}
	if cursor != nil {
		// (timestamp, sequence) <= cursor
		if log.ActivityTimestamp.After(cursor.Timestamp) {
			return false
		}
		if log.ActivityTimestamp.Equal(cursor.Timestamp) && log.Sequence > cursor.Sequence {
			return false
		}
	}
	return true
}

func (r *ActivityModel) remove(sequence uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = slices.DeleteFunc(r.logs, func(l *types.ActivityLog) bool {
		return l.Sequence == sequence
	})
}
