package models

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/robalyx/headline/internal/database/txn"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/internal/database/types/enum"
	"go.uber.org/zap"
)

// AchievementModel stores each user's milestone records.
type AchievementModel struct {
	mu      sync.RWMutex
	records map[string]map[enum.Milestone]*types.UserAchievement
	logger  *zap.Logger
}

// NewAchievement creates an empty achievement store.
func NewAchievement(logger *zap.Logger) *AchievementModel {
	return &AchievementModel{
		records: make(map[string]map[enum.Milestone]*types.UserAchievement),
		logger:  logger.Named("db_achievement"),
	}
}

// Record stores the milestone for the user unless it is already present.
// It reports whether a new record was created.
func (m *AchievementModel) Record(ctx context.Context, userID string, milestone enum.Milestone, at time.Time) bool {
	m.mu.Lock()
	set, ok := m.records[userID]
	if !ok {
		set = make(map[enum.Milestone]*types.UserAchievement)
		m.records[userID] = set
	}
	if _, exists := set[milestone]; exists {
		m.mu.Unlock()
		return false
	}
	set[milestone] = &types.UserAchievement{
		UserID:     userID,
		Milestone:  milestone,
		AchievedAt: at,
	}
	m.mu.Unlock()

	txn.Record(ctx, func() {
		m.mu.Lock()
		delete(m.records[userID], milestone)
		m.mu.Unlock()
	})

	m.logger.Debug("Recorded milestone",
		zap.String("userID", userID),
		zap.String("milestone", milestone.String()))

	return true
}

// MarkAllDisplayed flags every record of the user as displayed and returns how many changed.
func (m *AchievementModel) MarkAllDisplayed(ctx context.Context, userID string) int {
	m.mu.Lock()
	var changed []*types.UserAchievement
	for _, a := range m.records[userID] {
		if !a.Displayed {
			a.Displayed = true
			changed = append(changed, a)
		}
	}
	m.mu.Unlock()

	if len(changed) > 0 {
		txn.Record(ctx, func() {
			m.mu.Lock()
			for _, a := range changed {
				a.Displayed = false
			}
			m.mu.Unlock()
		})
	}

	return len(changed)
}

// GetAll returns copies of every record of the user, oldest first.
func (m *AchievementModel) GetAll(userID string) []*types.UserAchievement {
	return m.collect(userID, func(*types.UserAchievement) bool { return true })
}

// GetUndisplayed returns copies of the records the user has not yet seen, oldest first.
func (m *AchievementModel) GetUndisplayed(userID string) []*types.UserAchievement {
	return m.collect(userID, func(a *types.UserAchievement) bool { return !a.Displayed })
}

// Has reports whether the user has reached the milestone.
func (m *AchievementModel) Has(userID string, milestone enum.Milestone) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.records[userID][milestone]
	return ok
}

func (m *AchievementModel) collect(userID string, keep func(*types.UserAchievement) bool) []*types.UserAchievement {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*types.UserAchievement, 0, len(m.records[userID]))
	for _, a := range m.records[userID] {
		if keep(a) {
			c := *a
			result = append(result, &c)
		}
	}
	slices.SortFunc(result, func(a, b *types.UserAchievement) int {
		if c := a.AchievedAt.Compare(b.AchievedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Milestone, b.Milestone)
	})
	return result
}
