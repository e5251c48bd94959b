package models

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/robalyx/headline/internal/database/txn"
	"github.com/robalyx/headline/internal/database/types"
	"go.uber.org/zap"
)

// StoryModel stores stories in submission order.
type StoryModel struct {
	mu      sync.RWMutex
	stories map[string]*types.Story
	order   []string
	logger  *zap.Logger
}

// NewStory creates an empty story store.
func NewStory(logger *zap.Logger) *StoryModel {
	return &StoryModel{
		stories: make(map[string]*types.Story),
		logger:  logger.Named("db_story"),
	}
}

// Create stores a new story.
func (m *StoryModel) Create(ctx context.Context, story *types.Story) error {
	m.mu.Lock()
	if _, exists := m.stories[story.ID]; exists {
		m.mu.Unlock()
		return fmt.Errorf("story %s already exists", story.ID)
	}
	m.stories[story.ID] = story.Clone()
	m.order = append(m.order, story.ID)
	m.mu.Unlock()

	txn.Record(ctx, func() {
		m.mu.Lock()
		delete(m.stories, story.ID)
		m.order = slices.DeleteFunc(m.order, func(id string) bool { return id == story.ID })
		m.mu.Unlock()
	})

	m.logger.Debug("Created story",
		zap.String("storyID", story.ID),
		zap.String("authorID", story.AuthorID))

	return nil
}

// Get returns a copy of the story.
func (m *StoryModel) Get(id string) (*types.Story, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	story, ok := m.stories[id]
	if !ok {
		return nil, fmt.Errorf("story %s: %w", id, types.ErrNotFound)
	}
	return story.Clone(), nil
}

// Save replaces a stored story with the given one.
func (m *StoryModel) Save(ctx context.Context, story *types.Story) error {
	m.mu.Lock()
	previous, ok := m.stories[story.ID]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("story %s: %w", story.ID, types.ErrNotFound)
	}
	m.stories[story.ID] = story.Clone()
	m.mu.Unlock()

	txn.Record(ctx, func() {
		m.mu.Lock()
		m.stories[story.ID] = previous
		m.mu.Unlock()
	})

	m.logger.Debug("Saved story",
		zap.String("storyID", story.ID),
		zap.String("status", story.Status.String()))

	return nil
}

// List returns copies of stories matching the filter in submission order.
func (m *StoryModel) List(filter types.StoryFilter) []*types.Story {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*types.Story, 0, len(m.order))
	for _, id := range m.order {
		story := m.stories[id]
		if filter.AuthorID != "" && story.AuthorID != filter.AuthorID {
			continue
		}
		if filter.CategoryID != "" && story.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Tag != "" && !slices.Contains(story.Tags, filter.Tag) {
			continue
		}
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, story.Status) {
			continue
		}
		result = append(result, story.Clone())
	}
	return result
}

// Count returns the number of stored stories including tombstones.
func (m *StoryModel) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stories)
}
