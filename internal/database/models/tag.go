package models

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/robalyx/headline/internal/database/txn"
	"github.com/robalyx/headline/internal/database/types"
	"go.uber.org/zap"
)

// TagModel stores tags and their story and user associations.
// Names are expected to be normalized by the caller.
type TagModel struct {
	mu        sync.RWMutex
	tags      map[string]*types.Tag
	storyTags map[string]map[string]struct{}
	userTags  map[string]map[string]struct{}
	logger    *zap.Logger
}

// NewTag creates an empty tag store.
func NewTag(logger *zap.Logger) *TagModel {
	return &TagModel{
		tags:      make(map[string]*types.Tag),
		storyTags: make(map[string]map[string]struct{}),
		userTags:  make(map[string]map[string]struct{}),
		logger:    logger.Named("db_tag"),
	}
}

// SetStoryTags replaces the story's tags, creating unknown tags.
func (m *TagModel) SetStoryTags(ctx context.Context, storyID string, names []string, at time.Time) {
	m.mu.Lock()
	previous := m.storyTags[storyID]
	created := m.ensure(names, at)
	next := make(map[string]struct{}, len(names))
	for _, name := range names {
		next[name] = struct{}{}
	}
	m.storyTags[storyID] = next
	m.mu.Unlock()

	txn.Record(ctx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if previous == nil {
			delete(m.storyTags, storyID)
		} else {
			m.storyTags[storyID] = previous
		}
		for _, name := range created {
			delete(m.tags, name)
		}
	})
}

// ClearStory removes all of the story's tag associations.
func (m *TagModel) ClearStory(ctx context.Context, storyID string) {
	m.mu.Lock()
	previous, ok := m.storyTags[storyID]
	delete(m.storyTags, storyID)
	m.mu.Unlock()

	if !ok {
		return
	}

	txn.Record(ctx, func() {
		m.mu.Lock()
		m.storyTags[storyID] = previous
		m.mu.Unlock()
	})
}

// AddUserTag associates a tag with a user's interests. It reports whether the association is new.
func (m *TagModel) AddUserTag(ctx context.Context, userID, name string, at time.Time) bool {
	m.mu.Lock()
	set, ok := m.userTags[userID]
	if !ok {
		set = make(map[string]struct{})
		m.userTags[userID] = set
	}
	if _, exists := set[name]; exists {
		m.mu.Unlock()
		return false
	}
	created := m.ensure([]string{name}, at)
	set[name] = struct{}{}
	m.mu.Unlock()

	txn.Record(ctx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.userTags[userID], name)
		for _, n := range created {
			delete(m.tags, n)
		}
	})

	return true
}

// StoryTags returns the story's tag names sorted alphabetically.
func (m *TagModel) StoryTags(storyID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.storyTags[storyID]))
}

// UserTags returns the user's interest tag names sorted alphabetically.
func (m *TagModel) UserTags(userID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.userTags[userID]))
}

// Get returns the tag with the given name.
func (m *TagModel) Get(name string) (*types.Tag, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tag, ok := m.tags[name]
	if !ok {
		return nil, false
	}
	c := *tag
	return &c, true
}

// Usage returns association counts for every tag, most used first.
func (m *TagModel) Usage() []types.TagUsage {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]*types.TagUsage, len(m.tags))
	for name := range m.tags {
		counts[name] = &types.TagUsage{Name: name}
	}
	for _, set := range m.storyTags {
		for name := range set {
			counts[name].Stories++
		}
	}
	for _, set := range m.userTags {
		for name := range set {
			counts[name].Users++
		}
	}

	result := make([]types.TagUsage, 0, len(counts))
	for _, u := range counts {
		result = append(result, *u)
	}
	slices.SortFunc(result, func(a, b types.TagUsage) int {
		if c := cmp.Compare(b.Count(), a.Count()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return result
}

// ensure creates missing tags and returns the names it created. Callers hold the lock.
func (m *TagModel) ensure(names []string, at time.Time) []string {
	var created []string
	for _, name := range names {
		if _, ok := m.tags[name]; ok {
			continue
		}
		m.tags[name] = &types.Tag{Name: name, CreatedAt: at}
		created = append(created, name)
	}
	return created
}
