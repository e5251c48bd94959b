package models

import (
	"context"
	"slices"
	"sync"

	"github.com/robalyx/headline/internal/database/txn"
	"github.com/robalyx/headline/internal/database/types"
	"go.uber.org/zap"
)

// CommentModel stores story comments in posting order.
type CommentModel struct {
	mu       sync.RWMutex
	comments map[string][]*types.Comment
	logger   *zap.Logger
}

// NewComment creates an empty comment store.
func NewComment(logger *zap.Logger) *CommentModel {
	return &CommentModel{
		comments: make(map[string][]*types.Comment),
		logger:   logger.Named("db_comment"),
	}
}

// Add appends a comment to its story.
func (r *CommentModel) Add(ctx context.Context, comment *types.Comment) {
	c := *comment

	r.mu.Lock()
	r.comments[c.StoryID] = append(r.comments[c.StoryID], &c)
	r.mu.Unlock()

	txn.Record(ctx, func() {
		r.mu.Lock()
		r.comments[c.StoryID] = slices.DeleteFunc(r.comments[c.StoryID], func(x *types.Comment) bool {
			return x.ID == c.ID
		})
		r.mu.Unlock()
	})

	r.logger.Debug("Added comment",
		zap.String("storyID", c.StoryID),
		zap.String("authorID", c.AuthorID))
}

// GetByStory returns copies of the story's comments, oldest first.
func (r *CommentModel) GetByStory(storyID string) []*types.Comment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*types.Comment, len(r.comments[storyID]))
	for i, c := range r.comments[storyID] {
		cp := *c
		result[i] = &cp
	}
	return result
}

// CountByAuthor returns how many comments the user has posted across all stories.
func (r *CommentModel) CountByAuthor(authorID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, list := range r.comments {
		for _, c := range list {
			if c.AuthorID == authorID {
				count++
			}
		}
	}
	return count
}

// DeleteByStory removes all of the story's comments and returns how many were removed.
func (r *CommentModel) DeleteByStory(ctx context.Context, storyID string) int {
	r.mu.Lock()
	previous, ok := r.comments[storyID]
	delete(r.comments, storyID)
	r.mu.Unlock()

	if !ok {
		return 0
	}

	txn.Record(ctx, func() {
		r.mu.Lock()
		r.comments[storyID] = previous
		r.mu.Unlock()
	})

	return len(previous)
}
