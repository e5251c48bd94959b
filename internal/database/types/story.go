package types

import (
	"slices"
	"time"

	"github.com/robalyx/headline/internal/database/types/enum"
)

// Story represents a submitted link and its moderation state.
// Vote sets are held separately by the vote registry.
type Story struct {
	ID          string           `json:"id"`
	AuthorID    string           `json:"authorId"`
	Title       string           `json:"title"`
	URL         string           `json:"url"`
	Description string           `json:"description"`
	CategoryID  string           `json:"categoryId"`
	Tags        []string         `json:"tags"`
	Status      enum.StoryStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	ApprovedAt  time.Time        `json:"approvedAt,omitzero"`
	PublishedAt time.Time        `json:"publishedAt,omitzero"`
	DeletedAt   time.Time        `json:"deletedAt,omitzero"`
}

// Clone returns a deep copy of the story.
func (s *Story) Clone() *Story {
	c := *s
	c.Tags = slices.Clone(s.Tags)
	return &c
}

// IsDeleted reports whether only a tombstone of the story remains.
func (s *Story) IsDeleted() bool {
	return s.Status == enum.StoryStatusDeleted
}

// Age returns how long ago the story was submitted.
func (s *Story) Age(now time.Time) time.Duration {
	return now.Sub(s.CreatedAt)
}

// Submission holds the fields a user provides when submitting a story.
type Submission struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	CategoryID  string   `json:"categoryId"`
	Tags        []string `json:"tags"`
}

// StoryUpdate holds an administrator's edits. Nil fields are left unchanged.
type StoryUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	CategoryID  *string    `json:"categoryId,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// StoryFilter narrows story listings. Zero values match everything.
type StoryFilter struct {
	AuthorID   string
	CategoryID string
	Tag        string
	Statuses   []enum.StoryStatus // Matched against stored status
}

// StorySummary is a story together with its derived moderation view.
type StorySummary struct {
	Story     *Story           `json:"story"`
	Effective enum.StoryStatus `json:"effective"`
	Promotes  int              `json:"promotes"`
	Demotes   int              `json:"demotes"`
	Flags     int              `json:"flags"`
	VoteCount int              `json:"voteCount"`
}
