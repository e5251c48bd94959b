package types

import "time"

// Comment represents a user's comment on a story.
type Comment struct {
	ID        string    `json:"id"`
	StoryID   string    `json:"storyId"`
	AuthorID  string    `json:"authorId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}
