package enum

// StoryStatus represents the moderation state of a story.
//
//go:generate go tool enumer -type=StoryStatus -trimprefix=StoryStatus
type StoryStatus int

const (
	// StoryStatusNew indicates a submitted story still collecting votes.
	StoryStatusNew StoryStatus = iota
	// StoryStatusPublishable indicates a story that qualifies for publication.
	// It is derived from age and votes and never stored on a story.
	StoryStatusPublishable
	// StoryStatusPublished indicates a story an administrator has published.
	StoryStatusPublished
	// StoryStatusSpam indicates a story suspended by spam flags or an administrator.
	StoryStatusSpam
	// StoryStatusApproved indicates a spam-suspended story cleared by an administrator.
	StoryStatusApproved
	// StoryStatusDeleted indicates a hard-deleted story. Only a tombstone remains.
	StoryStatusDeleted
)

// IsPrePublished reports whether the status is one a story passes through before publication.
func (s StoryStatus) IsPrePublished() bool {
	return s == StoryStatusNew || s == StoryStatusPublishable
}
