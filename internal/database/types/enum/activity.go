package enum

// ActivityType represents different kinds of actions recorded in the activity log.
//
//go:generate go tool enumer -type=ActivityType -trimprefix=ActivityType
type ActivityType int

const (
	// ActivityTypeAll matches any activity type in log queries.
	ActivityTypeAll ActivityType = iota

	// ActivityTypeStorySubmitted tracks when a user submits a story.
	ActivityTypeStorySubmitted
	// ActivityTypeStoryPromoted tracks when a user promotes a story.
	ActivityTypeStoryPromoted
	// ActivityTypeStoryDemoted tracks when a user demotes a story.
	ActivityTypeStoryDemoted
	// ActivityTypeStoryFlagged tracks when a user flags a story as spam.
	ActivityTypeStoryFlagged
	// ActivityTypeStoryMarkedSpam tracks when a story is moved to the spam state.
	ActivityTypeStoryMarkedSpam
	// ActivityTypeStoryApproved tracks when an administrator approves a spam-suspended story.
	ActivityTypeStoryApproved
	// ActivityTypeStoryPublished tracks when a story is published.
	ActivityTypeStoryPublished
	// ActivityTypeStoryDeleted tracks when an administrator deletes a story.
	ActivityTypeStoryDeleted
	// ActivityTypeStoryUpdated tracks when an administrator edits a story.
	ActivityTypeStoryUpdated
	// ActivityTypeStoryCommented tracks when a user comments on a story.
	ActivityTypeStoryCommented

	// ActivityTypeUserLocked tracks when an administrator locks a user out.
	ActivityTypeUserLocked
	// ActivityTypeUserUnlocked tracks when an administrator lifts a lock.
	ActivityTypeUserUnlocked
)
