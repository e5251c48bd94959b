package enum

// Milestone identifies an achievement a user can unlock.
//
//go:generate go tool enumer -type=Milestone -trimprefix=Milestone
type Milestone int

const (
	// MilestoneFirstStory is unlocked by submitting a first story.
	MilestoneFirstStory Milestone = iota
	// MilestoneFirstVote is unlocked by casting a first promote or demote.
	MilestoneFirstVote
	// MilestoneFirstComment is unlocked by posting a first comment.
	MilestoneFirstComment
	// MilestoneStoryPublished is unlocked when one of the user's stories is published.
	MilestoneStoryPublished
	// MilestonePopularStory is unlocked when one of the user's stories gathers enough promotes.
	MilestonePopularStory
	// MilestoneReputation100 is unlocked when the user's current score reaches 100.
	MilestoneReputation100
)
