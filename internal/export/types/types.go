package types

import "time"

// StoryRecord is one story row in an export.
type StoryRecord struct {
	ID          string
	AuthorID    string
	Title       string
	URL         string
	Status      string
	Promotes    int
	Demotes     int
	Flags       int
	VoteCount   int
	CreatedAt   time.Time
	PublishedAt time.Time
}

// LeaderboardRecord is one leaderboard row in an export.
type LeaderboardRecord struct {
	Rank   int
	UserID string
	Score  float64
}

// HourlyActivity counts moderation events within one hour.
type HourlyActivity struct {
	Hour      time.Time
	Submitted int
	Published int
	Spam      int
	Deleted   int
}
