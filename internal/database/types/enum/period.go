package enum

import "time"

// LeaderboardPeriod represents different time periods for the leaderboard.
//
//go:generate go tool enumer -type=LeaderboardPeriod -trimprefix=LeaderboardPeriod
type LeaderboardPeriod int

const (
	LeaderboardPeriodDaily LeaderboardPeriod = iota
	LeaderboardPeriodWeekly
	LeaderboardPeriodBiWeekly
	LeaderboardPeriodMonthly
	LeaderboardPeriodAllTime
)

// Bounds returns the inclusive time window the period covers, ending at now.
// All-time windows start at the zero time.
func (p LeaderboardPeriod) Bounds(now time.Time) (time.Time, time.Time) {
	switch p {
	case LeaderboardPeriodDaily:
		return now.Add(-24 * time.Hour), now
	case LeaderboardPeriodWeekly:
		return now.AddDate(0, 0, -7), now
	case LeaderboardPeriodBiWeekly:
		return now.AddDate(0, 0, -14), now
	case LeaderboardPeriodMonthly:
		return now.AddDate(0, -1, 0), now
	case LeaderboardPeriodAllTime:
		return time.Time{}, now
	default:
		return time.Time{}, now
	}
}
