package types

import "time"

// Tag is a normalized label shared by stories and user interests.
type Tag struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// TagUsage reports how many stories and users reference a tag.
type TagUsage struct {
	Name    string `json:"name"`
	Stories int    `json:"stories"`
	Users   int    `json:"users"`
}

// Count returns the total number of associations.
func (u TagUsage) Count() int {
	return u.Stories + u.Users
}
