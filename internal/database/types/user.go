package types

import (
	"time"

	"github.com/robalyx/headline/internal/database/types/enum"
)

// User represents a registered account.
type User struct {
	ID               string        `json:"id"`
	Email            string        `json:"email"`
	PasswordHash     string        `json:"-"`
	ExternalIdentity bool          `json:"externalIdentity"` // Authenticated by an outside provider
	Role             enum.UserRole `json:"role"`
	Locked           bool          `json:"locked"`
	CreatedAt        time.Time     `json:"createdAt"`
	LastActivityAt   time.Time     `json:"lastActivityAt"`
}

// Clone returns a copy of the user.
func (u *User) Clone() *User {
	c := *u
	return &c
}
