package enum

// UserRole represents the privilege level of a user.
//
//go:generate go tool enumer -type=UserRole -trimprefix=UserRole
type UserRole int

const (
	// UserRoleMember can submit, vote, flag and comment.
	UserRoleMember UserRole = iota
	// UserRoleModerator can additionally act on moderation notifications.
	UserRoleModerator
	// UserRoleAdministrator can approve, publish, delete and edit stories.
	UserRoleAdministrator
)
