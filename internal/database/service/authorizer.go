package service

import (
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/internal/database/types/enum"
)

// Authorizer decides which users hold moderation privileges.
type Authorizer interface {
	IsAdministrator(user *types.User) bool
	CanModerate(user *types.User) bool
}

// RoleAuthorizer grants privileges from the user's role. Locked users hold none.
type RoleAuthorizer struct{}

// IsAdministrator reports whether the user may approve, publish, delete and edit stories.
func (RoleAuthorizer) IsAdministrator(user *types.User) bool {
	return user != nil && !user.Locked && user.Role == enum.UserRoleAdministrator
}

// CanModerate reports whether the user receives moderation duties.
func (RoleAuthorizer) CanModerate(user *types.User) bool {
	return user != nil && !user.Locked && user.Role >= enum.UserRoleModerator
}
