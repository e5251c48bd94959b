package service

import (
	"errors"

	"github.com/robalyx/headline/internal/database/models"
	"github.com/robalyx/headline/internal/database/types"
)

// resolveActor reloads the acting user so lock and role changes take effect immediately.
// Anonymous, unknown and locked users are forbidden.
func resolveActor(users *models.UserModel, user *types.User) (*types.User, error) {
	if user == nil {
		return nil, types.ErrForbidden
	}

	current, err := users.Get(user.ID)
	if errors.Is(err, types.ErrNotFound) {
		return nil, types.ErrForbidden
	}
	if err != nil {
		return nil, err
	}

	if current.Locked {
		return nil, types.ErrForbidden
	}
	return current, nil
}
