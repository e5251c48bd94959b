package models_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robalyx/headline/internal/database/models"
	"github.com/robalyx/headline/internal/database/txn"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserModel(t *testing.T) *models.UserModel {
	t.Helper()

	users := models.NewUser(zap.NewNop())
	require.NoError(t, users.Create(t.Context(), &types.User{
		ID:             "u1",
		Email:          "reader@example.com",
		CreatedAt:      epoch,
		LastActivityAt: epoch,
	}))
	return users
}

func TestTouchKeepsLockFlag(t *testing.T) {
	t.Parallel()

	users := newUserModel(t)
	ctx := t.Context()

	changed, err := users.SetLocked(ctx, "u1", true)
	require.NoError(t, err)
	assert.True(t, changed)

	later := epoch.Add(time.Hour)
	require.NoError(t, users.Touch(ctx, "u1", later))

	user, err := users.Get("u1")
	require.NoError(t, err)
	assert.True(t, user.Locked)
	assert.True(t, user.LastActivityAt.Equal(later))

	changed, err = users.SetLocked(ctx, "u1", true)
	require.NoError(t, err)
	assert.False(t, changed)

	require.ErrorIs(t, users.Touch(ctx, "ghost", later), types.ErrNotFound)
	_, err = users.SetLocked(ctx, "ghost", true)
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestTouchRollbackKeepsConcurrentLock(t *testing.T) {
	t.Parallel()

	users := newUserModel(t)
	errAbort := errors.New("abort")

	err := txn.NewMemory().RunInTx(t.Context(), func(ctx context.Context) error {
		if err := users.Touch(ctx, "u1", epoch.Add(time.Hour)); err != nil {
			return err
		}
		// A lock committed outside this unit of work must survive its rollback
		if _, err := users.SetLocked(t.Context(), "u1", true); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	user, err := users.Get("u1")
	require.NoError(t, err)
	assert.True(t, user.Locked)
	assert.True(t, user.LastActivityAt.Equal(epoch))
}

func TestSetLockedRollback(t *testing.T) {
	t.Parallel()

	users := newUserModel(t)
	errAbort := errors.New("abort")

	err := txn.NewMemory().RunInTx(t.Context(), func(ctx context.Context) error {
		if _, err := users.SetLocked(ctx, "u1", true); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	user, err := users.Get("u1")
	require.NoError(t, err)
	assert.False(t, user.Locked)
}
