package models

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robalyx/headline/internal/database/txn"
	"github.com/robalyx/headline/internal/database/types"
	"go.uber.org/zap"
)

// UserModel stores user accounts keyed by ID and by case-folded email.
type UserModel struct {
	mu      sync.RWMutex
	users   map[string]*types.User
	byEmail map[string]string
	logger  *zap.Logger
}

// NewUser creates an empty user store.
func NewUser(logger *zap.Logger) *UserModel {
	return &UserModel{
		users:   make(map[string]*types.User),
		byEmail: make(map[string]string),
		logger:  logger.Named("db_user"),
	}
}

// Create stores a new user. Emails are unique regardless of case.
func (m *UserModel) Create(ctx context.Context, user *types.User) error {
	key := emailKey(user.Email)

	m.mu.Lock()
	if _, taken := m.byEmail[key]; taken {
		m.mu.Unlock()
		return types.ErrEmailTaken
	}
	if _, exists := m.users[user.ID]; exists {
		m.mu.Unlock()
		return fmt.Errorf("user %s already exists", user.ID)
	}
	m.users[user.ID] = user.Clone()
	m.byEmail[key] = user.ID
	m.mu.Unlock()

	txn.Record(ctx, func() {
		m.mu.Lock()
		delete(m.users, user.ID)
		delete(m.byEmail, key)
		m.mu.Unlock()
	})

	m.logger.Debug("Created user", zap.String("userID", user.ID))
	return nil
}

// Get returns a copy of the user.
func (m *UserModel) Get(id string) (*types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, types.ErrNotFound)
	}
	return user.Clone(), nil
}

// GetByEmail returns a copy of the user registered with the email.
func (m *UserModel) GetByEmail(email string) (*types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[emailKey(email)]
	if !ok {
		return nil, fmt.Errorf("user with email %s: %w", email, types.ErrNotFound)
	}
	return m.users[id].Clone(), nil
}

// Touch sets the user's last activity time. Other fields are left as they are.
func (m *UserModel) Touch(ctx context.Context, id string, at time.Time) error {
	m.mu.Lock()
	user, ok := m.users[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("user %s: %w", id, types.ErrNotFound)
	}
	previous := user.LastActivityAt
	user.LastActivityAt = at
	m.mu.Unlock()

	txn.Record(ctx, func() {
		m.mu.Lock()
		if u, ok := m.users[id]; ok && u.LastActivityAt.Equal(at) {
			u.LastActivityAt = previous
		}
		m.mu.Unlock()
	})

	return nil
}

// SetLocked changes the user's lock flag and reports whether it changed.
func (m *UserModel) SetLocked(ctx context.Context, id string, locked bool) (bool, error) {
	m.mu.Lock()
	user, ok := m.users[id]
	if !ok {
		m.mu.Unlock()
		return false, fmt.Errorf("user %s: %w", id, types.ErrNotFound)
	}
	if user.Locked == locked {
		m.mu.Unlock()
		return false, nil
	}
	user.Locked = locked
	m.mu.Unlock()

	txn.Record(ctx, func() {
		m.mu.Lock()
		if u, ok := m.users[id]; ok {
			u.Locked = !locked
		}
		m.mu.Unlock()
	})

	m.logger.Debug("Changed user lock", zap.String("userID", id), zap.Bool("locked", locked))
	return true, nil
}

// List returns copies of all users.
func (m *UserModel) List() []*types.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*types.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, u.Clone())
	}
	return result
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
