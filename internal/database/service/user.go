package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/robalyx/headline/internal/clock"
	"github.com/robalyx/headline/internal/database/models"
	"github.com/robalyx/headline/internal/database/txn"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/internal/database/types/enum"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// UserService handles user accounts and interests.
type UserService struct {
	uow        txn.UnitOfWork
	model      *models.UserModel
	tags       *models.TagModel
	activity   *models.ActivityModel
	tagService *TagService
	auth       Authorizer
	clock      clock.Clock
	hashCost   int
	logger     *zap.Logger
}

// UserOption configures a UserService.
type UserOption func(*UserService)

// WithHashCost sets the bcrypt cost used for password hashes.
func WithHashCost(cost int) UserOption {
	return func(s *UserService) {
		s.hashCost = cost
	}
}

// NewUser creates a new user service.
func NewUser(
	uow txn.UnitOfWork,
	repo Models,
	tagService *TagService,
	auth Authorizer,
	clk clock.Clock,
	logger *zap.Logger,
	opts ...UserOption,
) *UserService {
	s := &UserService{
		uow:        uow,
		model:      repo.User(),
		tags:       repo.Tag(),
		activity:   repo.Activity(),
		tagService: tagService,
		auth:       auth,
		clock:      clk,
		hashCost:   bcrypt.DefaultCost,
		logger:     logger.Named("user_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterOption adjusts a new account before it is stored.
type RegisterOption func(*types.User)

// WithRole registers the account with the given role.
func WithRole(role enum.UserRole) RegisterOption {
	return func(u *types.User) {
		u.Role = role
	}
}

// Register creates a password-authenticated account.
func (s *UserService) Register(
	ctx context.Context, email, password string, opts ...RegisterOption,
) (*types.User, error) {
	if len(password) < MinPasswordLength {
		return nil, types.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.create(ctx, email, string(hash), false, opts)
}

// RegisterExternal creates an account authenticated by an outside identity provider.
// No password hash is stored.
func (s *UserService) RegisterExternal(ctx context.Context, email string, opts ...RegisterOption) (*types.User, error) {
	return s.create(ctx, email, "", true, opts)
}

// Authenticate checks a password login. External and locked accounts cannot log in with a password.
func (s *UserService) Authenticate(email, password string) (*types.User, error) {
	user, err := s.model.GetByEmail(email)
	if errors.Is(err, types.ErrNotFound) {
		return nil, types.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if user.ExternalIdentity || user.PasswordHash == "" {
		return nil, types.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, types.ErrInvalidCredentials
	}
	if user.Locked {
		return nil, types.ErrForbidden
	}

	return user, nil
}

// Get returns the user with the given ID.
func (s *UserService) Get(id string) (*types.User, error) {
	return s.model.Get(id)
}

// GetByEmail returns the user registered with the email.
func (s *UserService) GetByEmail(email string) (*types.User, error) {
	return s.model.GetByEmail(email)
}

// Lock prevents the user from voting, flagging, submitting or commenting.
func (s *UserService) Lock(ctx context.Context, admin *types.User, userID string) error {
	return s.setLocked(ctx, admin, userID, true)
}

// Unlock lifts a lock.
func (s *UserService) Unlock(ctx context.Context, admin *types.User, userID string) error {
	return s.setLocked(ctx, admin, userID, false)
}

// Touch records activity by the user at the current time.
func (s *UserService) Touch(ctx context.Context, userID string) error {
	return s.model.Touch(ctx, userID, s.clock.Now())
}

// AddInterest associates a tag with the user's interests.
func (s *UserService) AddInterest(ctx context.Context, userID, tag string) error {
	name := s.tagService.Normalize(tag)
	if name == "" {
		return fmt.Errorf("%w: empty tag", types.ErrInvalidSubmission)
	}
	if _, err := s.model.Get(userID); err != nil {
		return err
	}

	s.tags.AddUserTag(ctx, userID, name, s.clock.Now())
	return nil
}

// Interests returns the user's interest tags.
func (s *UserService) Interests(userID string) []string {
	return s.tags.UserTags(userID)
}

func (s *UserService) create(
	ctx context.Context, email, hash string, external bool, opts []RegisterOption,
) (*types.User, error) {
	address, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || address.Address != strings.TrimSpace(email) {
		return nil, types.ErrInvalidEmail
	}

	now := s.clock.Now()
	user := &types.User{
		ID:               uuid.NewString(),
		Email:            address.Address,
		PasswordHash:     hash,
		ExternalIdentity: external,
		Role:             enum.UserRoleMember,
		CreatedAt:        now,
		LastActivityAt:   now,
	}
	for _, opt := range opts {
		opt(user)
	}

	if err := s.model.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Registered user",
		zap.String("userID", user.ID),
		zap.Bool("external", external),
		zap.String("role", user.Role.String()))

	return user, nil
}

func (s *UserService) setLocked(ctx context.Context, admin *types.User, userID string, locked bool) error {
	actor, err := resolveActor(s.model, admin)
	if err != nil {
		return err
	}
	if !s.auth.IsAdministrator(actor) || actor.ID == userID {
		return types.ErrForbidden
	}

	return s.uow.RunInTx(ctx, func(ctx context.Context) error {
		changed, err := s.model.SetLocked(ctx, userID, locked)
		if err != nil || !changed {
			return err
		}

		activityType := enum.ActivityTypeUserUnlocked
		if locked {
			activityType = enum.ActivityTypeUserLocked
		}
		return s.activity.Log(ctx, &types.ActivityLog{
			UserID:            userID,
			ActorID:           actor.ID,
			ActivityType:      activityType,
			ActivityTimestamp: s.clock.Now(),
		})
	})
}
