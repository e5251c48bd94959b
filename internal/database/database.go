// Package database assembles the story moderation engine from its stores and services.
package database

import (
	"github.com/robalyx/headline/internal/clock"
	"github.com/robalyx/headline/internal/database/models"
	"github.com/robalyx/headline/internal/database/service"
	"github.com/robalyx/headline/internal/database/txn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Client defines the methods that an engine client must implement.
type Client interface {
	// Model returns the repository containing all model operations.
	Model() *Repository
	// Service returns the service containing all service operations.
	Service() *Service
}

// options holds the collaborators an engine is wired with.
type options struct {
	clock    clock.Clock
	archive  models.Archive
	uow      txn.UnitOfWork
	notifier service.Notifier
	auth     service.Authorizer
	hashCost int
}

// Option configures a Client.
type Option func(*options)

// WithClock sets the time source.
func WithClock(clk clock.Clock) Option {
	return func(o *options) { o.clock = clk }
}

// WithArchive mirrors activity logs and score entries to durable storage.
func WithArchive(archive models.Archive) Option {
	return func(o *options) { o.archive = archive }
}

// WithUnitOfWork replaces the in-memory unit of work.
func WithUnitOfWork(uow txn.UnitOfWork) Option {
	return func(o *options) { o.uow = uow }
}

// WithNotifier sets where spam and approval notifications are delivered.
func WithNotifier(notifier service.Notifier) Option {
	return func(o *options) { o.notifier = notifier }
}

// WithAuthorizer replaces the role-based authorizer.
func WithAuthorizer(auth service.Authorizer) Option {
	return func(o *options) { o.auth = auth }
}

// WithHashCost sets the bcrypt cost for password hashes.
func WithHashCost(cost int) Option {
	return func(o *options) { o.hashCost = cost }
}

// clientImpl represents the concrete implementation of the engine client.
type clientImpl struct {
	repo    *Repository
	service *Service
}

// NewClient builds an engine with the given settings.
func NewClient(settings Settings, logger *zap.Logger, opts ...Option) Client {
	o := &options{
		clock:    clock.System{},
		archive:  models.NopArchive{},
		uow:      txn.NewMemory(),
		notifier: service.NopNotifier{},
		auth:     service.RoleAuthorizer{},
		hashCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(o)
	}

	repo := NewRepository(o.archive, o.clock, logger)
	svc := NewService(repo, settings, o, logger)

	logger.Info("Engine initialized",
		zap.Int("promotionThreshold", settings.Rules.PromotionThreshold),
		zap.Int("spamThreshold", settings.Rules.SpamThreshold),
		zap.Duration("minAge", settings.Rules.MinAge),
		zap.Duration("maxAge", settings.Rules.MaxAge))

	return &clientImpl{
		repo:    repo,
		service: svc,
	}
}

// Model returns the repository containing all model operations.
func (c *clientImpl) Model() *Repository {
	return c.repo
}

// Service returns the service containing all service operations.
func (c *clientImpl) Service() *Service {
	return c.service
}
