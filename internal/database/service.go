package database

import (
	"github.com/robalyx/headline/internal/database/service"
	"github.com/robalyx/headline/internal/database/types"
	"go.uber.org/zap"
)

// Service provides access to all business logic services.
type Service struct {
	user        *service.UserService
	story       *service.StoryService
	tag         *service.TagService
	score       *service.ScoreService
	lifecycle   *service.LifecycleService
	moderation  *service.ModerationService
	achievement *service.AchievementService
}

// NewService creates a new service instance with all services.
func NewService(repository *Repository, settings Settings, opts *options, logger *zap.Logger) *Service {
	uow, clk := opts.uow, opts.clock
	locks := service.NewStoryLocks()

	tagService := service.NewTag(repository.Tag(), logger)
	lifecycle := service.NewLifecycle(repository.Vote(), settings.Rules, logger)
	score := service.NewScore(repository.Ledger(), repository.User(), settings.Weights, clk, logger)
	achievement := service.NewAchievement(
		repository.Achievement(), repository.Vote(), score, settings.Rules, clk, logger,
	)

	return &Service{
		user: service.NewUser(
			uow, repository, tagService, opts.auth, clk, logger, service.WithHashCost(opts.hashCost),
		),
		story: service.NewStory(
			uow, repository, lifecycle, score, achievement, tagService, locks, clk, logger,
		),
		tag:       tagService,
		score:     score,
		lifecycle: lifecycle,
		moderation: service.NewModeration(
			uow, repository, lifecycle, score, achievement, tagService, opts.auth, opts.notifier, locks, clk, logger,
		),
		achievement: achievement,
	}
}

// Settings holds the thresholds and weights the engine is constructed with.
type Settings struct {
	Rules   types.Rules
	Weights types.Weights
}

// DefaultSettings returns the built-in thresholds and weights.
func DefaultSettings() Settings {
	return Settings{
		Rules:   types.DefaultRules(),
		Weights: types.DefaultWeights(),
	}
}

// User returns the user service.
func (s *Service) User() *service.UserService {
	return s.user
}

// Story returns the story service.
func (s *Service) Story() *service.StoryService {
	return s.story
}

// Tag returns the tag service.
func (s *Service) Tag() *service.TagService {
	return s.tag
}

// Score returns the score service.
func (s *Service) Score() *service.ScoreService {
	return s.score
}

// Lifecycle returns the lifecycle service.
func (s *Service) Lifecycle() *service.LifecycleService {
	return s.lifecycle
}

// Moderation returns the moderation service.
func (s *Service) Moderation() *service.ModerationService {
	return s.moderation
}

// Achievement returns the achievement service.
func (s *Service) Achievement() *service.AchievementService {
	return s.achievement
}
