package database

import (
	"github.com/robalyx/headline/internal/clock"
	"github.com/robalyx/headline/internal/database/models"
	"go.uber.org/zap"
)

// Repository provides access to all engine stores.
type Repository struct {
	user        *models.UserModel
	story       *models.StoryModel
	vote        *models.VoteModel
	ledger      *models.LedgerModel
	tag         *models.TagModel
	comment     *models.CommentModel
	activity    *models.ActivityModel
	achievement *models.AchievementModel
}

// NewRepository creates a repository instance with all models.
func NewRepository(archive models.Archive, clk clock.Clock, logger *zap.Logger) *Repository {
	return &Repository{
		user:        models.NewUser(logger),
		story:       models.NewStory(logger),
		vote:        models.NewVote(logger),
		ledger:      models.NewLedger(archive, clk, logger),
		tag:         models.NewTag(logger),
		comment:     models.NewComment(logger),
		activity:    models.NewActivity(archive, logger),
		achievement: models.NewAchievement(logger),
	}
}

// User returns the user model repository.
func (r *Repository) User() *models.UserModel {
	return r.user
}

// Story returns the story model repository.
func (r *Repository) Story() *models.StoryModel {
	return r.story
}

// Vote returns the vote registry.
func (r *Repository) Vote() *models.VoteModel {
	return r.vote
}

// Ledger returns the score ledger.
func (r *Repository) Ledger() *models.LedgerModel {
	return r.ledger
}

// Tag returns the tag model repository.
func (r *Repository) Tag() *models.TagModel {
	return r.tag
}

// Comment returns the comment model repository.
func (r *Repository) Comment() *models.CommentModel {
	return r.comment
}

// Activity returns the activity log repository.
func (r *Repository) Activity() *models.ActivityModel {
	return r.activity
}

// Achievement returns the achievement model repository.
func (r *Repository) Achievement() *models.AchievementModel {
	return r.achievement
}
