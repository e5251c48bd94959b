package service

import "github.com/robalyx/headline/internal/database/models"

// Models gives services access to the stores they operate on.
type Models interface {
	User() *models.UserModel
	Story() *models.StoryModel
	Vote() *models.VoteModel
	Ledger() *models.LedgerModel
	Tag() *models.TagModel
	Comment() *models.CommentModel
	Activity() *models.ActivityModel
	Achievement() *models.AchievementModel
}
