package notify

import (
	"context"

	"github.com/robalyx/headline/internal/database/types"
	"go.uber.org/zap"
)

// LogNotifier writes notifications to the log.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier that logs each event.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notify_log")}
}

// NotifySpamFlagged logs that a story was suspended as spam.
func (n *LogNotifier) NotifySpamFlagged(_ context.Context, story *types.Story) {
	n.logger.Warn("Story suspended as spam",
		zap.String("storyID", story.ID),
		zap.String("authorID", story.AuthorID),
		zap.String("title", story.Title))
}

// NotifyApproved logs that a story was cleared by an administrator.
func (n *LogNotifier) NotifyApproved(_ context.Context, story *types.Story) {
	n.logger.Info("Story approved",
		zap.String("storyID", story.ID),
		zap.String("authorID", story.AuthorID),
		zap.String("title", story.Title))
}
