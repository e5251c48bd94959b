package service

import (
	"context"

	"github.com/robalyx/headline/internal/database/types"
)

// Notifier delivers moderation events after a transition has committed.
// Delivery is fire-and-forget: implementations handle their own failures.
type Notifier interface {
	NotifySpamFlagged(ctx context.Context, story *types.Story)
	NotifyApproved(ctx context.Context, story *types.Story)
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) NotifySpamFlagged(context.Context, *types.Story) {}
func (NopNotifier) NotifyApproved(context.Context, *types.Story)    {}
