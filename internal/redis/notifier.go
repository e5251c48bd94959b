package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/rueidis"
	"github.com/robalyx/headline/internal/clock"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/pkg/utils"
	"go.uber.org/zap"
)

const (
	// EventChannel is the pub/sub channel moderation events are published on.
	EventChannel = "headline:moderation:events"
	// ReviewQueueKey is the list of stories awaiting moderator review, newest first.
	ReviewQueueKey = "headline:moderation:review"
)

// Event types published on EventChannel.
const (
	EventSpamFlagged = "spam_flagged"
	EventApproved    = "approved"
)

// Event is the payload published for each moderation notification.
type Event struct {
	Type     string    `json:"type"`
	StoryID  string    `json:"storyId"`
	AuthorID string    `json:"authorId"`
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	At       time.Time `json:"at"`
}

// Notifier publishes moderation notifications to Redis.
// Spam suspensions are also pushed onto the moderator review queue.
type Notifier struct {
	client   rueidis.Client
	clock    clock.Clock
	queueCap int64
	retry    utils.RetryOptions
	logger   *zap.Logger
}

// NewNotifier creates a Redis notifier. A queueCap of zero leaves the review queue unbounded.
func NewNotifier(client rueidis.Client, clk clock.Clock, queueCap int64, logger *zap.Logger) *Notifier {
	return &Notifier{
		client:   client,
		clock:    clk,
		queueCap: queueCap,
		retry:    utils.GetNotifyRetryOptions(),
		logger:   logger.Named("redis_notifier"),
	}
}

// NotifySpamFlagged publishes the suspension and queues the story for review.
func (n *Notifier) NotifySpamFlagged(ctx context.Context, story *types.Story) {
	event := n.event(EventSpamFlagged, story)
	if err := n.deliver(ctx, event, true); err != nil {
		n.logger.Error("Failed to deliver spam notification",
			zap.String("storyID", story.ID),
			zap.Error(err))
	}
}

// NotifyApproved publishes the approval.
func (n *Notifier) NotifyApproved(ctx context.Context, story *types.Story) {
	event := n.event(EventApproved, story)
	if err := n.deliver(ctx, event, false); err != nil {
		n.logger.Error("Failed to deliver approval notification",
			zap.String("storyID", story.ID),
			zap.Error(err))
	}
}

// ReviewQueue returns up to limit queued events, newest first.
func (n *Notifier) ReviewQueue(ctx context.Context, limit int64) ([]*Event, error) {
	if limit <= 0 {
		return nil, nil
	}

	items, err := n.client.Do(ctx, n.client.B().Lrange().Key(ReviewQueueKey).Start(0).Stop(limit-1).Build()).AsStrSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to read review queue: %w", err)
	}

	events := make([]*Event, 0, len(items))
	for _, item := range items {
		var event Event
		if err := sonic.UnmarshalString(item, &event); err != nil {
			n.logger.Warn("Skipping malformed review queue entry", zap.Error(err))
			continue
		}
		events = append(events, &event)
	}
	return events, nil
}

func (n *Notifier) event(kind string, story *types.Story) *Event {
	return &Event{
		Type:     kind,
		StoryID:  story.ID,
		AuthorID: story.AuthorID,
		Title:    story.Title,
		URL:      story.URL,
		At:       n.clock.Now(),
	}
}

func (n *Notifier) deliver(ctx context.Context, event *Event, enqueue bool) error {
	payload, err := sonic.MarshalString(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	_, err = utils.WithRetry(ctx, func() (struct{}, error) {
		for _, resp := range n.client.DoMulti(ctx, n.commands(payload, enqueue)...) {
			if err := resp.Error(); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	}, n.retry)
	return err
}

// commands builds a fresh command batch; rueidis recycles commands after they run.
func (n *Notifier) commands(payload string, enqueue bool) []rueidis.Completed {
	cmds := []rueidis.Completed{
		n.client.B().Publish().Channel(EventChannel).Message(payload).Build(),
	}
	if enqueue {
		cmds = append(cmds, n.client.B().Lpush().Key(ReviewQueueKey).Element(payload).Build())
		if n.queueCap > 0 {
			cmds = append(cmds, n.client.B().Ltrim().Key(ReviewQueueKey).Start(0).Stop(n.queueCap-1).Build())
		}
	}
	return cmds
}
