package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/robalyx/headline/internal/clock"
	"github.com/robalyx/headline/internal/database"
	"github.com/robalyx/headline/internal/database/service"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/internal/database/types/enum"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu       sync.Mutex
	spam     []string
	approved []string
}

func (n *recordingNotifier) NotifySpamFlagged(_ context.Context, story *types.Story) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.spam = append(n.spam, story.ID)
}

func (n *recordingNotifier) NotifyApproved(_ context.Context, story *types.Story) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.approved = append(n.approved, story.ID)
}

func (n *recordingNotifier) spamIDs() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.spam...)
}

func (n *recordingNotifier) approvedIDs() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.approved...)
}

type harness struct {
	client     database.Client
	clock      *clock.Mock
	notifier   *recordingNotifier
	admin      *types.User
	author     *types.User
	registered int
}

func testSettings() database.Settings {
	return database.Settings{
		Rules: types.Rules{
			PromotionThreshold: 3,
			SpamThreshold:      3,
			MinAge:             2 * time.Hour,
			MaxAge:             72 * time.Hour,
			PopularStoryVotes:  5,
		},
		Weights: types.Weights{
			Post:    5,
			Promote: 2,
			Demote:  -1,
			Comment: 1,
		},
	}
}

func newHarness(t *testing.T, settings database.Settings, opts ...database.Option) *harness {
	t.Helper()

	h := &harness{
		clock:    clock.NewMock(epoch),
		notifier: &recordingNotifier{},
	}
	opts = append([]database.Option{
		database.WithClock(h.clock),
		database.WithNotifier(h.notifier),
		database.WithHashCost(bcrypt.MinCost),
	}, opts...)
	h.client = database.NewClient(settings, zap.NewNop(), opts...)

	var err error
	h.admin, err = h.accounts().RegisterExternal(t.Context(), "admin@example.com", service.WithRole(enum.UserRoleAdministrator))
	require.NoError(t, err)
	h.author = h.member(t)

	return h
}

func (h *harness) accounts() *service.UserService {
	return h.client.Service().User()
}

func (h *harness) moderation() *service.ModerationService {
	return h.client.Service().Moderation()
}

func (h *harness) stories() *service.StoryService {
	return h.client.Service().Story()
}

func (h *harness) score() *service.ScoreService {
	return h.client.Service().Score()
}

// member registers a new ordinary user.
func (h *harness) member(t *testing.T) *types.User {
	t.Helper()
	h.registered++
	user, err := h.accounts().RegisterExternal(t.Context(), fmt.Sprintf("user%d@example.com", h.registered))
	require.NoError(t, err)
	return user
}

// members registers n ordinary users.
func (h *harness) members(t *testing.T, n int) []*types.User {
	t.Helper()
	result := make([]*types.User, n)
	for i := range result {
		result[i] = h.member(t)
	}
	return result
}

// submit creates a story by the harness author.
func (h *harness) submit(t *testing.T) *types.Story {
	t.Helper()
	story, err := h.stories().Submit(t.Context(), h.author, types.Submission{
		Title: "Go 1.24 released",
		URL:   "https://go.dev/blog/go1.24",
		Tags:  []string{"Go", "Release Notes"},
	})
	require.NoError(t, err)
	return story
}

func (h *harness) status(t *testing.T, storyID string) enum.StoryStatus {
	t.Helper()
	status, err := h.stories().EffectiveStatus(storyID)
	require.NoError(t, err)
	return status
}
