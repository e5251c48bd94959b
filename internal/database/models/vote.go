package models

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/robalyx/headline/internal/database/txn"
	"github.com/robalyx/headline/internal/database/types"
	"go.uber.org/zap"
)

// voteKind selects one of a story's vote sets.
type voteKind int

const (
	votePromote voteKind = iota
	voteDemote
	voteSpamFlag
)

func (k voteKind) String() string {
	switch k {
	case votePromote:
		return "promote"
	case voteDemote:
		return "demote"
	case voteSpamFlag:
		return "spam_flag"
	default:
		return "unknown"
	}
}

// storyVotes holds the voter sets of one story.
type storyVotes struct {
	mu   sync.Mutex
	sets [3]map[string]time.Time
}

func newStoryVotes() *storyVotes {
	return &storyVotes{sets: [3]map[string]time.Time{{}, {}, {}}}
}

// VoteModel is the registry of promoters, demoters and spam flaggers per story.
type VoteModel struct {
	mu      sync.RWMutex
	stories map[string]*storyVotes
	logger  *zap.Logger
}

// NewVote creates an empty vote registry.
func NewVote(logger *zap.Logger) *VoteModel {
	return &VoteModel{
		stories: make(map[string]*storyVotes),
		logger:  logger.Named("db_vote"),
	}
}

// HasPromoted reports whether the user promoted the story.
func (m *VoteModel) HasPromoted(storyID, userID string) bool {
	return m.has(storyID, userID, votePromote)
}

// HasDemoted reports whether the user demoted the story.
func (m *VoteModel) HasDemoted(storyID, userID string) bool {
	return m.has(storyID, userID, voteDemote)
}

// HasFlaggedSpam reports whether the user flagged the story as spam.
func (m *VoteModel) HasFlaggedSpam(storyID, userID string) bool {
	return m.has(storyID, userID, voteSpamFlag)
}

// RegisterPromote adds the user to the story's promoters.
// It does not touch the demoter set.
func (m *VoteModel) RegisterPromote(ctx context.Context, storyID, userID string, at time.Time) error {
	return m.register(ctx, storyID, userID, votePromote, at)
}

// RegisterDemote adds the user to the story's demoters.
// It does not touch the promoter set.
func (m *VoteModel) RegisterDemote(ctx context.Context, storyID, userID string, at time.Time) error {
	return m.register(ctx, storyID, userID, voteDemote, at)
}

// RegisterSpamFlag adds the user to the story's spam flaggers.
func (m *VoteModel) RegisterSpamFlag(ctx context.Context, storyID, userID string, at time.Time) error {
	return m.register(ctx, storyID, userID, voteSpamFlag, at)
}

// RemovePromote drops the user's promote. It reports whether one was present.
func (m *VoteModel) RemovePromote(ctx context.Context, storyID, userID string) bool {
	return m.remove(ctx, storyID, userID, votePromote)
}

// RemoveDemote drops the user's demote. It reports whether one was present.
func (m *VoteModel) RemoveDemote(ctx context.Context, storyID, userID string) bool {
	return m.remove(ctx, storyID, userID, voteDemote)
}

// VoteCount returns promoters minus demoters.
func (m *VoteModel) VoteCount(storyID string) int {
	promotes, demotes, _ := m.Counts(storyID)
	return promotes - demotes
}

// SpamFlagCount returns the number of distinct spam flaggers.
func (m *VoteModel) SpamFlagCount(storyID string) int {
	_, _, flags := m.Counts(storyID)
	return flags
}

// Counts returns the sizes of the promoter, demoter and flagger sets from one snapshot.
func (m *VoteModel) Counts(storyID string) (int, int, int) {
	v, ok := m.lookup(storyID)
	if !ok {
		return 0, 0, 0
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.sets[votePromote]), len(v.sets[voteDemote]), len(v.sets[voteSpamFlag])
}

// Promoters returns the IDs of users who promoted the story.
func (m *VoteModel) Promoters(storyID string) []string {
	return m.members(storyID, votePromote)
}

// Demoters returns the IDs of users who demoted the story.
func (m *VoteModel) Demoters(storyID string) []string {
	return m.members(storyID, voteDemote)
}

// Clear removes every vote and flag of the story.
func (m *VoteModel) Clear(ctx context.Context, storyID string) {
	m.mu.Lock()
	v, ok := m.stories[storyID]
	delete(m.stories, storyID)
	m.mu.Unlock()

	if !ok {
		return
	}

	txn.Record(ctx, func() {
		m.mu.Lock()
		m.stories[storyID] = v
		m.mu.Unlock()
	})

	m.logger.Debug("Cleared story votes", zap.String("storyID", storyID))
}

// register checks and inserts in one critical section.
func (m *VoteModel) register(ctx context.Context, storyID, userID string, kind voteKind, at time.Time) error {
	v := m.votesFor(storyID)

	v.mu.Lock()
	if _, exists := v.sets[kind][userID]; exists {
		v.mu.Unlock()
		return types.ErrDuplicateVote
	}
	v.sets[kind][userID] = at
	v.mu.Unlock()

	txn.Record(ctx, func() {
		v.mu.Lock()
		delete(v.sets[kind], userID)
		v.mu.Unlock()
	})

	m.logger.Debug("Registered vote",
		zap.String("storyID", storyID),
		zap.String("userID", userID),
		zap.String("kind", kind.String()))

	return nil
}

func (m *VoteModel) remove(ctx context.Context, storyID, userID string, kind voteKind) bool {
	v, ok := m.lookup(storyID)
	if !ok {
		return false
	}

	v.mu.Lock()
	at, exists := v.sets[kind][userID]
	delete(v.sets[kind], userID)
	v.mu.Unlock()

	if !exists {
		return false
	}

	txn.Record(ctx, func() {
		v.mu.Lock()
		v.sets[kind][userID] = at
		v.mu.Unlock()
	})

	m.logger.Debug("Removed vote",
		zap.String("storyID", storyID),
		zap.String("userID", userID),
		zap.String("kind", kind.String()))

	return true
}

func (m *VoteModel) has(storyID, userID string, kind voteKind) bool {
	v, ok := m.lookup(storyID)
	if !ok {
		return false
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	_, exists := v.sets[kind][userID]
	return exists
}

func (m *VoteModel) members(storyID string, kind voteKind) []string {
	v, ok := m.lookup(storyID)
	if !ok {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	ids := make([]string, 0, len(v.sets[kind]))
	for id := range v.sets[kind] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (m *VoteModel) lookup(storyID string) (*storyVotes, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.stories[storyID]
	return v, ok
}

func (m *VoteModel) votesFor(storyID string) *storyVotes {
	if v, ok := m.lookup(storyID); ok {
		return v
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.stories[storyID]; ok {
		return v
	}
	v := newStoryVotes()
	m.stories[storyID] = v
	return v
}
