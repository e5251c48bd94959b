package service

import (
	"slices"
	"sync"
)

type storyLock struct {
	mu   sync.Mutex
	refs int
}

// StoryLocks hands out one mutex per story so different stories never contend.
// Entries live only while a caller holds or waits for them.
type StoryLocks struct {
	mu    sync.Mutex
	locks map[string]*storyLock
}

// NewStoryLocks creates an empty lock table.
func NewStoryLocks() *StoryLocks {
	return &StoryLocks{locks: make(map[string]*storyLock)}
}

// Lock acquires the story's mutex and returns the matching unlock function.
func (l *StoryLocks) Lock(storyID string) func() {
	l.mu.Lock()
	entry, ok := l.locks[storyID]
	if !ok {
		entry = &storyLock{}
		l.locks[storyID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, storyID)
		}
		l.mu.Unlock()
	}
}

// LockAll acquires the mutexes of several stories in ID order and returns one unlock function.
func (l *StoryLocks) LockAll(storyIDs []string) func() {
	ids := slices.Clone(storyIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	unlocks := make([]func(), 0, len(ids))
	for _, id := range ids {
		unlocks = append(unlocks, l.Lock(id))
	}

	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}

// Len returns the number of stories currently locked or awaited.
func (l *StoryLocks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
