package types

import "errors"

var (
	// ErrForbidden is returned when the acting user lacks the privilege for an operation.
	ErrForbidden = errors.New("forbidden")
	// ErrDuplicateVote is returned when a user repeats a promote, demote or spam flag.
	ErrDuplicateVote = errors.New("duplicate vote")
	// ErrNotInSpamState is returned when approving a story that is not in the spam state.
	ErrNotInSpamState = errors.New("story is not in spam state")
	// ErrStoryDeleted is returned for any operation on a deleted story.
	ErrStoryDeleted = errors.New("story has been deleted")
	// ErrInvalidScoreDelta is returned when recording a zero score change.
	ErrInvalidScoreDelta = errors.New("score delta must not be zero")
	// ErrFutureTimestamp is returned when a timestamp lies after the current time.
	ErrFutureTimestamp = errors.New("timestamp is in the future")
	// ErrNotFound is returned when a referenced story or user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState is returned when a story's state does not allow the operation.
	ErrInvalidState = errors.New("invalid story state")
	// ErrEmailTaken is returned when registering an email that is already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidComment is returned when a comment body is empty or too long.
	ErrInvalidComment = errors.New("invalid comment")
	// ErrCommentTooSimilar is returned when a comment repeats a recent comment on the same story.
	ErrCommentTooSimilar = errors.New("comment too similar to a recent comment")
	// ErrInvalidSubmission is returned when a story is submitted without a title or URL.
	ErrInvalidSubmission = errors.New("invalid story submission")
	// ErrInvalidEmail is returned when registering with a malformed email address.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrWeakPassword is returned when a password is shorter than the minimum length.
	ErrWeakPassword = errors.New("password too short")
	// ErrInvalidCredentials is returned when authentication fails.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
