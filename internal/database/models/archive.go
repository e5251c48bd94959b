package models

import (
	"context"

	"github.com/robalyx/headline/internal/database/types"
)

// Archive mirrors audit records to durable storage.
// Writes happen inside the caller's unit of work, so a failed write aborts the operation.
type Archive interface {
	SaveActivity(ctx context.Context, log *types.ActivityLog) error
	SaveScoreEntry(ctx context.Context, entry *types.ScoreEntry) error
}

// NopArchive discards every record.
type NopArchive struct{}

func (NopArchive) SaveActivity(context.Context, *types.ActivityLog) error   { return nil }
func (NopArchive) SaveScoreEntry(context.Context, *types.ScoreEntry) error { return nil }
