package domain

import (
	"context"

	"gorm.io/gorm"
)

// Recorder accepts conference events for asynchronous persistence. Recording
// is fire and forget: callers never block on storage and events may be
// dropped under backpressure.
type Recorder interface {
	Record(ctx context.Context, action string, metadata map[string]any)
}

type Repository interface {
	InsertBatch(ctx context.Context, db *gorm.DB, events []*Event) error
	List(ctx context.Context, db *gorm.DB, action string, limit int) ([]*Event, error)
}
