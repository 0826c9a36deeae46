package repository

import (
	"context"

	"github.com/polkiloo/homekitchen/internal/domain/model"
)

// SnapshotRepository takes consistent copies of the whole store.
type SnapshotRepository interface {
	Snapshot(ctx context.Context) (*model.Snapshot, error)
}
