package usecase

import (
	"context"
	"fmt"

	"github.com/polkiloo/homekitchen/internal/domain/model"
	"github.com/polkiloo/homekitchen/internal/domain/repository"
)

// BackupWriter persists a snapshot and returns where it was stored.
type BackupWriter interface {
	Write(ctx context.Context, snapshot *model.Snapshot) (string, error)
}

// BackupUseCase copies the store to a backup location.
type BackupUseCase struct {
	snapshots repository.SnapshotRepository
	writer    BackupWriter
}

// NewBackupUseCase constructs BackupUseCase.
func NewBackupUseCase(snapshots repository.SnapshotRepository, writer BackupWriter) *BackupUseCase {
	return &BackupUseCase{snapshots: snapshots, writer: writer}
}

// Backup takes a consistent snapshot and writes it out.
func (u *BackupUseCase) Backup(ctx context.Context) (string, error) {
	snapshot, err := u.snapshots.Snapshot(ctx)
	if err != nil {
		return "", storeError("snapshot store", err)
	}
	path, err := u.writer.Write(ctx, snapshot)
	if err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return path, nil
}
