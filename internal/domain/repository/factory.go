package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Menu() MenuRepository
	Orders() OrderRepository
	UnitOfWork() UnitOfWork
	Snapshots() SnapshotRepository
}

// Backend is a store implementation with its lifecycle.
type Backend interface {
	Factory
	HealthCheck(ctx context.Context) error
	Close()
}
