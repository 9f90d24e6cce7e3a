package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Every mutation in the progress-tracking core touches several tables at once
// (event upsert, order status, history append) and those writes must land
// together; repositories obtained from an active unit of work are bound to
// the same database transaction.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// DocumentRepository returns a DocumentRepository bound to the current transaction.
	DocumentRepository() DocumentRepository

	// StatusHistoryRepository returns a StatusHistoryRepository bound to the current transaction.
	StatusHistoryRepository() StatusHistoryRepository
}
