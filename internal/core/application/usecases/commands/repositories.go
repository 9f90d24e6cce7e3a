// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"formation/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries:
// the progress-tracking rules require that an event upsert, the derived
// status change, and the audit row land in the database together or not at
// all.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DocumentRepoFactory provides access to the document repository within a transaction.
	DocumentRepoFactory interface {
		DocumentRepository() ports.DocumentRepository
	}

	// StatusHistoryRepoFactory provides access to the status history repository within a transaction.
	StatusHistoryRepoFactory interface {
		StatusHistoryRepository() ports.StatusHistoryRepository
	}

	// OrderUoW manages transactions for operations that touch orders and the
	// audit trail but no documents (manual overrides, reconciliation).
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		StatusHistoryRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions across orders, documents, and the audit
	// trail. Used by the progress toggle and document upload, which read or
	// write all three.
	UoW interface {
		TxManager
		OrderRepoFactory
		DocumentRepoFactory
		StatusHistoryRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
