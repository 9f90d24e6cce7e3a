// Package ports defines the persistence and storage contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"formation/internal/core/domain/model/kernel"
	"formation/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are always loaded and saved together with their progress events.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including its
	// progress events and status.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, with its
	// complete progress event set. Returns an ObjectNotFoundError when the
	// order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatuses retrieves all orders currently in one of the given
	// statuses, with their progress events. Used by the status
	// reconciliation job to find orders whose status may have drifted from
	// their recorded progress.
	GetAllInStatuses(ctx context.Context, statuses ...order.Status) ([]*order.Order, error)
}
