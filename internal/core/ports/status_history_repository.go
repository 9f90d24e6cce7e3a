package ports

import (
	"context"

	"formation/internal/core/domain/model/order"
)

// StatusHistoryRepository defines the persistence contract for the
// append-only status audit trail. History rows are only ever added - never
// updated or deleted - so this is the whole interface.
type StatusHistoryRepository interface {
	// Add appends one audit record for a status transition.
	Add(ctx context.Context, change *order.StatusChange) error
}
