package order

import (
	"time"

	"formation/internal/core/domain/model/kernel"
	"formation/internal/pkg/errs"
)

// SystemActor is the sentinel recorded as ChangedBy on status transitions
// produced by the automatic deriver, keeping the audit trail distinguishable
// from manual admin overrides.
const SystemActor = "system"

// StatusChange is an append-only audit record of a single order status
// transition. Records are created exactly once per transition and never
// mutated or deleted.
type StatusChange struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	PreviousStatus Status
	NewStatus      Status
	ChangedBy      string
	Notes          string
	OccurredAt     time.Time
}

// NewStatusChange creates an audit record for a transition on the given order.
// Both statuses must be valid and ChangedBy must not be empty.
func NewStatusChange(
	orderID kernel.UUID,
	previousStatus Status,
	newStatus Status,
	changedBy string,
	notes string,
	occurredAt time.Time,
) (*StatusChange, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := previousStatus.Validate(); err != nil {
		return nil, err
	}
	if err := newStatus.Validate(); err != nil {
		return nil, err
	}
	if changedBy == "" {
		return nil, errs.NewValueIsRequiredError("changedBy")
	}

	return &StatusChange{
		ID:             kernel.NewUUID(),
		OrderID:        orderID,
		PreviousStatus: previousStatus,
		NewStatus:      newStatus,
		ChangedBy:      changedBy,
		Notes:          notes,
		OccurredAt:     occurredAt,
	}, nil
}
