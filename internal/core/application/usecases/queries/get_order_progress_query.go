// Package queries contains read operations for the CQRS architecture.
// Query handlers read the database directly and return plain response
// structures, bypassing the domain repositories used by the write side.
package queries

import (
	"errors"
	"time"

	"formation/internal/core/domain/model/kernel"
	"formation/internal/pkg/guard"
)

var ErrGetOrderProgressQueryIsNotConstructed = errors.New(
	"GetOrderProgressQuery must be created via NewGetOrderProgressQuery constructor",
)

// GetOrderProgressQuery retrieves the fulfillment checklist for one order:
// which steps the order requires, which are completed, what document gates
// each step, and the full status transition history.
type GetOrderProgressQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderProgressQuery creates a query for the given order's checklist.
func NewGetOrderProgressQuery(orderID kernel.UUID) (GetOrderProgressQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderProgressQuery{}, err
	}

	return GetOrderProgressQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderProgressQueryIsNotConstructed if validation fails.
func (q GetOrderProgressQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderProgressQueryIsNotConstructed)
}

// OrderID returns the identifier of the order being inspected.
func (q GetOrderProgressQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderProgressQueryResponse represents the complete progress view of an
// order for the admin checklist.
type GetOrderProgressQueryResponse struct {
	OrderID     kernel.UUID
	CompanyName string
	Status      string
	CompletedAt *time.Time
	Steps       []ProgressStepResponse
	History     []StatusChangeResponse
}

// ProgressStepResponse represents one row of the fulfillment checklist.
// RequiredDocument is empty for ungated steps; HasDocument reports whether
// any document of the gating type exists for the order.
type ProgressStepResponse struct {
	EventType        string
	Required         bool
	Completed        bool
	CompletedAt      *time.Time
	RequiredDocument string
	HasDocument      bool
}

// StatusChangeResponse represents one audit record of a status transition.
type StatusChangeResponse struct {
	PreviousStatus string
	NewStatus      string
	ChangedBy      string
	Notes          string
	OccurredAt     time.Time
}
