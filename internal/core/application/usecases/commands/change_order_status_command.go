package commands

import (
	"errors"

	"formation/internal/core/domain/model/kernel"
	"formation/internal/core/domain/model/order"
	"formation/internal/pkg/errs"
	"formation/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a manual status override by an admin.
// This is the only path into the terminal Cancelled and Refunded statuses,
// and the only way to move a status backwards.
type ChangeOrderStatusCommand struct {
	orderID   kernel.UUID
	newStatus order.Status
	changedBy string
	notes     string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to set an explicit status on
// the order. The status string must be one of the five valid statuses, and
// changedBy must identify the acting admin.
func NewChangeOrderStatusCommand(orderID kernel.UUID, status string, changedBy string, notes string) (ChangeOrderStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	parsedStatus, err := order.StatusFromString(status)
	if err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	if changedBy == "" {
		return ChangeOrderStatusCommand{}, errs.NewValueIsRequiredError("changedBy")
	}

	return ChangeOrderStatusCommand{
		orderID:   orderID,
		newStatus: parsedStatus,
		changedBy: changedBy,
		notes:     notes,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeOrderStatusCommandIsNotConstructed if validation fails.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being overridden.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewStatus returns the status the admin is forcing.
func (c ChangeOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// ChangedBy returns the identifier of the acting admin.
func (c ChangeOrderStatusCommand) ChangedBy() string {
	return c.changedBy
}

// Notes returns the free-text justification for the override.
func (c ChangeOrderStatusCommand) Notes() string {
	return c.notes
}
