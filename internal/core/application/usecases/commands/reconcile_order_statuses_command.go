package commands

import (
	"errors"

	"formation/internal/pkg/guard"
)

var ErrReconcileOrderStatusesCommandIsNotConstructed = errors.New(
	"ReconcileOrderStatusesCommand must be created via NewReconcileOrderStatusesCommand constructor",
)

// ReconcileOrderStatusesCommand triggers a sweep over active orders,
// re-running the status deriver against their recorded progress. This repairs
// orders whose status drifted from their events - e.g. rows fixed by hand in
// the database, or historical data written before the transactional path
// existed.
type ReconcileOrderStatusesCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileOrderStatusesCommand creates a new command to trigger the
// reconciliation sweep. This is a parameterless command.
func NewReconcileOrderStatusesCommand() ReconcileOrderStatusesCommand {
	return ReconcileOrderStatusesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrReconcileOrderStatusesCommandIsNotConstructed if validation fails.
func (c ReconcileOrderStatusesCommand) Validate() error {
	return c.guard.Validate(ErrReconcileOrderStatusesCommandIsNotConstructed)
}
