package commands

import (
	"errors"

	"formation/internal/core/domain/model/kernel"
	"formation/internal/core/domain/model/order"
	"formation/internal/pkg/guard"
)

var ErrUpdateProgressCommandIsNotConstructed = errors.New(
	"UpdateProgressCommand must be created via NewUpdateProgressCommand constructor",
)

// UpdateProgressCommand represents an admin toggling a single fulfillment
// step of an order to a desired completion state. The step's event type is
// validated against the fixed enum before anything touches persistence.
//
// Example:
//
//	cmd, err := NewUpdateProgressCommand(orderID, "LLC_FILED", true)
//	if err != nil {
//	    return err // unknown event type
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // DocumentRequired, OrderNotFound, or a persistence failure
//	}
type UpdateProgressCommand struct {
	orderID   kernel.UUID
	eventType order.EventType
	completed bool

	guard guard.ConstructorGuard
}

// NewUpdateProgressCommand creates a command to toggle the given step.
// The eventType string must be one of the seven valid event types; anything
// else fails fast with a ValueIsInvalidError.
func NewUpdateProgressCommand(orderID kernel.UUID, eventType string, completed bool) (UpdateProgressCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateProgressCommand{}, err
	}

	parsedEventType, err := order.EventTypeFromString(eventType)
	if err != nil {
		return UpdateProgressCommand{}, err
	}

	return UpdateProgressCommand{
		orderID:   orderID,
		eventType: parsedEventType,
		completed: completed,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateProgressCommandIsNotConstructed if validation fails.
func (c UpdateProgressCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProgressCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being updated.
func (c UpdateProgressCommand) OrderID() kernel.UUID {
	return c.orderID
}

// EventType returns the fulfillment step being toggled.
func (c UpdateProgressCommand) EventType() order.EventType {
	return c.eventType
}

// Completed returns the desired completion state.
func (c UpdateProgressCommand) Completed() bool {
	return c.completed
}
