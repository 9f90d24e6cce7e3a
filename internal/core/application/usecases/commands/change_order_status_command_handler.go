package commands

import (
	"context"
	"time"
)

// ChangeOrderStatusCommandHandler applies a manual status override and
// records the audit row in the same transaction. Setting the status an order
// already has is a no-op: nothing is written and no history row appears.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewChangeOrderStatusCommandHandler creates a handler for manual status
// overrides.
func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status override command.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, command ChangeOrderStatusCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	change, err := aggregate.OverrideStatus(command.NewStatus(), command.ChangedBy(), command.Notes(), time.Now())
	if err != nil {
		return err
	}

	if change == nil {
		return uow.Commit(ctx)
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.StatusHistoryRepository().Add(ctx, change); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
