package commands

import (
	"context"
	"fmt"
	"time"

	"formation/internal/core/domain/services"
)

// UpdateProgressCommandHandler orchestrates a single progress toggle: it
// enforces the document gate, upserts the progress event, re-derives the
// order status, and appends the audit record - all within one transaction so
// concurrent toggles on the same order serialize at the database.
//
// Example:
//
//	handler := NewUpdateProgressCommandHandler(uowFactory)
//	cmd, _ := NewUpdateProgressCommand(orderID, "LLC_APPROVED", true)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrDocumentRequired):
//	    // tell the admin which document to upload first
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown order
//	case err != nil:
//	    // persistence failure, nothing was applied
//	}
type UpdateProgressCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateProgressCommandHandler creates a handler for progress toggles.
// Requires a UoWFactory for coordinating transactional updates across the
// order, document, and history repositories.
func NewUpdateProgressCommandHandler(uowFactory UoWFactory) UpdateProgressCommandHandler {
	return UpdateProgressCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the progress toggle command.
// When completing a gated step, the gate is checked against the order's
// documents before any write. The event upsert, the derived status change,
// and the history row commit together or roll back together.
func (h UpdateProgressCommandHandler) Handle(ctx context.Context, command UpdateProgressCommand) error {
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

	if command.Completed() {
		documents, docErr := uow.DocumentRepository().GetAllForOrder(ctx, command.OrderID())
		if docErr != nil {
			return docErr
		}

		if gateErr := services.NewDocumentGate().EnsureCanComplete(command.EventType(), documents); gateErr != nil {
			return gateErr
		}
	}

	now := time.Now()
	if err = aggregate.SetProgress(command.EventType(), command.Completed(), now); err != nil {
		return err
	}

	state := "uncompleted"
	if command.Completed() {
		state = "completed"
	}
	notes := fmt.Sprintf("Status updated based on progress: %s %s", command.EventType(), state)

	change, err := aggregate.DeriveStatus(notes, now)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if change != nil {
		if err = uow.StatusHistoryRepository().Add(ctx, change); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
