package commands

import (
	"context"
	"errors"
	"time"

	"formation/internal/core/domain/model/kernel"
	"formation/internal/core/domain/model/order"
)

// ReconcileOrderStatusesCommandHandler sweeps orders in PendingProcessing or
// Processing and re-derives their status from recorded progress. Completed
// and terminal orders are skipped: the deriver never moves a status
// backwards, so there is nothing to reconcile for them.
type ReconcileOrderStatusesCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewReconcileOrderStatusesCommandHandler creates a handler for the
// reconciliation sweep.
func NewReconcileOrderStatusesCommandHandler(uowFactory OrderUoWFactory) ReconcileOrderStatusesCommandHandler {
	return ReconcileOrderStatusesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reconciliation command. Each order is repaired in its
// own transaction, so one failing order does not roll back the others; the
// repair uses the same locked read-derive-write path as the toggle commands.
// Returns the number of orders whose status was repaired, together with any
// per-order failures joined into a single error.
func (h ReconcileOrderStatusesCommandHandler) Handle(ctx context.Context, command ReconcileOrderStatusesCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	orders, err := h.uowFactory.Create().
		OrderRepository().
		GetAllInStatuses(ctx, order.PendingProcessing, order.Processing)
	if err != nil {
		return 0, err
	}

	reconciled := 0
	failures := make([]error, 0)
	now := time.Now()

	for _, stale := range orders {
		repaired, repairErr := h.reconcileOrder(ctx, stale.ID(), now)
		if repairErr != nil {
			failures = append(failures, repairErr)
			continue
		}
		if repaired {
			reconciled++
		}
	}

	return reconciled, errors.Join(failures...)
}

// reconcileOrder re-reads one order inside a fresh transaction and re-derives
// its status. Reports whether a repair was written.
func (h ReconcileOrderStatusesCommandHandler) reconcileOrder(
	ctx context.Context,
	orderID kernel.UUID,
	now time.Time,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return false, err
	}

	change, err := aggregate.DeriveStatus("Status reconciled from recorded progress", now)
	if err != nil {
		return false, err
	}
	if change == nil {
		return false, nil
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return false, err
	}
	if err = uow.StatusHistoryRepository().Add(ctx, change); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
