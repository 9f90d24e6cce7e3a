package jobs

import (
	"context"
	"log/slog"

	"formation/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StatusReconciliationJob periodically repairs orders whose status drifted
// from their recorded progress. Runs every minute over all active orders.
type StatusReconciliationJob struct {
	handler commands.ReconcileOrderStatusesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStatusReconciliationJob creates a new job for reconciling order statuses.
// Uses ReconcileOrderStatusesCommandHandler to re-derive statuses every minute.
func NewStatusReconciliationJob(
	handler commands.ReconcileOrderStatusesCommandHandler,
	logger *slog.Logger,
) *StatusReconciliationJob {
	return &StatusReconciliationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "status_reconciliation_job"),
	}
}

// Start begins the status reconciliation job to run once a minute.
func (j *StatusReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewReconcileOrderStatusesCommand()

		// Repairs run per order; a partial failure still reports the
		// orders that were repaired.
		reconciled, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Status reconciliation job failed", "error", err)
		}

		if reconciled > 0 {
			j.logger.InfoContext(ctx, "Reconciled drifted order statuses", "count", reconciled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status reconciliation job started (running every minute)")
	return nil
}

// Stop stops the status reconciliation job.
func (j *StatusReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Status reconciliation job stopped")
}
