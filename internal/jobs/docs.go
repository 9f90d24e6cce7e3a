// Package jobs provides scheduled background tasks for the formation service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order processing.
//
// # Available Jobs
//
// 1. StatusReconciliationJob - Runs every minute to re-derive the status of
// active orders from their recorded progress, repairing any drift between
// the two (for example after a manual database edit).
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reconciliation job uses the cron expression "0 * * * * *", firing at
// the top of every minute. Reconciliation is a repair mechanism, not the
// primary path; the command handlers derive statuses synchronously.
//
// # Error Handling
//
// - Reconciliation failures are logged and retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
