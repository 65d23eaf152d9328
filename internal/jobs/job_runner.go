package jobs

import (
	"sync"

	"rentalincome-backend/internal/config"
	"rentalincome-backend/internal/logger"
	"rentalincome-backend/internal/repository"
	"rentalincome-backend/internal/service"
)

// JobRunner coordinates the scheduled reconciliation work.
type JobRunner struct {
	incomes repository.IncomeRepository
	email   service.EmailService
	config  *config.Config

	sweepMu sync.Mutex
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(incomes repository.IncomeRepository, email service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		incomes: incomes,
		email:   email,
		config:  cfg,
	}
}

// Config returns the loaded configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunReconciliation runs the full sweep: promotion, retention cleanup, and
// the activity report. Steps are fault-isolated; one failing does not block
// the others. At most one sweep runs at a time; an overlapping invocation
// (scheduled or manual) is skipped, not queued.
func (jr *JobRunner) RunReconciliation() bool {
	if !jr.sweepMu.TryLock() {
		logger.Warn("Reconciliation sweep already in flight, skipping")
		return false
	}
	defer jr.sweepMu.Unlock()

	jr.PromoteDueIncomes()
	jr.CleanupCancelledIncomes()
	jr.SendActivityReport()
	return true
}
