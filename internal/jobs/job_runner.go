package jobs

import (
	"smartasset-backend/internal/config"
	"smartasset-backend/internal/logger"
	"smartasset-backend/internal/repository/firestore"
	"smartasset-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store    *firestore.Store
	services *Services
	config   *config.Config

	// outside holds devices last observed outside the geofence so the
	// sweep alerts once per exit, not once per run.
	outside map[string]bool
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Email    service.EmailService
	Presence service.PresenceService
	Borrow   service.BorrowService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *firestore.Store, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:    store,
		services: services,
		config:   cfg,
		outside:  make(map[string]bool),
	}
}

// Config exposes the configuration for schedule registration
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

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.SweepDevicePresence()
	jr.MarkOverdueLoans()
}
