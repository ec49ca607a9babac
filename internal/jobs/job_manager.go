package jobs

import (
	"fmt"

	"parcelbridge/internal/core/application/usecases/queries"

	"github.com/rs/zerolog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	departureReminderJob *DepartureReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	departingManifestsHandler queries.GetDepartingManifestsQueryHandler,
	logger zerolog.Logger,
) *JobManager {
	return &JobManager{
		departureReminderJob: NewDepartureReminderJob(departingManifestsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.departureReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start departure reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.departureReminderJob.Stop()
}
