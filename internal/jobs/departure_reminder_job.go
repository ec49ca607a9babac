package jobs

import (
	"context"
	"time"

	"parcelbridge/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// departureWindow is how far ahead the reminder looks for finalized
// manifests awaiting departure.
const departureWindow = 48 * time.Hour

// DepartureReminderJob periodically logs the finalized manifests whose
// flights depart soon, so warehouse staff see upcoming cutoffs without
// polling the API. Read-only; it never mutates state.
type DepartureReminderJob struct {
	handler queries.GetDepartingManifestsQueryHandler
	cron    *cron.Cron
	logger  zerolog.Logger
}

// NewDepartureReminderJob creates the reminder job.
func NewDepartureReminderJob(
	handler queries.GetDepartingManifestsQueryHandler, logger zerolog.Logger,
) *DepartureReminderJob {
	return &DepartureReminderJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With().Str("component", "departure_reminder_job").Logger(),
	}
}

// Start schedules the reminder to run at the top of every hour.
func (j *DepartureReminderJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Msg("departure reminder job started (running hourly)")
	return nil
}

// Stop stops the reminder job.
func (j *DepartureReminderJob) Stop() {
	j.cron.Stop()
	j.logger.Info().Msg("departure reminder job stopped")
}

func (j *DepartureReminderJob) run() {
	ctx := context.Background()

	query, err := queries.NewGetDepartingManifestsQuery(departureWindow)
	if err != nil {
		j.logger.Error().Err(err).Msg("departure reminder query construction failed")
		return
	}

	manifests, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.Error().Err(err).Msg("departure reminder lookup failed")
		return
	}

	for _, m := range manifests {
		j.logger.Info().
			Str("manifest", m.Number).
			Str("flight", m.FlightNumber).
			Time("departure_at", m.DepartureAt).
			Int("bags", m.TotalBags).
			Int("parcels", m.TotalParcels).
			Msg("manifest departing soon")
	}
}
