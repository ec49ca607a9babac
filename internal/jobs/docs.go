// Package jobs provides scheduled background tasks for the parcel workflow
// service.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and managed through
// JobManager:
//
//	jobManager := jobs.NewJobManager(departingManifestsHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// DepartureReminderJob runs hourly and logs finalized manifests departing
// within the next 48 hours. It is read-only: flights are dispatched by
// staff through the API, never by the scheduler.
package jobs
