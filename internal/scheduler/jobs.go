package scheduler

import (
	"context"
	"log/slog"

	"room-slot-service/internal/pkg/clock"
	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/usecase/expiry"
	"room-slot-service/internal/usecase/generation"
	"room-slot-service/internal/usecase/outbox"
)

const (
	JobDailySlotGeneration     = "daily-slot-generation"
	JobRollingWindowRetirement = "rolling-window-retirement"
	JobPendingExpiryReclaim    = "pending-expiry-reclaim"
	JobOutboxRetrySweep        = "outbox-retry-sweep"
	JobRequestCleanup          = "job-request-cleanup"
	JobRequestResume           = "request-resume"
	JobOutboxArchive           = "outbox-archive"
)

type JobDeps struct {
	Engine    *generation.Engine
	Worker    *generation.Worker
	Reclaimer *expiry.Reclaimer
	Sweeper   *outbox.RetrySweeper
	Clock     clock.Clock
	Config    config.Config
	Logger    *slog.Logger
}

// SlotJobs returns the service's scheduled jobs. The outbox archive has no
// interval unless JOB_OUTBOX_ARCHIVE_INTERVAL is set; it can still be run
// through RunNow.
func SlotJobs(d JobDeps) []Job {
	jobs := d.Config.Jobs
	return []Job{
		{
			Name:     JobDailySlotGeneration,
			Interval: jobs.GenerationInterval,
			Run: func(ctx context.Context) error {
				_, last := d.Engine.Window()
				_, err := d.Engine.GenerateAllRooms(ctx, last)
				return err
			},
		},
		{
			Name:     JobRollingWindowRetirement,
			Interval: jobs.RetirementInterval,
			Run: func(ctx context.Context) error {
				_, err := d.Engine.RetireBefore(ctx, clock.Today(d.Clock))
				return err
			},
		},
		{
			Name:     JobPendingExpiryReclaim,
			Interval: jobs.ExpiryInterval,
			Run: func(ctx context.Context) error {
				_, err := d.Reclaimer.Reclaim(ctx)
				return err
			},
		},
		{
			Name:     JobOutboxRetrySweep,
			Interval: d.Config.Outbox.SweepInterval,
			Run: func(ctx context.Context) error {
				_, err := d.Sweeper.Sweep(ctx)
				return err
			},
		},
		{
			Name:     JobRequestCleanup,
			Interval: jobs.CleanupInterval,
			Run: func(ctx context.Context) error {
				_, err := d.Worker.CleanupRequests(ctx)
				return err
			},
		},
		{
			Name:     JobRequestResume,
			Interval: jobs.ResumeInterval,
			Run: func(ctx context.Context) error {
				_, err := d.Worker.ResumeStalled(ctx)
				return err
			},
		},
		{
			Name:     JobOutboxArchive,
			Interval: jobs.ArchiveInterval,
			Run: func(ctx context.Context) error {
				_, err := d.Sweeper.Archive(ctx)
				return err
			},
		},
	}
}
