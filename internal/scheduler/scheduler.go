package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/pkg/errs"
	"room-slot-service/internal/pkg/metrics"
	"room-slot-service/internal/usecase/shared"
)

const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeSkipped = "skipped"
)

var ErrUnknownJob = errs.New("unknown job")

// Job is one cluster-singleton task. Interval zero registers the job for
// manual runs only.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler runs each job on its own ticker. A run only proceeds on the
// instance that wins the job's distributed lock.
type Scheduler struct {
	lock    shared.DistributedLock
	cfg     config.JobsConfig
	logger  *slog.Logger
	jobs    map[string]Job
	order   []string
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

func New(lock shared.DistributedLock, cfg config.JobsConfig, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		lock:   lock,
		cfg:    cfg,
		logger: logger.With("component", "scheduler"),
		jobs:   make(map[string]Job),
	}
}

// Register adds jobs. It must be called before Start.
func (s *Scheduler) Register(jobs ...Job) {
	for _, j := range jobs {
		if _, ok := s.jobs[j.Name]; !ok {
			s.order = append(s.order, j.Name)
		}
		s.jobs[j.Name] = j
	}
}

func (s *Scheduler) Jobs() []string {
	return append([]string(nil), s.order...)
}

func (s *Scheduler) Start() {
	if s.started {
		return
	}
	s.started = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	for _, name := range s.order {
		j := s.jobs[name]
		if j.Interval <= 0 {
			s.logger.Info("job registered without schedule", "job", j.Name)
			continue
		}
		s.wg.Add(1)
		go s.loop(ctx, j)
	}
	s.logger.Info("scheduler started", "jobs", len(s.order))
}

func (s *Scheduler) loop(ctx context.Context, j Job) {
	defer s.wg.Done()
	t := time.NewTicker(j.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := s.runJob(ctx, j); err != nil {
				s.logger.Error("job failed", "job", j.Name, "error", err.Error())
			}
		}
	}
}

// Stop cancels the tickers and waits for in-flight runs.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow executes a registered job once under its lock. ran is false when
// another instance holds the lock.
func (s *Scheduler) RunNow(ctx context.Context, name string) (ran bool, err error) {
	j, ok := s.jobs[name]
	if !ok {
		return false, errs.Mark(errs.Wrapf(ErrUnknownJob, "job %q", name), errs.ErrValidation)
	}
	return s.runJob(ctx, j)
}

func (s *Scheduler) runJob(ctx context.Context, j Job) (bool, error) {
	release, ok, err := s.lock.TryLock(ctx, j.Name, s.cfg.LockAtMost, s.cfg.LockAtLeast)
	if err != nil {
		metrics.JobRunsTotal.WithLabelValues(j.Name, OutcomeError).Inc()
		return false, errs.Wrapf(err, "acquire lock for %s", j.Name)
	}
	if !ok {
		metrics.JobRunsTotal.WithLabelValues(j.Name, OutcomeSkipped).Inc()
		s.logger.Debug("job lock held elsewhere", "job", j.Name)
		return false, nil
	}
	defer release()

	runCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	err = s.safeRun(runCtx, j)
	metrics.JobDurationSeconds.WithLabelValues(j.Name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.JobRunsTotal.WithLabelValues(j.Name, OutcomeError).Inc()
		return true, err
	}
	metrics.JobRunsTotal.WithLabelValues(j.Name, OutcomeOK).Inc()
	return true, nil
}

func (s *Scheduler) safeRun(ctx context.Context, j Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.Newf("job %s panicked: %v", j.Name, r)
		}
	}()
	return j.Run(ctx)
}
