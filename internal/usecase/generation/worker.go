package generation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"room-slot-service/internal/domain/job"
	"room-slot-service/internal/pkg/clock"
	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/pkg/errs"
	"room-slot-service/internal/usecase/shared"
)

// Worker runs request-tracked generation and closed-date propagation in the
// background. The request row carries the outcome: callers poll it by id.
// Rows left unfinished by a crash or shutdown are picked up by ResumeStalled.
type Worker struct {
	engine      *Engine
	uow         shared.UnitOfWork
	clock       clock.Clock
	timeout     time.Duration
	retention   time.Duration
	staleAfter  time.Duration
	resumeBatch int
	logger      *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewWorker(engine *Engine, uow shared.UnitOfWork, clk clock.Clock, cfg config.Config, logger *slog.Logger) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		engine:      engine,
		uow:         uow,
		clock:       clk,
		timeout:     cfg.Jobs.Timeout,
		retention:   cfg.Jobs.RequestRetention,
		staleAfter:  cfg.Jobs.RequestStaleAfter,
		resumeBatch: max(cfg.Jobs.ResumeBatch, 1),
		logger:      logger.With("component", "generation_worker"),
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (w *Worker) SubmitGeneration(requestID int64) {
	w.submit(func(ctx context.Context) {
		if err := w.RunGeneration(ctx, requestID); err != nil {
			w.logger.Error("generation request failed", "request_id", requestID, "error", err.Error())
		}
	})
}

func (w *Worker) SubmitClosedDateUpdate(requestID int64) {
	w.submit(func(ctx context.Context) {
		if err := w.RunClosedDateUpdate(ctx, requestID); err != nil {
			w.logger.Error("closed-date update request failed", "request_id", requestID, "error", err.Error())
		}
	})
}

func (w *Worker) submit(fn func(ctx context.Context)) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ctx := w.ctx
		if w.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, w.timeout)
			defer cancel()
		}
		fn(ctx)
	}()
}

// Stop cancels in-flight runs and waits for them to record their outcome.
func (w *Worker) Stop(ctx context.Context) error {
	w.cancel()
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunGeneration executes one GenerationRequest: INITIAL fills the range,
// REGENERATION rebuilds it while preserving commitments.
func (w *Worker) RunGeneration(ctx context.Context, requestID int64) error {
	var req *job.GenerationRequest
	err := w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		req, err = tx.GenerationRequests().FindByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if err := req.Start(w.clock.Now()); err != nil {
			return err
		}
		return tx.GenerationRequests().Update(ctx, req)
	})
	if err != nil {
		return err
	}
	return w.execGeneration(ctx, req)
}

func (w *Worker) execGeneration(ctx context.Context, req *job.GenerationRequest) error {
	var count int
	var err error
	switch req.Kind {
	case job.KindRegeneration:
		count, err = w.engine.Regenerate(ctx, req.RoomID, req.StartDate, req.EndDate)
	default:
		count, err = w.engine.GenerateRange(ctx, req.RoomID, req.StartDate, req.EndDate)
	}

	w.settle(req.ID, &req.Tracking, count, err)
	return w.finish(req.ID, err, func(ctx context.Context, tx shared.Tx) error {
		return tx.GenerationRequests().Update(ctx, req)
	})
}

// RunClosedDateUpdate propagates the room's closed dates over the current window.
func (w *Worker) RunClosedDateUpdate(ctx context.Context, requestID int64) error {
	var req *job.ClosedDateUpdateRequest
	err := w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		req, err = tx.ClosedDateRequests().FindByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if err := req.Start(w.clock.Now()); err != nil {
			return err
		}
		return tx.ClosedDateRequests().Update(ctx, req)
	})
	if err != nil {
		return err
	}
	return w.execClosedDateUpdate(ctx, req)
}

func (w *Worker) execClosedDateUpdate(ctx context.Context, req *job.ClosedDateUpdateRequest) error {
	start, end := w.engine.Window()
	count, err := w.engine.PropagateClosedDates(ctx, req.RoomID, start, end)

	w.settle(req.ID, &req.Tracking, count, err)
	return w.finish(req.ID, err, func(ctx context.Context, tx shared.Tx) error {
		return tx.ClosedDateRequests().Update(ctx, req)
	})
}

// settle moves the request to its outcome. A cancelled run is handed back
// as REQUESTED instead of FAILED: cancellation means shutdown, and the
// resume job picks it up again.
func (w *Worker) settle(requestID int64, t *job.Tracking, count int, runErr error) {
	now := w.clock.Now()
	var err error
	switch {
	case runErr != nil && errs.Is(runErr, context.Canceled):
		err = t.Requeue()
		if err == nil {
			w.logger.Warn("request interrupted, requeued", "request_id", requestID)
		}
	case runErr != nil:
		err = t.Fail(runErr, now)
	default:
		err = t.Complete(count, now)
	}
	if err != nil {
		w.logger.Warn("request already settled",
			"request_id", requestID,
			"status", t.Status.String(),
			"error", err.Error())
	}
}

// ResumeStalled claims requests nobody is running (REQUESTED rows whose
// submission never started and IN_PROGRESS rows started before the stale
// threshold) and runs them one after another on ctx.
func (w *Worker) ResumeStalled(ctx context.Context) (int, error) {
	now := w.clock.Now()
	before := now.Add(-w.staleAfter)

	var gens []*job.GenerationRequest
	var closed []*job.ClosedDateUpdateRequest
	err := w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		gens, err = tx.GenerationRequests().ListStalledForUpdate(ctx, before, w.resumeBatch)
		if err != nil {
			return err
		}
		for _, r := range gens {
			if err := r.Resume(now); err != nil {
				return err
			}
			if err := tx.GenerationRequests().Update(ctx, r); err != nil {
				return err
			}
		}

		closed, err = tx.ClosedDateRequests().ListStalledForUpdate(ctx, before, w.resumeBatch)
		if err != nil {
			return err
		}
		for _, r := range closed {
			if err := r.Resume(now); err != nil {
				return err
			}
			if err := tx.ClosedDateRequests().Update(ctx, r); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// Claimed rows skipped here because ctx ended are IN_PROGRESS with a
	// fresh started_at and come back after the stale threshold.
	resumed := 0
	for _, r := range gens {
		if ctx.Err() != nil {
			break
		}
		w.logger.Info("resuming generation request", "request_id", r.ID, "room_id", r.RoomID)
		if err := w.execGeneration(ctx, r); err != nil {
			w.logger.Error("resumed generation request failed", "request_id", r.ID, "error", err.Error())
		}
		resumed++
	}
	for _, r := range closed {
		if ctx.Err() != nil {
			break
		}
		w.logger.Info("resuming closed-date update request", "request_id", r.ID, "room_id", r.RoomID)
		if err := w.execClosedDateUpdate(ctx, r); err != nil {
			w.logger.Error("resumed closed-date update request failed", "request_id", r.ID, "error", err.Error())
		}
		resumed++
	}

	if resumed > 0 {
		w.logger.Info("stalled requests resumed", "resumed", resumed)
	}
	return resumed, ctx.Err()
}

// finish records the outcome on a fresh context: the run's own context may
// be the reason it failed.
func (w *Worker) finish(requestID int64, runErr error, record func(ctx context.Context, tx shared.Tx) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := w.uow.Within(ctx, record); err != nil {
		w.logger.Error("failed to record request outcome",
			"request_id", requestID,
			"error", err.Error())
		if runErr == nil {
			return err
		}
	}
	return runErr
}

// CleanupRequests deletes finished request rows older than the retention.
func (w *Worker) CleanupRequests(ctx context.Context) (int64, error) {
	cutoff := w.clock.Now().Add(-w.retention)
	var deleted int64
	err := w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		gen, err := tx.GenerationRequests().DeleteFinishedBefore(ctx, cutoff)
		if err != nil {
			return err
		}
		closed, err := tx.ClosedDateRequests().DeleteFinishedBefore(ctx, cutoff)
		if err != nil {
			return err
		}
		deleted = gen + closed
		return nil
	})
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if deleted > 0 {
		w.logger.Info("finished requests cleaned up", "deleted", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}
