package outbox

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domain "room-slot-service/internal/domain/outbox"
	"room-slot-service/internal/pkg/clock"
	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/pkg/errs"
	"room-slot-service/internal/pkg/metrics"
	"room-slot-service/internal/usecase/shared"
)

// Delivery paths, used as the metrics "path" label.
const (
	PathWorker = "worker"
	PathCaller = "caller"
	PathSweep  = "sweep"
)

var ErrDispatcherStopped = errs.New("outbox dispatcher stopped")

// Dispatcher makes the immediate publish attempt for freshly committed
// outbox messages on a bounded worker pool. A full queue does not drop the
// message: the calling goroutine publishes it itself, which is safe because
// the row is already durable and slows producers down under load.
type Dispatcher struct {
	uow       shared.UnitOfWork
	publisher shared.Publisher
	clock     clock.Clock
	cfg       config.OutboxConfig
	logger    *slog.Logger

	mu      sync.RWMutex
	queue   chan *domain.Message
	stopped bool
	wg      sync.WaitGroup
}

func NewDispatcher(
	uow shared.UnitOfWork,
	publisher shared.Publisher,
	clk clock.Clock,
	cfg config.OutboxConfig,
	logger *slog.Logger,
) *Dispatcher {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	cfg.Workers = workers
	if cfg.QueueSize < 0 {
		cfg.QueueSize = 0
	}
	return &Dispatcher{
		uow:       uow,
		publisher: publisher,
		clock:     clk,
		cfg:       cfg,
		logger:    logger.With("component", "outbox_dispatcher"),
		queue:     make(chan *domain.Message, cfg.QueueSize),
	}
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
	d.logger.Info("outbox dispatcher started", "workers", d.cfg.Workers, "queue_size", d.cfg.QueueSize)
}

// Stop closes the queue and waits for the workers to drain it. Messages
// still queued when ctx expires stay PENDING for the retry sweep.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("outbox dispatcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dispatch never returns an error: a failed attempt is recorded on the row
// and the sweep takes it from there.
func (d *Dispatcher) Dispatch(ctx context.Context, msgs ...*domain.Message) {
	for _, m := range msgs {
		if m == nil {
			continue
		}
		if d.enqueue(m) {
			continue
		}
		if d.isStopped() {
			d.logger.Debug("dispatcher stopped, leaving message to the sweep", "message_id", m.ID.String())
			continue
		}
		metrics.OutboxCallerRunsTotal.Inc()
		d.logger.Warn("outbox queue full, publishing on caller",
			"message_id", m.ID.String(),
			"topic", m.Topic)
		_ = d.Deliver(ctx, m, PathCaller)
	}
}

func (d *Dispatcher) enqueue(m *domain.Message) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return false
	}
	select {
	case d.queue <- m:
		metrics.OutboxQueueDepth.Set(float64(len(d.queue)))
		return true
	default:
		return false
	}
}

func (d *Dispatcher) isStopped() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stopped
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for m := range d.queue {
		metrics.OutboxQueueDepth.Set(float64(len(d.queue)))
		_ = d.Deliver(context.Background(), m, PathWorker)
	}
}

// Deliver publishes one message and records the outcome on its row. The
// row is only updated while it is still PENDING, so a concurrent sweep and
// worker cannot both count the same attempt.
func (d *Dispatcher) Deliver(ctx context.Context, m *domain.Message, path string) error {
	pubCtx, cancel := context.WithTimeout(ctx, d.publishTimeout())
	pubErr := d.publisher.Publish(pubCtx, m)
	cancel()

	if pubErr == nil {
		m.MarkPublished(d.clock.Now())
		err := d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			updated, err := tx.Outbox().MarkPublished(ctx, m)
			if err != nil {
				return err
			}
			if !updated {
				d.logger.Debug("outbox message no longer pending", "message_id", m.ID.String())
			}
			return nil
		})
		if err != nil {
			d.logger.Error("published but failed to mark outbox message",
				"message_id", m.ID.String(),
				"error", err.Error())
			return err
		}
		metrics.OutboxPublishedTotal.WithLabelValues(m.Topic, path).Inc()
		return nil
	}

	metrics.OutboxFailuresTotal.WithLabelValues(m.Topic).Inc()
	var recorded bool
	err := d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		recorded, err = tx.Outbox().RecordFailure(ctx, m, pubErr, d.cfg.MaxRetries)
		return err
	})

	switch {
	case err != nil:
		d.logger.Error("failed to record outbox failure",
			"message_id", m.ID.String(),
			"error", err.Error())
	case !recorded:
		d.logger.Debug("outbox message no longer pending", "message_id", m.ID.String())
	case m.Status == domain.StatusFailed:
		metrics.OutboxDeadTotal.WithLabelValues(m.Topic).Inc()
		d.logger.Error("outbox message exhausted retries",
			"message_id", m.ID.String(),
			"topic", m.Topic,
			"retry_count", m.RetryCount,
			"error", pubErr.Error())
	default:
		d.logger.Warn("outbox publish failed",
			"message_id", m.ID.String(),
			"topic", m.Topic,
			"path", path,
			"retry_count", m.RetryCount,
			"error", pubErr.Error())
	}
	return errs.Wrap(pubErr, "publish outbox message")
}

func (d *Dispatcher) publishTimeout() time.Duration {
	if d.cfg.PublishTimeout <= 0 {
		return 5 * time.Second
	}
	return d.cfg.PublishTimeout
}
