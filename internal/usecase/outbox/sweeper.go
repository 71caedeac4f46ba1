package outbox

import (
	"context"
	"log/slog"

	domain "room-slot-service/internal/domain/outbox"
	"room-slot-service/internal/pkg/clock"
	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/usecase/shared"
)

const defaultBatchSize = 100

// RetrySweeper re-attempts PENDING messages that the immediate path did not
// deliver. Rows younger than the sweep grace are left to the dispatcher.
type RetrySweeper struct {
	uow        shared.UnitOfWork
	dispatcher *Dispatcher
	clock      clock.Clock
	cfg        config.OutboxConfig
	logger     *slog.Logger
}

func NewRetrySweeper(uow shared.UnitOfWork, dispatcher *Dispatcher, clk clock.Clock, cfg config.OutboxConfig, logger *slog.Logger) *RetrySweeper {
	return &RetrySweeper{
		uow:        uow,
		dispatcher: dispatcher,
		clock:      clk,
		cfg:        cfg,
		logger:     logger.With("component", "outbox_sweeper"),
	}
}

// Sweep delivers one batch and returns how many messages were published.
func (s *RetrySweeper) Sweep(ctx context.Context) (int, error) {
	batch := s.cfg.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	cutoff := s.clock.Now().Add(-s.cfg.SweepGrace)

	var pending []*domain.Message
	err := s.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		pending, err = tx.Outbox().ListPending(ctx, cutoff, batch)
		return err
	})
	if err != nil {
		return 0, err
	}

	published := 0
	for _, m := range pending {
		if ctx.Err() != nil {
			break
		}
		if err := s.dispatcher.Deliver(ctx, m, PathSweep); err == nil {
			published++
		}
	}

	if len(pending) > 0 {
		s.logger.Info("outbox sweep finished",
			"picked", len(pending),
			"published", published)
	}
	return published, nil
}

// Archive deletes PUBLISHED rows older than the archive retention.
func (s *RetrySweeper) Archive(ctx context.Context) (int64, error) {
	cutoff := s.clock.Now().Add(-s.cfg.ArchiveRetention)
	var deleted int64
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		deleted, err = tx.Outbox().DeletePublishedBefore(ctx, cutoff)
		return err
	})
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info("archived published outbox messages", "deleted", deleted)
	}
	return deleted, nil
}
