package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"room-slot-service/internal/infra/repository"
	sqlc "room-slot-service/internal/infra/sqlc/generated"
	"room-slot-service/internal/pkg/errs"
	"room-slot-service/internal/pkg/metrics"
	"room-slot-service/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
	pgErrCodeLockNotAvailable     = "55P03"

	maxTxRetries  = 3
	retryBaseWait = 50 * time.Millisecond
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// PostgresUoW hands each unit of work a transaction-scoped repository set.
type PostgresUoW struct {
	pool   *pgxpool.Pool
	q      *sqlc.Queries
	logger *slog.Logger
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries, logger *slog.Logger) shared.UnitOfWork {
	return &PostgresUoW{
		pool:   pool,
		q:      q,
		logger: logger.With("component", "uow"),
	}
}

// Within runs fn in a read-committed transaction. Slot state changes lock
// the rows they read with SELECT ... FOR UPDATE; concurrent holds on the
// same slot serialize on that lock. Deadlocks between multi-slot holds are
// retried with backoff.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

	var err error
	for attempt := 0; attempt <= maxTxRetries; attempt++ {
		if attempt > 0 {
			wait := backoff(attempt)
			u.logger.Warn("retrying transaction",
				"attempt", attempt+1,
				"wait_ms", wait.Milliseconds(),
				"error", err.Error())
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		err = u.attempt(ctx, opts, fn)
		code, retryable := retryableCode(err)
		if !retryable {
			return err
		}
		metrics.TxRetriesTotal.WithLabelValues(code).Inc()
	}

	u.logger.Error("transaction failed after max retries",
		"attempts", maxTxRetries+1,
		"error", err.Error())
	return errs.Mark(err, errMaxRetriesExceeded)
}

// WithinReadOnly gives queries one consistent snapshot across tables.
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.attempt(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

// attempt runs one transaction. Rollback is explicit rather than deferred
// so retry loops do not stack defers.
func (u *PostgresUoW) attempt(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, opts)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	err = fn(ctx, &pgTx{dbtx: pgxTx, uow: u})
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	if rbErr := pgxTx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
		u.logger.Warn("rollback failed", "error", rbErr.Error())
	}
	return err
}

// backoff doubles per attempt with up to 20% jitter.
func backoff(attempt int) time.Duration {
	wait := retryBaseWait << (attempt - 1)
	return wait + rand.N(wait/5+1)
}

func retryableCode(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected, pgErrCodeLockNotAvailable:
		return pgErr.Code, true
	default:
		return "", false
	}
}

type pgTx struct {
	dbtx sqlc.DBTX
	uow  *PostgresUoW

	slotRepo              shared.SlotRepository
	policyRepo            shared.PolicyRepository
	outboxRepo            shared.OutboxRepository
	generationRequestRepo shared.GenerationRequestRepository
	closedDateRequestRepo shared.ClosedDateRequestRepository
}

func (t *pgTx) Slots() shared.SlotRepository {
	if t.slotRepo == nil {
		t.slotRepo = repository.NewSlotRepository(t.uow.q, t.dbtx)
	}
	return t.slotRepo
}

func (t *pgTx) Policies() shared.PolicyRepository {
	if t.policyRepo == nil {
		t.policyRepo = repository.NewPolicyRepository(t.uow.q, t.dbtx)
	}
	return t.policyRepo
}

func (t *pgTx) Outbox() shared.OutboxRepository {
	if t.outboxRepo == nil {
		t.outboxRepo = repository.NewOutboxRepository(t.uow.q, t.dbtx)
	}
	return t.outboxRepo
}

func (t *pgTx) GenerationRequests() shared.GenerationRequestRepository {
	if t.generationRequestRepo == nil {
		t.generationRequestRepo = repository.NewGenerationRequestRepository(t.uow.q, t.dbtx)
	}
	return t.generationRequestRepo
}

func (t *pgTx) ClosedDateRequests() shared.ClosedDateRequestRepository {
	if t.closedDateRequestRepo == nil {
		t.closedDateRequestRepo = repository.NewClosedDateRequestRepository(t.uow.q, t.dbtx)
	}
	return t.closedDateRequestRepo
}
