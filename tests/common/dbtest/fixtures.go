//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CountSlots returns how many slots of the room are in status. An empty
// status counts every slot.
func CountSlots(t *testing.T, db Querier, roomID int64, status string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM time_slots WHERE room_id = $1 AND ($2 = '' OR status = $2)",
		roomID, status).Scan(&n)
	require.NoError(t, err)
	return n
}

// CountHeldBy returns how many slots carry the reservation id.
func CountHeldBy(t *testing.T, db Querier, reservationID int64) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM time_slots WHERE reservation_id = $1", reservationID).Scan(&n)
	require.NoError(t, err)
	return n
}

// CountOutbox returns how many outbox rows carry topic and status.
func CountOutbox(t *testing.T, db Querier, topic, status string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM outbox_messages WHERE topic = $1 AND status = $2",
		topic, status).Scan(&n)
	require.NoError(t, err)
	return n
}

// AgeSlotHold moves a pending hold's updated_at into the past so the expiry
// reclaimer sees it as stale.
func AgeSlotHold(t *testing.T, db Querier, reservationID int64, by time.Duration) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE time_slots SET updated_at = updated_at - $2::interval WHERE reservation_id = $1",
		reservationID, fmt.Sprintf("%d seconds", int(by.Seconds())))
	require.NoError(t, err)
}

// slotTables lists every table the service writes, children first.
var slotTables = []string{
	"time_slots",
	"outbox_messages",
	"generation_requests",
	"closed_date_update_requests",
	"operating_policies",
}

// ResetDB empties the service tables and restarts their id sequences.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE "+strings.Join(slotTables, ", ")+" RESTART IDENTITY CASCADE")
	return err
}
