package shared

import (
	"context"
	"time"

	"room-slot-service/internal/domain/outbox"
)

// Publisher delivers one outbox message to the broker.
type Publisher interface {
	Publish(ctx context.Context, msg *outbox.Message) error
}

// DistributedLock guards singleton jobs across instances. The returned
// release func must be called exactly once when ok is true; the lock is
// held for at least atLeast and never longer than atMost.
type DistributedLock interface {
	TryLock(ctx context.Context, name string, atMost, atLeast time.Duration) (release func(), ok bool, err error)
}

// Dispatcher hands freshly committed outbox messages to the publish path.
type Dispatcher interface {
	Dispatch(ctx context.Context, msgs ...*outbox.Message)
}
