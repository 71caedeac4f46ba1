//go:build e2e

package broker_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"room-slot-service/internal/domain/outbox"
	"room-slot-service/internal/infra/broker"
	"room-slot-service/internal/pkg/config"
	"room-slot-service/tests/common/testutil"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startNATS(t *testing.T) config.NATSConfig {
	t.Helper()
	ctx := context.Background()

	port := nat.Port("4222/tcp")
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "nats:2.10-alpine",
			Cmd:          []string{"-js"},
			ExposedPorts: []string{string(port)},
			WaitingFor:   wait.ForLog("Server is ready").WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, port)
	require.NoError(t, err)

	return config.NATSConfig{
		URL:           "nats://" + host + ":" + mapped.Port(),
		Stream:        "ROOM_SLOTS_TEST",
		SubjectPrefix: "roomslot",
		ConsumerQueue: "room-slot-test",
		PaymentPrefix: "payment",
		Timeout:       5 * time.Second,
	}
}

type recordingHandler struct {
	mu        sync.Mutex
	completed []outbox.PaymentCompleted
	cancelled []outbox.PaymentCancelled
	refunded  []outbox.RefundCompleted
}

func (h *recordingHandler) HandlePaymentCompleted(_ context.Context, evt outbox.PaymentCompleted) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completed = append(h.completed, evt)
	return nil
}

func (h *recordingHandler) HandlePaymentCancelled(_ context.Context, evt outbox.PaymentCancelled) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cancelled = append(h.cancelled, evt)
	return nil
}

func (h *recordingHandler) HandleRefundCompleted(_ context.Context, evt outbox.RefundCompleted) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.refunded = append(h.refunded, evt)
	return nil
}

func (h *recordingHandler) counts() (int, int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.completed), len(h.cancelled), len(h.refunded)
}

func TestBroker(t *testing.T) {
	cfg := startNATS(t)
	nc, js, err := broker.Connect(cfg, testutil.DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	t.Run("publisher writes to the stream with outbox headers and dedup", func(t *testing.T) {
		pub := broker.NewPublisher(js, cfg)
		msg, err := outbox.NewMessage(outbox.SlotConfirmed{ReservationID: 9}, time.Now())
		require.NoError(t, err)

		require.NoError(t, pub.Publish(ctx, msg))
		// a sweep re-send of the same row
		require.NoError(t, pub.Publish(ctx, msg))

		stream, err := js.Stream(ctx, cfg.Stream)
		require.NoError(t, err)
		info, err := stream.Info(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), info.State.Msgs)

		raw, err := stream.GetLastMsgForSubject(ctx, pub.Subject(outbox.TopicSlotConfirmed))
		require.NoError(t, err)
		assert.JSONEq(t, string(msg.Payload), string(raw.Data))
		assert.Equal(t, msg.EventType, raw.Header.Get("Event-Type"))
		assert.Equal(t, msg.AggregateID, raw.Header.Get("Aggregate-Id"))
	})

	t.Run("consumer routes payment subjects to the handler", func(t *testing.T) {
		h := &recordingHandler{}
		consumer := broker.NewPaymentConsumer(nc, h, cfg, testutil.DiscardLogger())
		require.NoError(t, consumer.Start())
		t.Cleanup(consumer.Stop)

		publish := func(topic string, evt any) {
			data, err := json.Marshal(evt)
			require.NoError(t, err)
			require.NoError(t, nc.Publish(cfg.PaymentPrefix+"."+topic, data))
		}
		publish(outbox.TopicPaymentCompleted, outbox.PaymentCompleted{PaymentID: 1, ReservationID: 5, Amount: 3000})
		publish(outbox.TopicPaymentCancelled, outbox.PaymentCancelled{ReservationID: 6, Reason: "card declined"})
		publish(outbox.TopicRefundCompleted, outbox.RefundCompleted{ReservationID: 7})
		// undecodable payloads are logged and dropped
		require.NoError(t, nc.Publish(cfg.PaymentPrefix+"."+outbox.TopicPaymentCompleted, []byte("{")))
		require.NoError(t, nc.Flush())

		require.Eventually(t, func() bool {
			c, x, r := h.counts()
			return c == 1 && x == 1 && r == 1
		}, 5*time.Second, 20*time.Millisecond)

		h.mu.Lock()
		defer h.mu.Unlock()
		assert.Equal(t, int64(5), h.completed[0].ReservationID)
		assert.Equal(t, "card declined", h.cancelled[0].Reason)
		assert.Equal(t, int64(7), h.refunded[0].ReservationID)
	})
}
