package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"room-slot-service/internal/domain/outbox"
	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/pkg/errs"

	"github.com/nats-io/nats.go"
)

const handlerTimeout = 30 * time.Second

// PaymentEventHandler reacts to payment outcomes for a reservation.
type PaymentEventHandler interface {
	HandlePaymentCompleted(ctx context.Context, evt outbox.PaymentCompleted) error
	HandlePaymentCancelled(ctx context.Context, evt outbox.PaymentCancelled) error
	HandleRefundCompleted(ctx context.Context, evt outbox.RefundCompleted) error
}

// PaymentConsumer subscribes to the payment service's subjects with a queue
// group so each event is handled by exactly one instance.
type PaymentConsumer struct {
	nc      *nats.Conn
	handler PaymentEventHandler
	cfg     config.NATSConfig
	logger  *slog.Logger
	subs    []*nats.Subscription
}

func NewPaymentConsumer(nc *nats.Conn, handler PaymentEventHandler, cfg config.NATSConfig, logger *slog.Logger) *PaymentConsumer {
	return &PaymentConsumer{
		nc:      nc,
		handler: handler,
		cfg:     cfg,
		logger:  logger.With("component", "payment_consumer"),
	}
}

func (c *PaymentConsumer) Start() error {
	routes := map[string]func(ctx context.Context, data []byte) error{
		outbox.TopicPaymentCompleted: func(ctx context.Context, data []byte) error {
			var evt outbox.PaymentCompleted
			if err := json.Unmarshal(data, &evt); err != nil {
				return errs.Wrapf(err, "decode %s", outbox.TopicPaymentCompleted)
			}
			return c.handler.HandlePaymentCompleted(ctx, evt)
		},
		outbox.TopicPaymentCancelled: func(ctx context.Context, data []byte) error {
			var evt outbox.PaymentCancelled
			if err := json.Unmarshal(data, &evt); err != nil {
				return errs.Wrapf(err, "decode %s", outbox.TopicPaymentCancelled)
			}
			return c.handler.HandlePaymentCancelled(ctx, evt)
		},
		outbox.TopicRefundCompleted: func(ctx context.Context, data []byte) error {
			var evt outbox.RefundCompleted
			if err := json.Unmarshal(data, &evt); err != nil {
				return errs.Wrapf(err, "decode %s", outbox.TopicRefundCompleted)
			}
			return c.handler.HandleRefundCompleted(ctx, evt)
		},
	}

	for topic, handle := range routes {
		subject := c.cfg.PaymentPrefix + "." + topic
		sub, err := c.nc.QueueSubscribe(subject, c.cfg.ConsumerQueue, c.wrap(subject, handle))
		if err != nil {
			c.Stop()
			return errs.Wrapf(err, "subscribe %s", subject)
		}
		c.subs = append(c.subs, sub)
		c.logger.Info("subscribed", "subject", subject, "queue", c.cfg.ConsumerQueue)
	}
	return nil
}

func (c *PaymentConsumer) Stop() {
	for _, sub := range c.subs {
		if err := sub.Drain(); err != nil {
			c.logger.Warn("failed to drain subscription", "subject", sub.Subject, "error", err.Error())
		}
	}
	c.subs = nil
}

func (c *PaymentConsumer) wrap(subject string, handle func(ctx context.Context, data []byte) error) nats.MsgHandler {
	return func(msg *nats.Msg) {
		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()

		if err := handle(ctx, msg.Data); err != nil {
			c.logger.Error("failed to handle payment event",
				"subject", subject,
				"error", err.Error())
			return
		}
		c.logger.Debug("payment event handled", "subject", subject)
	}
}
