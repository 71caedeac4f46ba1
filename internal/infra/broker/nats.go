package broker

import (
	"context"
	"log/slog"
	"time"

	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/pkg/errs"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	reconnectWait = 2 * time.Second
	clientName    = "room-slot-service"
)

// Connect opens the NATS connection and makes sure the outbound stream
// exists. Reconnects are unlimited; the outbox retry sweep covers any
// messages published while the connection was down.
func Connect(cfg config.NATSConfig, logger *slog.Logger) (*nats.Conn, jetstream.JetStream, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name(clientName),
		nats.Timeout(cfg.Timeout),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(reconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err.Error())
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, nil, errs.Wrap(err, "connect to nats")
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, errs.Wrap(err, "open jetstream")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       cfg.Stream,
		Subjects:   []string{cfg.SubjectPrefix + ".>"},
		Retention:  jetstream.LimitsPolicy,
		Duplicates: 2 * time.Minute,
	})
	if err != nil {
		nc.Close()
		return nil, nil, errs.Wrapf(err, "ensure stream %s", cfg.Stream)
	}

	return nc, js, nil
}
