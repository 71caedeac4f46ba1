package broker

import (
	"context"

	"room-slot-service/internal/domain/outbox"
	"room-slot-service/internal/pkg/config"
	"room-slot-service/internal/pkg/errs"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	headerEventType     = "Event-Type"
	headerAggregateType = "Aggregate-Type"
	headerAggregateID   = "Aggregate-Id"
)

// Publisher sends outbox messages to JetStream. The outbox id doubles as the
// JetStream message id, so a message the sweep re-sends after a lost ack is
// dropped by the stream's duplicate window.
type Publisher struct {
	js            jetstream.JetStream
	subjectPrefix string
}

func NewPublisher(js jetstream.JetStream, cfg config.NATSConfig) *Publisher {
	return &Publisher{
		js:            js,
		subjectPrefix: cfg.SubjectPrefix,
	}
}

func (p *Publisher) Subject(topic string) string {
	return p.subjectPrefix + "." + topic
}

func (p *Publisher) Publish(ctx context.Context, msg *outbox.Message) error {
	natsMsg := &nats.Msg{
		Subject: p.Subject(msg.Topic),
		Data:    msg.Payload,
		Header:  nats.Header{},
	}
	natsMsg.Header.Set(headerEventType, msg.EventType)
	natsMsg.Header.Set(headerAggregateType, msg.AggregateType)
	natsMsg.Header.Set(headerAggregateID, msg.AggregateID)

	if _, err := p.js.PublishMsg(ctx, natsMsg, jetstream.WithMsgID(msg.ID.String())); err != nil {
		return errs.Wrapf(err, "publish %s to %s", msg.ID, natsMsg.Subject)
	}
	return nil
}
