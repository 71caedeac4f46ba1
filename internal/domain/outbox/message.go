package outbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidMessage = errors.New("invalid outbox message")

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPublished Status = "PUBLISHED"
	StatusFailed    Status = "FAILED"
)

func (s Status) String() string {
	return string(s)
}

// Event is anything that can be announced through the outbox.
type Event interface {
	Topic() string
	EventType() string
	AggregateType() string
	AggregateID() string
}

// Message is a durable intent to publish, written in the same transaction as
// the state change it announces. It is never deleted while pending.
type Message struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   string
	Topic         string
	EventType     string
	Payload       []byte
	Status        Status
	CreatedAt     time.Time
	PublishedAt   *time.Time
	RetryCount    int
	LastError     *string
}

func NewMessage(evt Event, now time.Time) (*Message, error) {
	if evt == nil {
		return nil, fmt.Errorf("%w: event is required", ErrInvalidMessage)
	}
	if evt.Topic() == "" || evt.EventType() == "" {
		return nil, fmt.Errorf("%w: topic and event type are required", ErrInvalidMessage)
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal %s payload: %v", ErrInvalidMessage, evt.EventType(), err)
	}
	return &Message{
		ID:            uuid.New(),
		AggregateType: evt.AggregateType(),
		AggregateID:   evt.AggregateID(),
		Topic:         evt.Topic(),
		EventType:     evt.EventType(),
		Payload:       payload,
		Status:        StatusPending,
		CreatedAt:     now,
	}, nil
}

func (m *Message) IsPending() bool {
	return m.Status == StatusPending
}

func (m *Message) MarkPublished(now time.Time) {
	m.Status = StatusPublished
	m.PublishedAt = &now
	m.LastError = nil
}

// RecordFailure counts a failed delivery attempt. Once the retry count
// reaches maxRetries the message is FAILED and needs an operator.
func (m *Message) RecordFailure(cause error, maxRetries int) {
	m.RetryCount++
	msg := FailureText(cause)
	m.LastError = &msg
	if m.RetryCount >= maxRetries {
		m.Status = StatusFailed
	}
}

// FailureText is the last_error recorded for a failed attempt.
func FailureText(cause error) string {
	if cause == nil {
		return "unknown error"
	}
	return cause.Error()
}
