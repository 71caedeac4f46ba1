//go:build unit

package outbox_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"room-slot-service/internal/domain/outbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

func TestNewMessage(t *testing.T) {
	msg, err := outbox.NewMessage(outbox.SlotConfirmed{ReservationID: 99}, now)
	require.NoError(t, err)

	assert.Equal(t, outbox.TopicSlotConfirmed, msg.Topic)
	assert.Equal(t, "SlotConfirmed", msg.EventType)
	assert.Equal(t, outbox.AggregateReservation, msg.AggregateType)
	assert.Equal(t, "99", msg.AggregateID)
	assert.Equal(t, outbox.StatusPending, msg.Status)
	assert.Zero(t, msg.RetryCount)
	assert.Equal(t, now, msg.CreatedAt)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "99", payload["reservationId"])

	_, err = outbox.NewMessage(nil, now)
	assert.ErrorIs(t, err, outbox.ErrInvalidMessage)
}

func TestMessage_RecordFailure(t *testing.T) {
	const maxRetries = 3

	msg, err := outbox.NewMessage(outbox.SlotConfirmed{ReservationID: 1}, now)
	require.NoError(t, err)

	for i := 1; i < maxRetries; i++ {
		msg.RecordFailure(errors.New("broker down"), maxRetries)
		assert.Equal(t, i, msg.RetryCount)
		assert.True(t, msg.IsPending())
	}

	msg.RecordFailure(errors.New("broker down"), maxRetries)
	assert.Equal(t, maxRetries, msg.RetryCount)
	assert.Equal(t, outbox.StatusFailed, msg.Status)
	require.NotNil(t, msg.LastError)
	assert.Equal(t, "broker down", *msg.LastError)
}

func TestMessage_MarkPublished(t *testing.T) {
	msg, err := outbox.NewMessage(outbox.SlotConfirmed{ReservationID: 1}, now)
	require.NoError(t, err)
	msg.RecordFailure(nil, 5)

	msg.MarkPublished(now.Add(time.Second))

	assert.Equal(t, outbox.StatusPublished, msg.Status)
	require.NotNil(t, msg.PublishedAt)
	assert.Nil(t, msg.LastError)
	assert.Equal(t, 1, msg.RetryCount)
}
