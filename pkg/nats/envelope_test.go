package nats

import (
	"encoding/json"
	"testing"
	"time"

	"restaurant-chatbot-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "restaurant.ORDER_CREATED", Subject("ORDER_CREATED"))
}

func TestDecodeEnvelope_RoundTripsPublishedShape(t *testing.T) {
	at := time.Date(2025, 6, 15, 19, 0, 0, 0, time.UTC)
	data, err := json.Marshal(Envelope{
		ID:         "evt-1",
		Type:       "RESERVATION_CREATED",
		OccurredAt: at,
		Data:       map[string]interface{}{"guests": 4},
	})
	require.NoError(t, err)

	got, err := DecodeEnvelope(data)
	require.NoError(t, err)

	var _ events.Event = got
	assert.Equal(t, "evt-1", got.EventID())
	assert.Equal(t, "RESERVATION_CREATED", got.EventType())
	assert.True(t, at.Equal(got.Timestamp()))
	// JSON numbers decode as float64.
	assert.Equal(t, 4.0, got.Payload()["guests"])
}

func TestDecodeEnvelope_Rejects(t *testing.T) {
	_, err := DecodeEnvelope([]byte("not json"))
	assert.Error(t, err)

	_, err = DecodeEnvelope([]byte(`{"id":"evt-1","data":{}}`))
	assert.Error(t, err)
}
