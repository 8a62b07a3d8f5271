package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	BaseEvent
	Amount string `json:"amount"`
}

func TestNewBaseEvent(t *testing.T) {
	e := NewBaseEvent("financing.application.submitted", "app-1", "FinancingApplication")

	assert.NotEmpty(t, e.EventID())
	assert.Equal(t, "financing.application.submitted", e.EventType())
	assert.Equal(t, "app-1", e.AggregateID())
	assert.Equal(t, "FinancingApplication", e.AggregateType())
	assert.False(t, e.OccurredAt().IsZero())
}

func TestNewOutboxEntry(t *testing.T) {
	evt := testEvent{
		BaseEvent: NewBaseEvent("financing.repayment.received", "fin-7", "FinancingApplication"),
		Amount:    "1066.19",
	}

	entry := NewOutboxEntry(evt)

	assert.Equal(t, evt.EventID(), entry.ID)
	assert.Equal(t, "fin-7", entry.AggregateID)
	assert.Equal(t, "financing.repayment.received", entry.EventType)
	assert.Nil(t, entry.PublishedAt)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(entry.Payload, &decoded))
	assert.Equal(t, "1066.19", decoded["amount"])
	assert.Equal(t, "fin-7", decoded["aggregate_id"])
}

func TestCollector(t *testing.T) {
	var c Collector
	c.Record(NewBaseEvent("a", "1", "T"))
	c.Record(NewBaseEvent("b", "2", "T"), NewBaseEvent("c", "3", "T"))

	assert.Len(t, c.Events(), 3)

	drained := c.Drain()
	assert.Len(t, drained, 3)
	assert.Empty(t, c.Events())
}
