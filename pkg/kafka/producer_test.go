package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092", "localhost:9093"}})

	require.NotNil(t, p)
	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, p.brokers)
	assert.Empty(t, p.writers)
	assert.Nil(t, p.transport, "plaintext config should not build a transport")
}

func TestNewProducer_SASLTransport(t *testing.T) {
	p := NewProducer(Config{
		Brokers:       []string{"kafka:9092"},
		SASLEnabled:   true,
		SASLMechanism: "PLAIN",
		SASLUsername:  "financing",
		SASLPassword:  "secret",
		TLS:           true,
	})

	require.NotNil(t, p.transport)
	assert.NotNil(t, p.transport.TLS)
	assert.NotNil(t, p.transport.SASL)
}

func TestGetOrCreateWriter(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})

	w1 := p.getOrCreateWriter("financing.events")
	w2 := p.getOrCreateWriter("financing.events")
	w3 := p.getOrCreateWriter("financing.notifications")

	require.NotNil(t, w1)
	assert.Same(t, w1, w2, "same topic should reuse the writer")
	assert.NotSame(t, w1, w3)
	assert.Len(t, p.writers, 2)
}

func TestProducerClose(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	_ = p.getOrCreateWriter("a")
	_ = p.getOrCreateWriter("b")

	require.NoError(t, p.Close())
	assert.Empty(t, p.writers)
}

func TestResolveSASL(t *testing.T) {
	t.Run("plain by default", func(t *testing.T) {
		m := resolveSASL(Config{SASLUsername: "u", SASLPassword: "p"})
		require.NotNil(t, m)
		assert.Equal(t, "PLAIN", m.Name())
	})

	t.Run("scram sha-256", func(t *testing.T) {
		m := resolveSASL(Config{SASLMechanism: "SCRAM-SHA-256", SASLUsername: "u", SASLPassword: "p"})
		require.NotNil(t, m)
		assert.Equal(t, "SCRAM-SHA-256", m.Name())
	})

	t.Run("unknown mechanism", func(t *testing.T) {
		assert.Nil(t, resolveSASL(Config{SASLMechanism: "GSSAPI"}))
	})
}
