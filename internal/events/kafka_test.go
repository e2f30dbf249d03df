package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisherWritesKeyedMessage(t *testing.T) {
	w := &recordingWriter{}
	pub := NewKafkaPublisher(w, zap.NewNop())
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	err := pub.Publish(context.Background(), Event{
		Type:       TypeProductCreated,
		Key:        "1234",
		OccurredAt: at,
		Payload:    map[string]any{"item": "Blender"},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "1234", string(msg.Key))
	assert.Equal(t, at, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, TypeProductCreated, string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, TypeProductCreated, decoded["type"])
	assert.Equal(t, "Blender", decoded["payload"].(map[string]any)["item"])
}

func TestKafkaPublisherReturnsWriteError(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker down")}
	pub := NewKafkaPublisher(w, zap.NewNop())

	err := pub.Publish(context.Background(), Event{Type: TypeProductDeleted, Key: "1"})
	assert.EqualError(t, err, "broker down")

	require.NoError(t, pub.Close())
	assert.True(t, w.closed)
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), Event{Type: TypeProductUpdated}))
}
