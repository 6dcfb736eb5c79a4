package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}

	err := p.Publish(context.Background(), TransactionPosted, TransactionPostedEvent{
		TransactionID: 7,
		AccountID:     "acc_123",
		Amount:        "39.99",
		Type:          "debit",
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "acc_123", string(msg.Key))
	assert.Equal(t, "type", msg.Headers[0].Key)
	assert.Equal(t, TransactionPosted, string(msg.Headers[0].Value))

	var envelope struct {
		Type string                 `json:"type"`
		Data TransactionPostedEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &envelope))
	assert.Equal(t, TransactionPosted, envelope.Type)
	assert.Equal(t, int64(7), envelope.Data.TransactionID)
	assert.Equal(t, "39.99", envelope.Data.Amount)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("broker down")}}

	err := p.Publish(context.Background(), UserRegistered, UserRegisteredEvent{UserID: "u1"})
	assert.ErrorContains(t, err, "broker down")
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), TransactionPosted, nil))
	assert.NoError(t, p.Close())
}
