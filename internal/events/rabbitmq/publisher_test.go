package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/gophboard-server/internal/model"
	"github.com/dtroode/gophboard-server/internal/testutil"
)

type fakeChannel struct {
	declareErr error
	declared   string
	durable    bool

	publishErr error
	published  []amqp.Publishing
	routingKey string
	deadline   bool

	closed bool
}

func (f *fakeChannel) QueueDeclare(name string, durable, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	if f.declareErr != nil {
		return amqp.Queue{}, f.declareErr
	}
	f.declared, f.durable = name, durable
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	_, f.deadline = ctx.Deadline()
	if f.publishErr != nil {
		return f.publishErr
	}
	f.routingKey = key
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestNewPublisher_DeclaresDurableQueue(t *testing.T) {
	ch := &fakeChannel{}

	p, err := newPublisher(ch, "board_events", testutil.MakeNoopLogger())
	require.NoError(t, err)

	assert.Equal(t, "board_events", ch.declared)
	assert.True(t, ch.durable)
	assert.Equal(t, "board_events", p.queue)
}

func TestNewPublisher_DeclareError(t *testing.T) {
	ch := &fakeChannel{declareErr: errors.New("access refused")}

	p, err := newPublisher(ch, "board_events", testutil.MakeNoopLogger())
	require.Error(t, err)
	assert.Nil(t, p)
	assert.True(t, ch.closed)
}

func TestPublisher_PublishPostCreated(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	fileID := int64(4)
	event := model.PostCreatedEvent{
		PostID:    10,
		OwnerID:   2,
		Title:     "hello",
		FileID:    &fileID,
		CreatedAt: now,
	}

	t.Run("success", func(t *testing.T) {
		ch := &fakeChannel{}
		p, err := newPublisher(ch, "board_events", testutil.MakeNoopLogger())
		require.NoError(t, err)
		p.now = func() time.Time { return now }

		require.NoError(t, p.PublishPostCreated(context.Background(), event))
		require.Len(t, ch.published, 1)

		msg := ch.published[0]
		assert.Equal(t, "board_events", ch.routingKey)
		assert.True(t, ch.deadline)
		assert.Equal(t, "application/json", msg.ContentType)
		assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
		assert.Equal(t, eventTypePostCreated, msg.Type)
		assert.Equal(t, now, msg.Timestamp)

		var decoded model.PostCreatedEvent
		require.NoError(t, json.Unmarshal(msg.Body, &decoded))
		assert.Equal(t, int64(10), decoded.PostID)
		require.NotNil(t, decoded.FileID)
		assert.Equal(t, fileID, *decoded.FileID)
	})

	t.Run("publish error", func(t *testing.T) {
		ch := &fakeChannel{publishErr: errors.New("channel closed")}
		p, err := newPublisher(ch, "board_events", testutil.MakeNoopLogger())
		require.NoError(t, err)

		err = p.PublishPostCreated(context.Background(), event)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to publish event")
	})
}

func TestPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newPublisher(ch, "board_events", testutil.MakeNoopLogger())
	require.NoError(t, err)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}
