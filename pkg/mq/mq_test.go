package mq

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingChannel 记录发布的消息
type recordingChannel struct {
	published []amqp.Publishing
	keys      []string
	err       error
	closed    bool
}

func (c *recordingChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.keys = append(c.keys, key)
	c.published = append(c.published, msg)
	return nil
}

func (c *recordingChannel) Close() error {
	c.closed = true
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestPublisher_Publish(t *testing.T) {
	ch := &recordingChannel{}
	p := newPublisherWithChannel(ch, "bookcatalog.events", quietLogger())

	err := p.Publish(context.Background(), "book.created", map[string]interface{}{"bookId": 9})
	require.NoError(t, err)

	require.Len(t, ch.published, 1)
	assert.Equal(t, "book.created", ch.keys[0])

	msg := ch.published[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.False(t, msg.Timestamp.IsZero())

	var body map[string]int
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, 9, body["bookId"])
}

func TestPublisher_PublishError(t *testing.T) {
	errClosed := errors.New("channel closed")
	p := newPublisherWithChannel(&recordingChannel{err: errClosed}, "bookcatalog.events", quietLogger())

	err := p.Publish(context.Background(), "book.deleted", struct{}{})
	assert.ErrorIs(t, err, errClosed)

	err = p.Publish(context.Background(), "book.deleted", make(chan int))
	assert.Error(t, err)
}

func TestPublisher_Close(t *testing.T) {
	ch := &recordingChannel{}
	p := newPublisherWithChannel(ch, "bookcatalog.events", quietLogger())

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
	assert.Equal(t, "bookcatalog.events", p.Exchange())
}
