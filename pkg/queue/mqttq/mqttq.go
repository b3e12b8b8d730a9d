// Package mqttq adapts an MQTT subscription into the pull-style queue
// contract, mainly for bench setups without AWS access. Messages arriving on
// the command topic are buffered and handed out one at a time.
package mqttq

import (
	"context"

	"github.com/roverlink-io/roverlink/pkg/log"
	"github.com/roverlink-io/roverlink/pkg/mqtt"
	"github.com/roverlink-io/roverlink/pkg/queue"
)

var _ queue.Queue = (*Queue)(nil)

// Queue buffers subscribed messages in a bounded channel.
type Queue struct {
	client      mqtt.Client
	topic       string
	statusTopic string
	buf         chan string
}

// New creates the adapter. depth bounds how many commands may pile up while
// one is executing; overflow is dropped with a warning.
func New(client mqtt.Client, topic, statusTopic string, depth int) *Queue {
	if depth <= 0 {
		depth = 16
	}
	return &Queue{
		client:      client,
		topic:       topic,
		statusTopic: statusTopic,
		buf:         make(chan string, depth),
	}
}

// Start connects the client, subscribes to the command topic and announces
// the dispatcher online.
func (q *Queue) Start(ctx context.Context) error {
	if err := q.client.Start(ctx); err != nil {
		return err
	}

	if err := q.client.AwaitConnection(ctx); err != nil {
		return err
	}

	if err := q.client.Subscribe(ctx, q.topic, 1, q.onMessage); err != nil {
		return err
	}

	if q.statusTopic != "" {
		if err := q.client.Publish(ctx, q.statusTopic, 1, true, []byte(`{"online":true}`)); err != nil {
			log.Warn("Failed to publish online status", "topic", q.statusTopic, err)
		}
	}

	return nil
}

// Stop disconnects the underlying client.
func (q *Queue) Stop(ctx context.Context) {
	q.client.Disconnect(ctx)
}

func (q *Queue) onMessage(ctx context.Context, topic string, payload []byte) {
	select {
	case q.buf <- string(payload):
	default:
		log.Warn("Command buffer full, dropping message", "topic", topic)
	}
}

// ReceiveOne pops one buffered message, or reports empty once the context's
// budget elapses.
func (q *Queue) ReceiveOne(ctx context.Context) (*queue.Message, error) {
	select {
	case body := <-q.buf:
		return &queue.Message{Body: body}, nil
	case <-ctx.Done():
		return nil, nil
	}
}

// Delete is a no-op; the broker considers the message acknowledged on
// delivery at QoS 1.
func (q *Queue) Delete(ctx context.Context, receipt string) error {
	return nil
}
