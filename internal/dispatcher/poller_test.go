package dispatcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/roverlink-io/roverlink/pkg/queue"
)

type fakeQueue struct {
	msgs    []*queue.Message
	recvErr error

	deleted chan string
}

func newFakeQueue(msgs ...*queue.Message) *fakeQueue {
	return &fakeQueue{msgs: msgs, deleted: make(chan string, 8)}
}

func (q *fakeQueue) ReceiveOne(ctx context.Context) (*queue.Message, error) {
	if q.recvErr != nil {
		return nil, q.recvErr
	}
	if len(q.msgs) == 0 {
		return nil, nil
	}
	msg := q.msgs[0]
	q.msgs = q.msgs[1:]
	return msg, nil
}

func (q *fakeQueue) Delete(ctx context.Context, receipt string) error {
	q.deleted <- receipt
	return nil
}

func TestPollReturnsBodyAndDeletesOnce(t *testing.T) {
	q := newFakeQueue(&queue.Message{Body: `{"Message":"{}"}`, Receipt: "r-1"})
	p := NewPoller(q, 125*time.Millisecond)

	body, ok := p.Poll(t.Context())
	if !ok {
		t.Fatal("expected a message")
	}
	if body != `{"Message":"{}"}` {
		t.Errorf("body = %q", body)
	}

	select {
	case receipt := <-q.deleted:
		if receipt != "r-1" {
			t.Errorf("deleted receipt = %q, want r-1", receipt)
		}
	case <-time.After(time.Second):
		t.Fatal("message was never deleted")
	}

	select {
	case receipt := <-q.deleted:
		t.Errorf("unexpected second delete of %q", receipt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPollEmptyDoesNotDelete(t *testing.T) {
	q := newFakeQueue()
	p := NewPoller(q, 125*time.Millisecond)

	if _, ok := p.Poll(t.Context()); ok {
		t.Fatal("expected no message")
	}

	select {
	case receipt := <-q.deleted:
		t.Errorf("unexpected delete of %q", receipt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPollReceiveErrorIsNotFatal(t *testing.T) {
	q := newFakeQueue()
	q.recvErr = errors.New("transport down")
	p := NewPoller(q, 125*time.Millisecond)

	if _, ok := p.Poll(t.Context()); ok {
		t.Fatal("expected no message on receive error")
	}
}
