package dispatcher

import (
	"context"
	"time"

	"github.com/roverlink-io/roverlink/internal/pkg/metrics"
	"github.com/roverlink-io/roverlink/pkg/log"
	"github.com/roverlink-io/roverlink/pkg/queue"
)

// Poller fetches at most one message per call under a fixed time budget.
type Poller struct {
	queue  queue.Queue
	budget time.Duration
}

// NewPoller wraps q with the per-round-trip budget.
func NewPoller(q queue.Queue, budget time.Duration) *Poller {
	if budget <= 0 {
		budget = 125 * time.Millisecond
	}
	return &Poller{queue: q, budget: budget}
}

// Poll issues one bounded receive. On receipt it deletes the message before
// returning the body: non-duplication of actuation is traded for possible
// command loss if decode or actuation later fail. Deletion is fire-and-forget
// under its own budget and its failure is never escalated.
func (p *Poller) Poll(ctx context.Context) (string, bool) {
	rctx, cancel := context.WithTimeout(ctx, p.budget)
	msg, err := p.queue.ReceiveOne(rctx)
	cancel()

	if err != nil {
		if ctx.Err() == nil {
			log.Debug("Queue receive failed", err)
			metrics.QueuePollsTotal.WithLabelValues("error").Inc()
		}
		return "", false
	}
	if msg == nil {
		metrics.QueuePollsTotal.WithLabelValues("empty").Inc()
		return "", false
	}

	metrics.QueuePollsTotal.WithLabelValues("message").Inc()
	go p.deleteAsync(msg.Receipt)

	return msg.Body, true
}

func (p *Poller) deleteAsync(receipt string) {
	ctx, cancel := context.WithTimeout(context.Background(), p.budget)
	defer cancel()

	if err := p.queue.Delete(ctx, receipt); err != nil {
		// The transport redelivers; decoding and planning are idempotent.
		log.Debug("Message delete failed, redelivery possible", err)
		metrics.DeleteFailuresTotal.Inc()
	}
}
