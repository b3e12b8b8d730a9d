// Package queue defines the contract between the dispatcher and the external
// command channel. Transports deliver at-least-once with no ordering
// guarantee across redelivery; consumers must tolerate duplicates.
package queue

import (
	"context"
)

// Message is an opaque envelope received from the external channel. Receipt
// is used only to acknowledge the message and is meaningless otherwise.
type Message struct {
	Body    string
	Receipt string
}

// Queue is a command source that hands out at most one message per call.
type Queue interface {
	// ReceiveOne fetches at most one message. A (nil, nil) return means the
	// queue was empty. The passed context bounds the round trip.
	ReceiveOne(ctx context.Context) (*Message, error)

	// Delete acknowledges a message by its receipt so it is not redelivered.
	Delete(ctx context.Context, receipt string) error
}
