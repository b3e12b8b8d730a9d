// Package core defines the contracts between the dispatch loop and the
// actuator hardware.
package core

import (
	"context"
)

// Motor identifies one side of the differential drive.
type Motor int

const (
	MotorLeft Motor = iota
	MotorRight
)

func (m Motor) String() string {
	if m == MotorLeft {
		return "left"
	}
	return "right"
}

// Polarity is the direction sense applied to a motor's rotation.
type Polarity int8

const (
	PolarityForward  Polarity = 1
	PolarityBackward Polarity = -1
)

func (p Polarity) String() string {
	if p == PolarityForward {
		return "forward"
	}
	return "backward"
}

// Batch accumulates per-motor instructions and issues them to the device as
// one coordinated command. The setup calls are local state mutations on the
// builder; only Send touches the wire.
type Batch interface {
	// SetPolarity queues a direction change for one motor.
	SetPolarity(m Motor, p Polarity)

	// StepAtSpeed queues a regulated-speed move for the given step count.
	StepAtSpeed(m Motor, speed int8, steps int32)

	// StepAtPower queues an unregulated-power move for the given step count.
	StepAtPower(m Motor, power int8, steps int32)

	// Send issues the queued instructions as one unit and returns once the
	// device acknowledges dispatch, not physical completion.
	Send(ctx context.Context) error
}

// Gateway owns the connection to the physical device.
type Gateway interface {
	// NewBatch starts an empty instruction batch.
	NewBatch() Batch

	// Close releases the device connection.
	Close() error
}
