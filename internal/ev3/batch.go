package ev3

import (
	"context"
	"fmt"

	"github.com/roverlink-io/roverlink/internal/dispatcher/core"
)

var _ core.Batch = (*batch)(nil)

// batch accumulates direct-command bytecodes for one coordinated maneuver.
// Every batch starts by resetting both drive outputs so step targets are
// relative to the current position, regardless of what ran before.
type batch struct {
	brick *Brick
	code  []byte
	sent  bool
}

func (x *batch) init() {
	if len(x.code) > 0 {
		return
	}
	x.code = append(x.code, opOutputReset)
	x.code = lc(x.code, 0)
	x.code = lc(x.code, int32(portB|portC))
}

func (x *batch) SetPolarity(m core.Motor, p core.Polarity) {
	x.init()
	x.code = append(x.code, opOutputPolarity)
	x.code = lc(x.code, 0)
	x.code = lc(x.code, int32(motorPorts[m]))
	x.code = lc(x.code, int32(p))
}

func (x *batch) StepAtSpeed(m core.Motor, speed int8, steps int32) {
	x.step(opOutputStepSpeed, m, int32(speed), steps)
}

func (x *batch) StepAtPower(m core.Motor, power int8, steps int32) {
	x.step(opOutputStepPower, m, int32(power), steps)
}

// step queues a full maneuver: no ramp-up or ramp-down segment, brake at the
// end so the rover holds its heading between commands.
func (x *batch) step(op byte, m core.Motor, level, steps int32) {
	x.init()
	x.code = append(x.code, op)
	x.code = lc(x.code, 0)
	x.code = lc(x.code, int32(motorPorts[m]))
	x.code = lc(x.code, level)
	x.code = lc(x.code, 0)     // ramp up
	x.code = lc(x.code, steps) // constant segment
	x.code = lc(x.code, 0)     // ramp down
	x.code = lc(x.code, 1)     // brake
}

// Send issues the queued instructions as one frame and returns once the
// brick acknowledges dispatch. The acknowledgment wait has no timeout; an
// unresponsive brick stalls the dispatch loop by design, since nothing else
// may run while a command is in flight.
func (x *batch) Send(ctx context.Context) error {
	if x.sent {
		return fmt.Errorf("batch already sent")
	}
	if len(x.code) == 0 {
		return fmt.Errorf("batch is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	x.sent = true
	_, err := x.brick.transact(x.code, 0)
	return err
}
