// Package ev3 drives a LEGO EV3 brick over a serial port using the
// firmware's direct-command bytecodes. It implements the actuator gateway
// contract: per-motor setup calls are local mutations on a batch builder and
// only the batch send touches the wire.
package ev3

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"go.bug.st/serial"

	"github.com/roverlink-io/roverlink/internal/dispatcher/core"
	"github.com/roverlink-io/roverlink/pkg/log"
	"github.com/roverlink-io/roverlink/pkg/options"
)

// Motor-to-port wiring of the rover: left motor on output B, right on C.
var motorPorts = map[core.Motor]byte{
	core.MotorLeft:  portB,
	core.MotorRight: portC,
}

var motorPortNos = map[core.Motor]byte{
	core.MotorLeft:  portNoB,
	core.MotorRight: portNoC,
}

var _ core.Gateway = (*Brick)(nil)

// Brick owns the single serial connection to the EV3. All wire access is
// serialized through the mutex so reply frames can be matched to their
// request counter.
type Brick struct {
	port io.ReadWriteCloser

	mu      sync.Mutex
	counter uint16
}

// Open connects to the brick. Failure here is fatal for the process: the
// dispatcher refuses to enter its loop without a device.
func Open(opts *options.Ev3Options) (*Brick, error) {
	mode := &serial.Mode{BaudRate: opts.BaudRate}

	port, err := serial.Open(opts.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open ev3 port %s: %w", opts.Port, err)
	}

	log.Info("Connected to EV3 brick", "port", opts.Port, "baud", opts.BaudRate)

	return &Brick{port: port}, nil
}

// NewBatch starts an empty instruction batch.
func (b *Brick) NewBatch() core.Batch {
	return &batch{brick: b}
}

// Close releases the serial port.
func (b *Brick) Close() error {
	return b.port.Close()
}

// transact writes one direct-command frame expecting a reply and blocks
// until the brick acknowledges it. The wait is unbounded: a hung connection
// stalls the caller, matching the loop's one-command-in-flight discipline.
func (b *Brick) transact(bytecodes []byte, globals uint16) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.counter++
	counter := b.counter

	if _, err := b.port.Write(frame(counter, cmdDirectReply, globals, 0, bytecodes)); err != nil {
		return nil, fmt.Errorf("write to brick failed: %w", err)
	}

	for {
		reply, err := b.readFrame()
		if err != nil {
			return nil, err
		}
		if len(reply) < 3 {
			return nil, fmt.Errorf("short reply frame (%d bytes)", len(reply))
		}

		// Stale replies from earlier commands are discarded.
		if binary.LittleEndian.Uint16(reply[0:2]) != counter {
			log.Debug("Discarding stale reply frame")
			continue
		}

		if reply[2] != replyOK {
			return nil, fmt.Errorf("brick rejected command %d (reply type 0x%02x)", counter, reply[2])
		}
		return reply[3:], nil
	}
}

// readFrame reads one length-prefixed reply frame.
func (b *Brick) readFrame() ([]byte, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(b.port, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("read from brick failed: %w", err)
	}

	size := binary.LittleEndian.Uint16(lenBuf[:])
	body := make([]byte, size)
	if _, err := io.ReadFull(b.port, body); err != nil {
		return nil, fmt.Errorf("read from brick failed: %w", err)
	}

	return body, nil
}
