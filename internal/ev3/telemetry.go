package ev3

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/gosuri/uitable"

	"github.com/roverlink-io/roverlink/internal/dispatcher/core"
	"github.com/roverlink-io/roverlink/pkg/log"
)

// Snapshot is one round of brick telemetry. It feeds diagnostics only, never
// control decisions.
type Snapshot struct {
	Battery    int8      `json:"battery"`
	TachoLeft  int32     `json:"tachoLeft"`
	TachoRight int32     `json:"tachoRight"`
	At         time.Time `json:"at"`
}

// readTelemetry fetches battery level and both drive tacho counts in a
// single direct command with a reply buffer.
func (b *Brick) readTelemetry() (Snapshot, error) {
	var code []byte

	// Global buffer layout: battery DATA8 at 0, tachos DATA32 at 4 and 8.
	code = append(code, opUIRead)
	code = lc(code, uiReadGetLBatt)
	code = gv(code, 0)

	code = append(code, opOutputGetCount)
	code = lc(code, 0)
	code = lc(code, int32(motorPortNos[core.MotorLeft]))
	code = gv(code, 4)

	code = append(code, opOutputGetCount)
	code = lc(code, 0)
	code = lc(code, int32(motorPortNos[core.MotorRight]))
	code = gv(code, 8)

	data, err := b.transact(code, 12)
	if err != nil {
		return Snapshot{}, err
	}
	if len(data) < 12 {
		return Snapshot{}, fmt.Errorf("short telemetry reply (%d bytes)", len(data))
	}

	return Snapshot{
		Battery:    int8(data[0]),
		TachoLeft:  int32(binary.LittleEndian.Uint32(data[4:8])),
		TachoRight: int32(binary.LittleEndian.Uint32(data[8:12])),
		At:         time.Now(),
	}, nil
}

// Monitor periodically polls the brick for telemetry and keeps the latest
// snapshot for the diagnostics endpoint.
type Monitor struct {
	brick    *Brick
	interval time.Duration

	mu    sync.RWMutex
	last  Snapshot
	valid bool
}

// NewMonitor returns a monitor polling at the given interval.
func NewMonitor(brick *Brick, interval time.Duration) *Monitor {
	return &Monitor{brick: brick, interval: interval}
}

// Run polls until ctx is canceled. Poll failures are logged and skipped; the
// monitor never interferes with command execution because all wire access is
// serialized inside the brick.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.poll()
		}
	}
}

func (m *Monitor) poll() {
	snap, err := m.brick.readTelemetry()
	if err != nil {
		log.Debug("Telemetry poll failed", err)
		return
	}

	m.mu.Lock()
	m.last = snap
	m.valid = true
	m.mu.Unlock()

	log.Debug("Brick telemetry\n" + renderSnapshot(snap))
}

// Snapshot returns the latest telemetry, if any round has succeeded yet.
func (m *Monitor) Snapshot() (Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last, m.valid
}

func renderSnapshot(s Snapshot) string {
	table := uitable.New()
	table.AddRow("BATTERY", "TACHO L", "TACHO R")
	table.AddRow(fmt.Sprintf("%d%%", s.Battery), s.TachoLeft, s.TachoRight)
	return table.String()
}
