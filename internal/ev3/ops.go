package ev3

import (
	"encoding/binary"
)

// Direct-command framing constants from the EV3 firmware bytecode reference.
const (
	cmdDirectReply   = 0x00
	cmdDirectNoReply = 0x80

	replyOK    = 0x02
	replyError = 0x04
)

// Output opcodes. The Step_* maneuvers start the motors themselves; no
// explicit opOutput_Start is required.
const (
	opOutputReset     = 0xA2
	opOutputStop      = 0xA3
	opOutputPolarity  = 0xA7
	opOutputStepPower = 0xAC
	opOutputStepSpeed = 0xAE
	opOutputGetCount  = 0xB3

	opUIRead       = 0x81
	uiReadGetLBatt = 0x12
)

// Output port bitfields (opOutput_* take a bitmask; opOutput_Get_Count takes
// a plain port number).
const (
	portA byte = 0x01
	portB byte = 0x02
	portC byte = 0x04
	portD byte = 0x08

	portNoB byte = 1
	portNoC byte = 2
)

// lc appends a long-constant parameter in the smallest encoding that fits:
// 6-bit immediate, or 0x81/0x82/0x83 followed by 1/2/4 little-endian bytes.
func lc(buf []byte, v int32) []byte {
	switch {
	case v >= -32 && v < 32:
		return append(buf, byte(v)&0x3F)
	case v >= -128 && v < 128:
		return append(buf, 0x81, byte(v))
	case v >= -32768 && v < 32768:
		return append(buf, 0x82, byte(v), byte(v>>8))
	default:
		buf = append(buf, 0x83)
		return binary.LittleEndian.AppendUint32(buf, uint32(v))
	}
}

// gv appends a global-variable handle (one-byte index form).
func gv(buf []byte, idx byte) []byte {
	return append(buf, 0xE1, idx)
}

// frame wraps bytecodes into a complete direct-command frame: u16 length
// (excluding itself), u16 message counter, command type, and the global/local
// variable allocation packed as ((locals & 0x3F) << 10) | (globals & 0x3FF).
func frame(counter uint16, cmdType byte, globals uint16, locals byte, bytecodes []byte) []byte {
	body := make([]byte, 0, 5+len(bytecodes))
	body = binary.LittleEndian.AppendUint16(body, counter)
	body = append(body, cmdType)

	alloc := (uint16(locals&0x3F) << 10) | (globals & 0x3FF)
	body = binary.LittleEndian.AppendUint16(body, alloc)
	body = append(body, bytecodes...)

	out := make([]byte, 0, 2+len(body))
	out = binary.LittleEndian.AppendUint16(out, uint16(len(body)))
	return append(out, body...)
}
