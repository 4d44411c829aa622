package hw

import (
	"nescore/emu/log"
)

// ButtonReader provides the state of the 8 buttons of a standard controller,
// in A, B, Select, Start, Up, Down, Left, Right order.
type ButtonReader interface {
	Buttons(port int) [8]bool
}

// Joypads handles I/O with both standard controllers through $4016 and
// $4017.
type Joypads struct {
	reader ButtonReader

	strobe bool
	state  [2]uint8 // state shift registers.
}

func NewJoypads(reader ButtonReader) *Joypads {
	return &Joypads{reader: reader}
}

func (jp *Joypads) load(port int) uint8 {
	if jp.reader == nil {
		// No controller is connected.
		return 0
	}

	var state uint8
	for i, pressed := range jp.reader.Buttons(port) {
		if pressed {
			state |= 1 << i
		}
	}
	return state
}

// Strobe handles writes to $4016. Leaving strobe mode latches the buttons of
// both controllers.
func (jp *Joypads) Strobe(val uint8) {
	jp.strobe = val&1 == 1
	if !jp.strobe {
		jp.state[0] = jp.load(0)
		jp.state[1] = jp.load(1)
		log.ModInput.DebugZ("Latch").
			Hex8("pad1", jp.state[0]).
			Hex8("pad2", jp.state[1]).
			End()
	}
}

// Read handles reads of $4016 (port 0) and $4017 (port 1).
func (jp *Joypads) Read(port int) uint8 {
	var ret uint8
	if jp.strobe {
		// Continuously reloaded, so always reports the A button.
		ret = jp.load(port) & 1
	} else {
		ret = jp.state[port] & 1
		// After 8 bits are read, all subsequent bits report 1 on a standard
		// NES controller.
		jp.state[port] = jp.state[port]>>1 | 0x80
	}

	// Emulate open bus behavior.
	return 0x40 | ret
}
