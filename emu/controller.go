package emu

import (
	"fmt"
	"strings"
	"sync/atomic"

	"nescore/emu/log"
	"nescore/hw"
	"nescore/hw/input"
)

var _ hw.ButtonReader = (*StdControllerPair)(nil)

// StdControllerPair is a pair of standard controllers whose state is set
// programmatically. It can be updated concurrently with the emulation.
type StdControllerPair struct {
	Pad1Connected bool
	Pad2Connected bool

	state atomic.Uint32 // pad 1 in the low byte, pad 2 in the next one
}

// SetState sets all buttons of the pad on port, one bit per input.Button.
func (c *StdControllerPair) SetState(port int, buttons uint8) {
	shift := 8 * uint(port&1)
	for {
		old := c.state.Load()
		cur := old&^(0xFF<<shift) | uint32(buttons)<<shift
		if c.state.CompareAndSwap(old, cur) {
			break
		}
	}
	log.ModInput.DebugZ("input state update").
		Int("port", port).
		Hex8("buttons", buttons).
		End()
}

func (c *StdControllerPair) Press(port int, btn input.Button) {
	c.SetState(port, c.State(port)|1<<btn)
}

func (c *StdControllerPair) Release(port int, btn input.Button) {
	c.SetState(port, c.State(port)&^(1<<btn))
}

// State returns the buttons of the pad on port, one bit per input.Button.
func (c *StdControllerPair) State(port int) uint8 {
	return uint8(c.state.Load() >> (8 * uint(port&1)))
}

// Buttons implements hw.ButtonReader.
func (c *StdControllerPair) Buttons(port int) [8]bool {
	var btns [8]bool
	if (port == 0 && !c.Pad1Connected) || (port == 1 && !c.Pad2Connected) {
		return btns
	}
	state := c.State(port)
	for i := range btns {
		btns[i] = state&(1<<i) != 0
	}
	return btns
}

// ParseButtons parses a comma separated list of button names, such as
// "A,Start", into a button state.
func ParseButtons(s string) (uint8, error) {
	var state uint8
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		found := false
		for b := input.A; b < input.ButtonCount; b++ {
			if strings.EqualFold(name, b.String()) {
				state |= 1 << b
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown button %q", name)
		}
	}
	return state, nil
}
