package hwio

import (
	"nescore/emu/log"
)

type MemFlags int

const (
	MemFlagReadWrite MemFlags = 0
	MemFlag8ReadOnly MemFlags = (1 << iota) // writes are discarded and logged
	MemFlagNoROLog                          // with MemFlag8ReadOnly, skip logging
)

// Mem is a linear memory area. Offsets beyond the memory size wrap around,
// this is how mirrored regions are implemented.
type Mem struct {
	Name  string // name of the memory area (for debugging)
	Data  []byte // actual memory buffer
	Flags MemFlags
}

// NewMem allocates a zeroed memory area of the given size.
func NewMem(name string, size int, flags MemFlags) *Mem {
	return &Mem{Name: name, Data: make([]byte, size), Flags: flags}
}

func (m *Mem) off(off uint32) uint32 {
	size := uint32(len(m.Data))
	if size&(size-1) == 0 {
		return off & (size - 1)
	}
	return off % size
}

func (m *Mem) Read8(off uint32) uint8 {
	return m.Data[m.off(off)]
}

func (m *Mem) Write8(off uint32, val uint8) {
	if m.Flags&MemFlag8ReadOnly != 0 {
		if m.Flags&MemFlagNoROLog == 0 {
			log.ModHwIo.ErrorZ("Write8 to readonly memory").
				String("name", m.Name).
				Hex32("off", off).
				Hex8("val", val).
				End()
		}
		return
	}
	m.Data[m.off(off)] = val
}

// Page returns a 256 bytes view of the memory starting at off. It returns nil
// if the memory is not big enough.
func (m *Mem) Page(off uint32) []byte {
	if len(m.Data) < 0x100 {
		return nil
	}
	start := m.off(off)
	if int(start)+0x100 > len(m.Data) {
		return nil
	}
	return m.Data[start : start+0x100 : start+0x100]
}

// Reset fills the memory with zeroes.
func (m *Mem) Reset() {
	clear(m.Data)
}

// Size returns the physical size of the memory.
func (m *Mem) Size() int { return len(m.Data) }
