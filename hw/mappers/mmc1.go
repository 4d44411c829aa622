package mappers

import (
	"nescore/hw"
	"nescore/ines"
)

var SxROM = MapperDesc{
	Name: "SxROM",
	New:  newSxROM,
}

// mmc1 is the MMC1 ASIC found on SxROM boards. Its registers are written
// serially, one bit at a time, through a 5-bit shift register.
type mmc1 struct {
	*base

	serial  shiftReg // shift register
	counter uint8    // count of bits shifted

	// CTRL reg bits
	chrmode   uint8
	prgmode   uint8
	mirroring ines.Mirroring

	chrbank0 uint8
	chrbank1 uint8

	// PRG reg bits
	disableWRAM bool
	prgbank     uint8
}

func newSxROM(b *base) hw.Mapper {
	m := &mmc1{
		base:      b,
		mirroring: ines.Horizontal,
		prgmode:   3,
	}
	m.remap()
	return m
}

type shiftReg uint8

// push shifts val bit 0 in, from the MSB side (bits arrive LSB first).
func (sr shiftReg) push(val uint8) shiftReg {
	sr >>= 1
	sr |= shiftReg((val << 4) & 0x10)
	return sr
}

func (m *mmc1) WritePRG(addr uint16, val uint8) {
	if val&0x80 != 0 {
		// Reset:
		//	- ignore data bit
		//	- reset shift register (so that the next write is the "first" write)
		//	- PRG mode 3 (16k PRG mode, $8000 swappable)
		m.serial = 0
		m.counter = 0
		m.prgmode = 3
		m.remap()
		return
	}

	m.serial = m.serial.push(val)
	m.counter++
	if m.counter == 5 {
		m.writeREG(addr, uint8(m.serial))
		m.remap()
		m.serial = 0
		m.counter = 0
	}
}

func (m *mmc1) writeREG(addr uint16, val uint8) {
	switch (addr & 0x6000) >> 13 {
	case 0:
		m.writeCTRL(val)
	case 1:
		m.writeCHR0(val)
	case 2:
		m.writeCHR1(val)
	case 3:
		m.writePRG(val)
	}
}

func (m *mmc1) writeCTRL(val uint8) {
	// $8000-9FFF:  [...C PPMM]
	// C = CHR mode (0=8k mode, 1=4k mode)
	// P = PRG mode (0, 1: 32k, 2: fixed $8000, 3: fixed $C000)
	// M = Mirroring
	m.chrmode = (val & 0x10) >> 4
	m.prgmode = (val & 0x0C) >> 2

	switch val & 0x03 {
	case 0:
		m.mirroring = ines.OneScreenLower
	case 1:
		m.mirroring = ines.OneScreenHigher
	case 2:
		m.mirroring = ines.Vertical
	case 3:
		m.mirroring = ines.Horizontal
	}
	m.onMirroring()

	modMapper.DebugZ("Write CTRL reg").
		String("mapper", m.desc.Name).
		Uint8("val", val).
		Uint8("prgmode", m.prgmode).
		Uint8("chrmode", m.chrmode).
		Stringer("mirroring", m.mirroring).
		End()
}

func (m *mmc1) writeCHR0(val uint8) {
	modMapper.DebugZ("Write CHR0 reg").String("mapper", m.desc.Name).Uint8("val", val).End()
	m.chrbank0 = val & 0x1F
}

func (m *mmc1) writeCHR1(val uint8) {
	modMapper.DebugZ("Write CHR1 reg").String("mapper", m.desc.Name).Uint8("val", val).End()
	m.chrbank1 = val & 0x1F
}

func (m *mmc1) writePRG(val uint8) {
	// $E000-FFFF:  [...W PPPP]
	// W = WRAM Disable (0=enabled, 1=disabled)
	// P = PRG Reg
	m.disableWRAM = val&0x10 != 0
	m.prgbank = val & 0x0F

	modMapper.DebugZ("Write PRG reg").
		String("mapper", m.desc.Name).
		Uint8("val", val).
		Bool("wram-disable", m.disableWRAM).
		End()
}

func (m *mmc1) remap() {
	switch m.prgmode {
	case 0, 1:
		m.selectPRGPage32KB(int(m.prgbank))
	case 2:
		m.selectPRGPage16KB(0, 0)
		m.selectPRGPage16KB(1, int(m.prgbank))
	case 3:
		m.selectPRGPage16KB(0, int(m.prgbank))
		m.selectPRGPage16KB(1, -1)
	}

	switch m.chrmode {
	case 0:
		m.selectCHRPage8KB(int(m.chrbank0 >> 1))
	case 1:
		m.selectCHRPage4KB(0, int(m.chrbank0))
		m.selectCHRPage4KB(1, int(m.chrbank1))
	}
}

func (m *mmc1) Mirroring() ines.Mirroring {
	return m.mirroring
}
