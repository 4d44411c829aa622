package hw

import (
	"nescore/emu/log"
)

// Locations reserved for vector pointers.
const (
	NMIVector   = uint16(0xFFFA) // Non-Maskable Interrupt
	ResetVector = uint16(0xFFFC) // Reset
	IRQVector   = uint16(0xFFFE) // Interrupt Request
)

// Bus is the CPU view of the address space.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

//go:generate go tool stringer -type=InterruptType

type InterruptType uint8

const (
	IRQ InterruptType = iota
	NMI
	BRK
)

// CPU is a 2A03 without the audio unit, that is a 6502 without decimal
// mode. Each instruction is executed atomically on the first cycle it
// occupies, the remaining cycles are then skipped.
type CPU struct {
	bus Bus

	// cpu registers
	A, X, Y, SP uint8
	PC          uint16
	P           P

	Cycles uint64 // total elapsed cycles
	Skip   int    // cycles left before the next instruction
}

func NewCPU(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// Reset loads PC from the reset vector and sets registers to their power-up
// state.
func (c *CPU) Reset() {
	c.ResetTo(c.read16(ResetVector))
}

// ResetTo is Reset but execution starts at addr.
func (c *CPU) ResetTo(addr uint16) {
	c.Skip = 0
	c.Cycles = 0
	c.A, c.X, c.Y = 0, 0, 0
	c.P = IntDisable
	c.PC = addr
	c.SP = 0xFD

	log.ModCPU.InfoZ("Reset").Hex16("PC", addr).End()
}

// Step advances the CPU by one cycle.
func (c *CPU) Step() {
	c.Cycles++

	if c.Skip > 1 {
		c.Skip--
		return
	}
	c.Skip = 0

	pc := c.PC
	opcode := c.read(c.PC)
	c.PC++

	ncycles := operationCycles[opcode]
	if ncycles == 0 || !c.execute(opcode) {
		log.ModCPU.ErrorZ("UnrecognizedOpcode").
			Hex16("PC", pc).
			Hex8("opcode", opcode).
			End()
		return
	}
	c.Skip += int(ncycles)

	log.ModCPU.DebugZ("op").
		Hex16("PC", pc).
		Hex8("opcode", opcode).
		Hex8("A", c.A).
		Hex8("X", c.X).
		Hex8("Y", c.Y).
		Stringer("P", c.P).
		Hex8("SP", c.SP).
		Uint64("CYC", c.Cycles).
		End()
}

func (c *CPU) execute(opcode uint8) bool {
	return c.executeImplied(opcode) ||
		c.executeBranch(opcode) ||
		c.executeType1(opcode) ||
		c.executeType2(opcode) ||
		c.executeType0(opcode)
}

// Interrupt triggers an interrupt, which takes 7 cycles. IRQ is ignored when
// interrupts are disabled.
func (c *CPU) Interrupt(typ InterruptType) {
	if c.interrupt(typ) {
		c.Skip += 7
	}
}

func (c *CPU) interrupt(typ InterruptType) bool {
	if c.P.has(IntDisable) && typ == IRQ {
		return false
	}

	if typ == BRK {
		c.PC++
	}

	prevpc := c.PC
	c.push16(c.PC)
	c.push8(c.P.pushed(typ == BRK))
	c.P.set(IntDisable, true)

	switch typ {
	case IRQ, BRK:
		c.PC = c.read16(IRQVector)
	case NMI:
		c.PC = c.read16(NMIVector)
	}

	log.ModCPU.DebugZ("Interrupt").
		Stringer("type", typ).
		Hex16("from", prevpc).
		Hex16("to", c.PC).
		End()
	return true
}

// SkipDMACycles stalls the CPU for the duration of an OAM DMA transfer.
func (c *CPU) SkipDMACycles() {
	c.Skip += 513
	// One more cycle when the transfer starts on an odd cycle.
	c.Skip += int(c.Cycles & 1)
}

func (c *CPU) read(addr uint16) uint8 {
	return c.bus.Read(addr)
}

func (c *CPU) write(addr uint16, val uint8) {
	c.bus.Write(addr, val)
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := c.read(addr)
	hi := c.read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

/* stack operations */

func (c *CPU) push8(val uint8) {
	c.write(0x100|uint16(c.SP), val)
	c.SP--
}

func (c *CPU) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val))
}

func (c *CPU) pull8() uint8 {
	c.SP++
	return c.read(0x100 | uint16(c.SP))
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}

// pageCrossed adds inc cycles if a and b lie on different pages.
func (c *CPU) pageCrossed(a, b uint16, inc int) {
	if a&0xFF00 != b&0xFF00 {
		c.Skip += inc
	}
}
