package hw

func (c *CPU) executeImplied(opcode uint8) bool {
	switch opcode {
	case opNOP:
	case opBRK:
		// Cycles come from the opcode table.
		c.interrupt(BRK)
	case opJSR:
		// Push the address of the last byte of the instruction.
		c.push16(c.PC + 1)
		c.PC = c.read16(c.PC)
	case opRTS:
		c.PC = c.pull16() + 1
	case opRTI:
		c.P.pulled(c.pull8())
		c.PC = c.pull16()
	case opJMP:
		c.PC = c.read16(c.PC)
	case opJMPI:
		// The high byte is fetched without carrying into the page.
		loc := c.read16(c.PC)
		page := loc & 0xFF00
		lo := c.read(loc)
		hi := c.read(page | (loc+1)&0xFF)
		c.PC = uint16(hi)<<8 | uint16(lo)
	case opPHP:
		c.push8(c.P.pushed(true))
	case opPLP:
		c.P.pulled(c.pull8())
	case opPHA:
		c.push8(c.A)
	case opPLA:
		c.A = c.pull8()
		c.P.checkNZ(c.A)
	case opDEY:
		c.Y--
		c.P.checkNZ(c.Y)
	case opDEX:
		c.X--
		c.P.checkNZ(c.X)
	case opTAY:
		c.Y = c.A
		c.P.checkNZ(c.Y)
	case opINY:
		c.Y++
		c.P.checkNZ(c.Y)
	case opINX:
		c.X++
		c.P.checkNZ(c.X)
	case opCLC:
		c.P.set(Carry, false)
	case opSEC:
		c.P.set(Carry, true)
	case opCLI:
		c.P.set(IntDisable, false)
	case opSEI:
		c.P.set(IntDisable, true)
	case opCLD:
		c.P.set(Decimal, false)
	case opSED:
		c.P.set(Decimal, true)
	case opTYA:
		c.A = c.Y
		c.P.checkNZ(c.A)
	case opCLV:
		c.P.set(Overflow, false)
	case opTXA:
		c.A = c.X
		c.P.checkNZ(c.A)
	case opTXS:
		c.SP = c.X
	case opTAX:
		c.X = c.A
		c.P.checkNZ(c.X)
	case opTSX:
		c.X = c.SP
		c.P.checkNZ(c.X)
	default:
		return false
	}
	return true
}

func (c *CPU) executeBranch(opcode uint8) bool {
	if opcode&branchInstructionMask != branchInstructionMaskResult {
		return false
	}

	// bit 5 holds the expected flag value, bits 6-7 which flag to test.
	want := opcode&branchConditionMask != 0
	var flag P
	switch opcode >> branchOnFlagShift {
	case branchNegative:
		flag = Negative
	case branchOverflow:
		flag = Overflow
	case branchCarry:
		flag = Carry
	case branchZero:
		flag = Zero
	}

	if c.P.has(flag) != want {
		c.PC++
		return true
	}

	off := int8(c.read(c.PC))
	c.PC++
	c.Skip++
	dst := uint16(int(c.PC) + int(off))
	c.pageCrossed(c.PC, dst, 1)
	c.PC = dst
	return true
}

func (c *CPU) executeType1(opcode uint8) bool {
	if opcode&instructionModeMask != 0x1 {
		return false
	}

	op := (opcode & operationMask) >> operationShift
	var loc uint16
	switch (opcode & addrModeMask) >> addrModeShift {
	case indexedIndirectX:
		zaddr := c.X + c.read(c.PC)
		c.PC++
		loc = c.readZeroPage16(zaddr)
	case zeroPage:
		loc = uint16(c.read(c.PC))
		c.PC++
	case immediate:
		loc = c.PC
		c.PC++
	case absolute:
		loc = c.read16(c.PC)
		c.PC += 2
	case indirectY:
		zaddr := c.read(c.PC)
		c.PC++
		loc = c.readZeroPage16(zaddr)
		if op != STA {
			c.pageCrossed(loc, loc+uint16(c.Y), 1)
		}
		loc += uint16(c.Y)
	case indexedX:
		loc = uint16(c.read(c.PC) + c.X)
		c.PC++
	case absoluteY:
		loc = c.read16(c.PC)
		c.PC += 2
		if op != STA {
			c.pageCrossed(loc, loc+uint16(c.Y), 1)
		}
		loc += uint16(c.Y)
	case absoluteX:
		loc = c.read16(c.PC)
		c.PC += 2
		if op != STA {
			c.pageCrossed(loc, loc+uint16(c.X), 1)
		}
		loc += uint16(c.X)
	default:
		return false
	}

	switch op {
	case ORA:
		c.A |= c.read(loc)
		c.P.checkNZ(c.A)
	case AND:
		c.A &= c.read(loc)
		c.P.checkNZ(c.A)
	case EOR:
		c.A ^= c.read(loc)
		c.P.checkNZ(c.A)
	case ADC:
		c.adc(c.read(loc))
	case STA:
		c.write(loc, c.A)
	case LDA:
		c.A = c.read(loc)
		c.P.checkNZ(c.A)
	case SBC:
		c.sbc(c.read(loc))
	case CMP:
		c.compare(c.A, c.read(loc))
	default:
		return false
	}
	return true
}

func (c *CPU) executeType2(opcode uint8) bool {
	if opcode&instructionModeMask != 0x2 {
		return false
	}

	op := (opcode & operationMask) >> operationShift
	mode := (opcode & addrModeMask) >> addrModeShift

	// STX and LDX are indexed by Y.
	index := c.X
	if op == LDX || op == STX {
		index = c.Y
	}

	var loc uint16
	switch mode {
	case immediate2:
		loc = c.PC
		c.PC++
	case zeroPage2:
		loc = uint16(c.read(c.PC))
		c.PC++
	case accumulator:
	case absolute2:
		loc = c.read16(c.PC)
		c.PC += 2
	case indexed:
		loc = uint16(c.read(c.PC) + index)
		c.PC++
	case absoluteIndexed:
		loc = c.read16(c.PC)
		c.PC += 2
		// Read-modify-write instructions always take the extra cycle,
		// the table already accounts for it.
		if op == LDX {
			c.pageCrossed(loc, loc+uint16(index), 1)
		}
		loc += uint16(index)
	default:
		return false
	}

	switch op {
	case ASL, ROL, LSR, ROR:
		if mode == accumulator {
			c.A = c.shift(op, c.A)
		} else {
			c.write(loc, c.shift(op, c.read(loc)))
		}
	case STX:
		c.write(loc, c.X)
	case LDX:
		c.X = c.read(loc)
		c.P.checkNZ(c.X)
	case DEC:
		val := c.read(loc) - 1
		c.P.checkNZ(val)
		c.write(loc, val)
	case INC:
		val := c.read(loc) + 1
		c.P.checkNZ(val)
		c.write(loc, val)
	default:
		return false
	}
	return true
}

func (c *CPU) executeType0(opcode uint8) bool {
	if opcode&instructionModeMask != 0x0 {
		return false
	}

	op := (opcode & operationMask) >> operationShift
	var loc uint16
	switch (opcode & addrModeMask) >> addrModeShift {
	case immediate2:
		loc = c.PC
		c.PC++
	case zeroPage2:
		loc = uint16(c.read(c.PC))
		c.PC++
	case absolute2:
		loc = c.read16(c.PC)
		c.PC += 2
	case indexed:
		loc = uint16(c.read(c.PC) + c.X)
		c.PC++
	case absoluteIndexed:
		loc = c.read16(c.PC)
		c.PC += 2
		if op != STY {
			c.pageCrossed(loc, loc+uint16(c.X), 1)
		}
		loc += uint16(c.X)
	default:
		return false
	}

	switch op {
	case BIT:
		val := c.read(loc)
		c.P.set(Zero, c.A&val == 0)
		c.P.set(Overflow, val&0x40 != 0)
		c.P.set(Negative, val&0x80 != 0)
	case STY:
		c.write(loc, c.Y)
	case LDY:
		c.Y = c.read(loc)
		c.P.checkNZ(c.Y)
	case CPY:
		c.compare(c.Y, c.read(loc))
	case CPX:
		c.compare(c.X, c.read(loc))
	default:
		return false
	}
	return true
}

// readZeroPage16 reads a pointer from the zero page, wrapping within it.
func (c *CPU) readZeroPage16(zaddr uint8) uint16 {
	lo := c.read(uint16(zaddr))
	hi := c.read(uint16(zaddr + 1))
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) adc(val uint8) {
	sum := uint16(c.A) + uint16(val) + uint16(c.P.carry())
	c.P.set(Carry, sum&0x100 != 0)
	c.P.set(Overflow, (uint16(c.A)^sum)&(uint16(val)^sum)&0x80 != 0)
	c.A = uint8(sum)
	c.P.checkNZ(c.A)
}

func (c *CPU) sbc(val uint8) {
	diff := uint16(c.A) - uint16(val) - uint16(1-c.P.carry())
	c.P.set(Carry, diff&0x100 == 0)
	c.P.set(Overflow, (uint16(c.A)^diff)&(^uint16(val)^diff)&0x80 != 0)
	c.A = uint8(diff)
	c.P.checkNZ(c.A)
}

func (c *CPU) compare(reg, val uint8) {
	diff := uint16(reg) - uint16(val)
	c.P.set(Carry, diff&0x100 == 0)
	c.P.checkNZ(uint8(diff))
}

// shift implements ASL, ROL, LSR and ROR.
func (c *CPU) shift(op, val uint8) uint8 {
	carry := c.P.carry()
	switch op {
	case ASL, ROL:
		c.P.set(Carry, val&0x80 != 0)
		val <<= 1
		if op == ROL {
			val |= carry
		}
	case LSR, ROR:
		c.P.set(Carry, val&0x01 != 0)
		val >>= 1
		if op == ROR {
			val |= carry << 7
		}
	}
	c.P.checkNZ(val)
	return val
}
