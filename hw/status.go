package hw

// P is the processor status register. Only the 6 architectural flags are
// stored, bits 4 and 5 only exist in the copy pushed on the stack.
type P uint8

const (
	Carry P = 1 << iota
	Zero
	IntDisable
	Decimal
	Break
	Unused
	Overflow
	Negative
)

const statusMask = Carry | Zero | IntDisable | Decimal | Overflow | Negative

func (p P) String() string {
	const bits = "nvubdizcNVUBDIZC"

	s := make([]byte, 8)
	for i := 0; i < 8; i++ {
		ibit := (uint8(p) & (1 << (7 - i))) >> (7 - i)
		s[i] = bits[i+int(8*ibit)]
	}
	return string(s)
}

func (p P) has(flag P) bool {
	return p&flag != 0
}

func (p *P) set(flag P, v bool) {
	if v {
		*p |= flag
	} else {
		*p &^= flag
	}
}

func (p *P) checkNZ(v uint8) {
	p.set(Negative, v&0x80 != 0)
	p.set(Zero, v == 0)
}

// carry returns the carry flag as 0 or 1.
func (p P) carry() uint8 {
	return uint8(p & Carry)
}

// pushed returns the value of P as pushed on the stack. Bit 5 is always set,
// bit 4 is set for BRK and PHP.
func (p P) pushed(brk bool) uint8 {
	v := uint8(p&statusMask) | uint8(Unused)
	if brk {
		v |= uint8(Break)
	}
	return v
}

// pulled loads P from a stack value, bits 4 and 5 are ignored.
func (p *P) pulled(v uint8) {
	*p = P(v) & statusMask
}
