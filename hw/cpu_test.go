package hw

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"nescore/tests"
)

// flatBus is a 64KB RAM, without any mapped device.
type flatBus [0x10000]uint8

func (b *flatBus) Read(addr uint16) uint8       { return b[addr] }
func (b *flatBus) Write(addr uint16, val uint8) { b[addr] = val }

// loadCPUWith returns a CPU with code loaded at 0x0600, where execution starts.
func loadCPUWith(t *testing.T, code string) (*CPU, *flatBus) {
	t.Helper()

	bus := new(flatBus)
	copy(bus[0x0600:], tests.Hex(t, code))
	cpu := NewCPU(bus)
	cpu.ResetTo(0x0600)
	cpu.P = 0
	return cpu, bus
}

// execute runs the next instruction and returns the number of cycles it
// takes.
func execute(cpu *CPU) int {
	cpu.Skip = 0
	cpu.Step()
	return cpu.Skip
}

type cpuState struct {
	A, X, Y, SP uint8
	PC          uint16
	P           P
}

func stateOf(cpu *CPU) cpuState {
	return cpuState{A: cpu.A, X: cpu.X, Y: cpu.Y, SP: cpu.SP, PC: cpu.PC, P: cpu.P}
}

func TestReset(t *testing.T) {
	bus := new(flatBus)
	bus[0xFFFC] = 0x34
	bus[0xFFFD] = 0x12

	cpu := NewCPU(bus)
	cpu.A, cpu.X, cpu.Y = 1, 2, 3
	cpu.P = Carry | Zero | Negative | Overflow | Decimal
	cpu.Cycles, cpu.Skip = 100, 3
	cpu.Reset()

	want := cpuState{SP: 0xFD, PC: 0x1234, P: IntDisable}
	if diff := cmp.Diff(want, stateOf(cpu)); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
	if cpu.Cycles != 0 || cpu.Skip != 0 {
		t.Errorf("Cycles=%d Skip=%d, want 0 0", cpu.Cycles, cpu.Skip)
	}
}

func TestStepSkipsCycles(t *testing.T) {
	// LDA #$01 (2 cycles)
	// LDA $10  (3 cycles)
	// LDA #$03
	cpu, bus := loadCPUWith(t, `a9 01 a5 10 a9 03`)
	bus[0x10] = 0x02

	var as []uint8
	for i := 0; i < 6; i++ {
		cpu.Step()
		as = append(as, cpu.A)
	}
	want := []uint8{1, 1, 2, 2, 2, 3}
	if diff := cmp.Diff(want, as); diff != "" {
		t.Errorf("A per cycle mismatch (-want +got):\n%s", diff)
	}
	if cpu.Cycles != 6 {
		t.Errorf("Cycles = %d, want 6", cpu.Cycles)
	}
}

func TestInstructions(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		setup  func(*CPU, *flatBus)
		want   cpuState
		cycles int
	}{
		{
			name:   "LDA immediate negative",
			code:   `a9 80`,
			want:   cpuState{A: 0x80, SP: 0xFD, PC: 0x0602, P: Negative},
			cycles: 2,
		},
		{
			name:   "LDA immediate zero",
			code:   `a9 00`,
			want:   cpuState{SP: 0xFD, PC: 0x0602, P: Zero},
			cycles: 2,
		},
		{
			name:   "ADC signed overflow",
			code:   `69 50`,
			setup:  func(c *CPU, _ *flatBus) { c.A = 0x50 },
			want:   cpuState{A: 0xA0, SP: 0xFD, PC: 0x0602, P: Negative | Overflow},
			cycles: 2,
		},
		{
			name:   "ADC carry in and out",
			code:   `69 01`,
			setup:  func(c *CPU, _ *flatBus) { c.A = 0xFF; c.P = Carry },
			want:   cpuState{A: 0x01, SP: 0xFD, PC: 0x0602, P: Carry},
			cycles: 2,
		},
		{
			name:   "SBC with borrow",
			code:   `e9 f0`,
			setup:  func(c *CPU, _ *flatBus) { c.A = 0x50; c.P = Carry },
			want:   cpuState{A: 0x60, SP: 0xFD, PC: 0x0602},
			cycles: 2,
		},
		{
			name:   "SBC signed overflow",
			code:   `e9 01`,
			setup:  func(c *CPU, _ *flatBus) { c.A = 0x80; c.P = Carry },
			want:   cpuState{A: 0x7F, SP: 0xFD, PC: 0x0602, P: Carry | Overflow},
			cycles: 2,
		},
		{
			name:   "CMP equal",
			code:   `c9 40`,
			setup:  func(c *CPU, _ *flatBus) { c.A = 0x40 },
			want:   cpuState{A: 0x40, SP: 0xFD, PC: 0x0602, P: Zero | Carry},
			cycles: 2,
		},
		{
			name:   "CPX less",
			code:   `e0 41`,
			setup:  func(c *CPU, _ *flatBus) { c.X = 0x40 },
			want:   cpuState{X: 0x40, SP: 0xFD, PC: 0x0602, P: Negative},
			cycles: 2,
		},
		{
			name:   "CPY greater",
			code:   `c0 10`,
			setup:  func(c *CPU, _ *flatBus) { c.Y = 0x40 },
			want:   cpuState{Y: 0x40, SP: 0xFD, PC: 0x0602, P: Carry},
			cycles: 2,
		},
		{
			name:   "BIT",
			code:   `24 10`,
			setup:  func(c *CPU, b *flatBus) { c.A = 0x01; b[0x10] = 0xC0 },
			want:   cpuState{A: 0x01, SP: 0xFD, PC: 0x0602, P: Zero | Overflow | Negative},
			cycles: 3,
		},
		{
			name:   "LDA absolute,X page crossed",
			code:   `bd ff 01`,
			setup:  func(c *CPU, b *flatBus) { c.X = 1; b[0x0200] = 0x42 },
			want:   cpuState{A: 0x42, X: 1, SP: 0xFD, PC: 0x0603},
			cycles: 5,
		},
		{
			name:   "LDA absolute,Y same page",
			code:   `b9 00 02`,
			setup:  func(c *CPU, b *flatBus) { c.Y = 1; b[0x0201] = 0x42 },
			want:   cpuState{A: 0x42, Y: 1, SP: 0xFD, PC: 0x0603},
			cycles: 4,
		},
		{
			name:   "LDA (indirect),Y page crossed",
			code:   `b1 10`,
			setup:  func(c *CPU, b *flatBus) { c.Y = 2; b[0x10] = 0xFF; b[0x11] = 0x02; b[0x0301] = 0x42 },
			want:   cpuState{A: 0x42, Y: 2, SP: 0xFD, PC: 0x0602},
			cycles: 6,
		},
		{
			name:   "LDA (indirect,X) zero page wrap",
			code:   `a1 fe`,
			setup:  func(c *CPU, b *flatBus) { c.X = 1; b[0xFF] = 0x00; b[0x00] = 0x03; b[0x0300] = 0x42 },
			want:   cpuState{A: 0x42, X: 1, SP: 0xFD, PC: 0x0602},
			cycles: 6,
		},
		{
			name:   "LDA zero page,X wraps",
			code:   `b5 ff`,
			setup:  func(c *CPU, b *flatBus) { c.X = 2; b[0x01] = 0x42 },
			want:   cpuState{A: 0x42, X: 2, SP: 0xFD, PC: 0x0602},
			cycles: 4,
		},
		{
			name:   "LDX zero page,Y",
			code:   `b6 10`,
			setup:  func(c *CPU, b *flatBus) { c.X = 5; c.Y = 1; b[0x11] = 0x42 },
			want:   cpuState{X: 0x42, Y: 1, SP: 0xFD, PC: 0x0602},
			cycles: 4,
		},
		{
			name:   "LDX absolute,Y page crossed",
			code:   `be ff 01`,
			setup:  func(c *CPU, b *flatBus) { c.Y = 1; b[0x0200] = 0x42 },
			want:   cpuState{X: 0x42, Y: 1, SP: 0xFD, PC: 0x0603},
			cycles: 5,
		},
		{
			name:   "LDY absolute,X page crossed",
			code:   `bc ff 01`,
			setup:  func(c *CPU, b *flatBus) { c.X = 1; b[0x0200] = 0x42 },
			want:   cpuState{X: 1, Y: 0x42, SP: 0xFD, PC: 0x0603},
			cycles: 5,
		},
		{
			name:   "STA absolute,X never penalized",
			code:   `9d ff 01`,
			setup:  func(c *CPU, _ *flatBus) { c.A = 0x42; c.X = 1 },
			want:   cpuState{A: 0x42, X: 1, SP: 0xFD, PC: 0x0603},
			cycles: 5,
		},
		{
			name:   "INC absolute,X never penalized",
			code:   `fe ff 01`,
			setup:  func(c *CPU, b *flatBus) { c.X = 1; b[0x0200] = 0x7F },
			want:   cpuState{X: 1, SP: 0xFD, PC: 0x0603, P: Negative},
			cycles: 7,
		},
		{
			name:   "ASL accumulator",
			code:   `0a`,
			setup:  func(c *CPU, _ *flatBus) { c.A = 0x81 },
			want:   cpuState{A: 0x02, SP: 0xFD, PC: 0x0601, P: Carry},
			cycles: 2,
		},
		{
			name:   "ROL accumulator",
			code:   `2a`,
			setup:  func(c *CPU, _ *flatBus) { c.A = 0x40; c.P = Carry },
			want:   cpuState{A: 0x81, SP: 0xFD, PC: 0x0601, P: Negative},
			cycles: 2,
		},
		{
			name:   "LSR accumulator",
			code:   `4a`,
			setup:  func(c *CPU, _ *flatBus) { c.A = 0x01 },
			want:   cpuState{SP: 0xFD, PC: 0x0601, P: Carry | Zero},
			cycles: 2,
		},
		{
			name:   "TXS does not touch flags",
			code:   `9a`,
			setup:  func(c *CPU, _ *flatBus) { c.X = 0 },
			want:   cpuState{SP: 0, PC: 0x0601},
			cycles: 2,
		},
		{
			name:   "TSX",
			code:   `ba`,
			want:   cpuState{X: 0xFD, SP: 0xFD, PC: 0x0601, P: Negative},
			cycles: 2,
		},
		{
			name:   "DEY",
			code:   `88`,
			want:   cpuState{Y: 0xFF, SP: 0xFD, PC: 0x0601, P: Negative},
			cycles: 2,
		},
		{
			name:   "SEC SED SEI",
			code:   `38`,
			setup:  func(c *CPU, _ *flatBus) { c.P = Decimal | IntDisable },
			want:   cpuState{SP: 0xFD, PC: 0x0601, P: Carry | Decimal | IntDisable},
			cycles: 2,
		},
		{
			name:   "CLV",
			code:   `b8`,
			setup:  func(c *CPU, _ *flatBus) { c.P = Overflow | Carry },
			want:   cpuState{SP: 0xFD, PC: 0x0601, P: Carry},
			cycles: 2,
		},
		{
			name:   "BNE not taken",
			code:   `d0 10`,
			setup:  func(c *CPU, _ *flatBus) { c.P = Zero },
			want:   cpuState{SP: 0xFD, PC: 0x0602, P: Zero},
			cycles: 2,
		},
		{
			name:   "BNE taken",
			code:   `d0 10`,
			want:   cpuState{SP: 0xFD, PC: 0x0612},
			cycles: 3,
		},
		{
			name:   "BEQ taken backwards",
			code:   `f0 fc`,
			setup:  func(c *CPU, _ *flatBus) { c.P = Zero },
			want:   cpuState{SP: 0xFD, PC: 0x05FE, P: Zero},
			cycles: 4,
		},
		{
			name:   "BMI taken",
			code:   `30 02`,
			setup:  func(c *CPU, _ *flatBus) { c.P = Negative },
			want:   cpuState{SP: 0xFD, PC: 0x0604, P: Negative},
			cycles: 3,
		},
		{
			name:   "BVC taken",
			code:   `50 02`,
			want:   cpuState{SP: 0xFD, PC: 0x0604},
			cycles: 3,
		},
		{
			name:   "BCS not taken",
			code:   `b0 02`,
			want:   cpuState{SP: 0xFD, PC: 0x0602},
			cycles: 2,
		},
		{
			name:   "JMP absolute",
			code:   `4c 34 12`,
			want:   cpuState{SP: 0xFD, PC: 0x1234},
			cycles: 3,
		},
		{
			name:   "JMP indirect page wrap",
			code:   `6c ff 02`,
			setup:  func(c *CPU, b *flatBus) { b[0x02FF] = 0x34; b[0x0200] = 0x12; b[0x0300] = 0x56 },
			want:   cpuState{SP: 0xFD, PC: 0x1234},
			cycles: 5,
		},
		{
			name:   "JSR",
			code:   `20 34 12`,
			want:   cpuState{SP: 0xFB, PC: 0x1234},
			cycles: 6,
		},
		{
			name:   "PLA",
			code:   `68`,
			setup:  func(c *CPU, b *flatBus) { c.SP = 0xFC; b[0x01FD] = 0x80 },
			want:   cpuState{A: 0x80, SP: 0xFD, PC: 0x0601, P: Negative},
			cycles: 4,
		},
		{
			name:   "PLP ignores bits 4 and 5",
			code:   `28`,
			setup:  func(c *CPU, b *flatBus) { c.SP = 0xFC; b[0x01FD] = 0xFF },
			want:   cpuState{SP: 0xFD, PC: 0x0601, P: statusMask},
			cycles: 4,
		},
		{
			name:   "RTS",
			code:   `60`,
			setup:  func(c *CPU, b *flatBus) { c.SP = 0xFB; b[0x01FC] = 0x33; b[0x01FD] = 0x12 },
			want:   cpuState{SP: 0xFD, PC: 0x1234},
			cycles: 6,
		},
		{
			name: "RTI",
			code: `40`,
			setup: func(c *CPU, b *flatBus) {
				c.SP = 0xFA
				b[0x01FB] = 0xB1
				b[0x01FC] = 0x34
				b[0x01FD] = 0x12
			},
			want:   cpuState{SP: 0xFD, PC: 0x1234, P: Negative | Carry},
			cycles: 6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu, bus := loadCPUWith(t, tt.code)
			if tt.setup != nil {
				tt.setup(cpu, bus)
			}

			cycles := execute(cpu)
			if diff := cmp.Diff(tt.want, stateOf(cpu)); diff != "" {
				t.Errorf("state mismatch (-want +got):\n%s", diff)
			}
			if cycles != tt.cycles {
				t.Errorf("cycles = %d, want %d", cycles, tt.cycles)
			}
		})
	}
}

func TestMemoryWrites(t *testing.T) {
	t.Run("STA absolute", func(t *testing.T) {
		cpu, bus := loadCPUWith(t, `8d 00 02`)
		cpu.A = 0x42
		execute(cpu)
		if bus[0x0200] != 0x42 {
			t.Errorf("mem[0200] = %02x, want 42", bus[0x0200])
		}
	})

	t.Run("ROR zero page", func(t *testing.T) {
		cpu, bus := loadCPUWith(t, `66 10`)
		cpu.P = Carry
		bus[0x10] = 0x03
		execute(cpu)
		if bus[0x10] != 0x81 {
			t.Errorf("mem[10] = %02x, want 81", bus[0x10])
		}
		if cpu.P != Carry|Negative {
			t.Errorf("P = %s, want %s", cpu.P, Carry|Negative)
		}
	})

	t.Run("DEC zero page", func(t *testing.T) {
		cpu, bus := loadCPUWith(t, `c6 10`)
		bus[0x10] = 0x01
		execute(cpu)
		if bus[0x10] != 0x00 || cpu.P != Zero {
			t.Errorf("mem[10] = %02x P = %s, want 00 %s", bus[0x10], cpu.P, P(Zero))
		}
	})

	t.Run("JSR pushes return address minus one", func(t *testing.T) {
		cpu, bus := loadCPUWith(t, `20 34 12`)
		execute(cpu)
		got := []uint8{bus[0x01FD], bus[0x01FC]}
		if diff := cmp.Diff([]uint8{0x06, 0x02}, got); diff != "" {
			t.Errorf("stack mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("PHP sets bits 4 and 5", func(t *testing.T) {
		cpu, bus := loadCPUWith(t, `08`)
		cpu.P = Carry
		execute(cpu)
		if bus[0x01FD] != 0x31 {
			t.Errorf("pushed P = %02x, want 31", bus[0x01FD])
		}
		if cpu.SP != 0xFC {
			t.Errorf("SP = %02x, want fc", cpu.SP)
		}
	})

	t.Run("stack wraps within page 1", func(t *testing.T) {
		cpu, bus := loadCPUWith(t, `48`)
		cpu.A = 0x42
		cpu.SP = 0x00
		execute(cpu)
		if bus[0x0100] != 0x42 || cpu.SP != 0xFF {
			t.Errorf("mem[0100] = %02x SP = %02x, want 42 ff", bus[0x0100], cpu.SP)
		}
	})
}

func TestJSRRTSRoundTrip(t *testing.T) {
	// 0600: JSR $0700
	// 0603: LDX #$01
	// 0700: LDA #$42
	// 0702: RTS
	cpu, bus := loadCPUWith(t, `20 00 07 a2 01`)
	copy(bus[0x0700:], tests.Hex(t, `a9 42 60`))

	for i := 0; i < 4; i++ {
		execute(cpu)
	}
	want := cpuState{A: 0x42, X: 0x01, SP: 0xFD, PC: 0x0605}
	if diff := cmp.Diff(want, stateOf(cpu)); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestInterrupt(t *testing.T) {
	newCPU := func() (*CPU, *flatBus) {
		bus := new(flatBus)
		bus[0xFFFA], bus[0xFFFB] = 0x00, 0x90 // NMI
		bus[0xFFFE], bus[0xFFFF] = 0x00, 0xA0 // IRQ/BRK
		cpu := NewCPU(bus)
		cpu.ResetTo(0x1234)
		return cpu, bus
	}

	t.Run("IRQ masked", func(t *testing.T) {
		cpu, _ := newCPU()
		cpu.Interrupt(IRQ)
		if cpu.PC != 0x1234 || cpu.SP != 0xFD || cpu.Skip != 0 {
			t.Errorf("PC=%04x SP=%02x Skip=%d, want 1234 fd 0", cpu.PC, cpu.SP, cpu.Skip)
		}
	})

	tests := []struct {
		typ    InterruptType
		p      P
		wantPC uint16
		stack  []uint8 // PCH, PCL, P
	}{
		{IRQ, Carry, 0xA000, []uint8{0x12, 0x34, 0x21}},
		{NMI, IntDisable | Carry, 0x9000, []uint8{0x12, 0x34, 0x25}},
		{BRK, IntDisable, 0xA000, []uint8{0x12, 0x35, 0x34}},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			cpu, bus := newCPU()
			cpu.P = tt.p
			cpu.Interrupt(tt.typ)

			if cpu.PC != tt.wantPC {
				t.Errorf("PC = %04x, want %04x", cpu.PC, tt.wantPC)
			}
			if !cpu.P.has(IntDisable) {
				t.Errorf("I flag not set")
			}
			if cpu.Skip != 7 {
				t.Errorf("Skip = %d, want 7", cpu.Skip)
			}
			stack := []uint8{bus[0x01FD], bus[0x01FC], bus[0x01FB]}
			if diff := cmp.Diff(tt.stack, stack); diff != "" {
				t.Errorf("stack mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("BRK instruction", func(t *testing.T) {
		cpu, bus := loadCPUWith(t, `00 ff`)
		bus[0xFFFE], bus[0xFFFF] = 0x00, 0xA0

		if cycles := execute(cpu); cycles != 7 {
			t.Errorf("cycles = %d, want 7", cycles)
		}
		if cpu.PC != 0xA000 {
			t.Errorf("PC = %04x, want a000", cpu.PC)
		}
		// Return address skips the padding byte.
		stack := []uint8{bus[0x01FD], bus[0x01FC], bus[0x01FB]}
		if diff := cmp.Diff([]uint8{0x06, 0x02, 0x30}, stack); diff != "" {
			t.Errorf("stack mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestUnrecognizedOpcode(t *testing.T) {
	cpu, _ := loadCPUWith(t, `02 a9 01`)
	if cycles := execute(cpu); cycles != 0 {
		t.Errorf("cycles = %d, want 0", cycles)
	}
	if cpu.PC != 0x0601 {
		t.Errorf("PC = %04x, want 0601", cpu.PC)
	}

	// Execution goes on with the next byte.
	cpu.Step()
	if cpu.A != 0x01 {
		t.Errorf("A = %02x, want 01", cpu.A)
	}
}

func TestSkipDMACycles(t *testing.T) {
	bus := new(flatBus)
	cpu := NewCPU(bus)

	cpu.Cycles = 10
	cpu.SkipDMACycles()
	if cpu.Skip != 513 {
		t.Errorf("even cycle: Skip = %d, want 513", cpu.Skip)
	}

	cpu.Skip = 0
	cpu.Cycles = 11
	cpu.SkipDMACycles()
	if cpu.Skip != 514 {
		t.Errorf("odd cycle: Skip = %d, want 514", cpu.Skip)
	}
}
