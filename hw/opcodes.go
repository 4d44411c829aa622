package hw

// Opcodes are decoded by groups. Apart from the implied and branch
// instructions, an opcode is laid out as aaabbbcc where cc selects the
// instruction group, aaa the operation and bbb the addressing mode.
const (
	instructionModeMask = 0x3

	operationMask  = 0xE0
	operationShift = 5

	addrModeMask  = 0x1C
	addrModeShift = 2

	branchInstructionMask       = 0x1F
	branchInstructionMaskResult = 0x10
	branchConditionMask         = 0x20
	branchOnFlagShift           = 6
)

// Flags tested by branch instructions, indexed by the two top opcode bits.
const (
	branchNegative = iota
	branchOverflow
	branchCarry
	branchZero
)

// Group 1 (cc = 01).
const (
	ORA = iota
	AND
	EOR
	ADC
	STA
	LDA
	CMP
	SBC
)

const (
	indexedIndirectX = iota
	zeroPage
	immediate
	absolute
	indirectY
	indexedX
	absoluteY
	absoluteX
)

// Group 2 (cc = 10).
const (
	ASL = iota
	ROL
	LSR
	ROR
	STX
	LDX
	DEC
	INC
)

// Group 2 and group 0 share addressing modes.
const (
	immediate2      = 0
	zeroPage2       = 1
	accumulator     = 2
	absolute2       = 3
	indexed         = 5
	absoluteIndexed = 7
)

// Group 0 (cc = 00).
const (
	BIT = 1
	STY = 4
	LDY = 5
	CPY = 6
	CPX = 7
)

// Implied (single byte or irregular) instructions.
const (
	opNOP  = 0xEA
	opBRK  = 0x00
	opJSR  = 0x20
	opRTI  = 0x40
	opRTS  = 0x60
	opJMP  = 0x4C
	opJMPI = 0x6C // JMP Indirect
	opPHP  = 0x08
	opPLP  = 0x28
	opPHA  = 0x48
	opPLA  = 0x68
	opDEY  = 0x88
	opDEX  = 0xCA
	opTAY  = 0xA8
	opINY  = 0xC8
	opINX  = 0xE8
	opCLC  = 0x18
	opSEC  = 0x38
	opCLI  = 0x58
	opSEI  = 0x78
	opTYA  = 0x98
	opCLV  = 0xB8
	opCLD  = 0xD8
	opSED  = 0xF8
	opTXA  = 0x8A
	opTXS  = 0x9A
	opTAX  = 0xAA
	opTSX  = 0xBA
)

// operationCycles holds the base cycle count of each opcode, 0 marks an
// unsupported opcode.
var operationCycles = [0x100]uint8{
	7, 6, 0, 0, 0, 3, 5, 0, 3, 2, 2, 0, 0, 4, 6, 0,
	2, 5, 0, 0, 0, 4, 6, 0, 2, 4, 0, 0, 0, 4, 7, 0,
	6, 6, 0, 0, 3, 3, 5, 0, 4, 2, 2, 0, 4, 4, 6, 0,
	2, 5, 0, 0, 0, 4, 6, 0, 2, 4, 0, 0, 0, 4, 7, 0,
	6, 6, 0, 0, 0, 3, 5, 0, 3, 2, 2, 0, 3, 4, 6, 0,
	2, 5, 0, 0, 0, 4, 6, 0, 2, 4, 0, 0, 0, 4, 7, 0,
	6, 6, 0, 0, 0, 3, 5, 0, 4, 2, 2, 0, 5, 4, 6, 0,
	2, 5, 0, 0, 0, 4, 6, 0, 2, 4, 0, 0, 0, 4, 7, 0,
	0, 6, 0, 0, 3, 3, 3, 0, 2, 0, 2, 0, 4, 4, 4, 0,
	2, 6, 0, 0, 4, 4, 4, 0, 2, 5, 2, 0, 0, 5, 0, 0,
	2, 6, 2, 0, 3, 3, 3, 0, 2, 2, 2, 0, 4, 4, 4, 0,
	2, 5, 0, 0, 4, 4, 4, 0, 2, 4, 2, 0, 4, 4, 4, 0,
	2, 6, 0, 0, 3, 3, 5, 0, 2, 2, 2, 0, 4, 4, 6, 0,
	2, 5, 0, 0, 0, 4, 6, 0, 2, 4, 0, 0, 0, 4, 7, 0,
	2, 6, 0, 0, 3, 3, 5, 0, 2, 2, 2, 2, 4, 4, 6, 0,
	2, 5, 0, 0, 0, 4, 6, 0, 2, 4, 0, 0, 0, 4, 7, 0,
}
