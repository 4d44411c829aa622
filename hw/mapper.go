package hw

import (
	"nescore/ines"
)

// Mapper is the cartridge circuitry translating CPU and PPU addresses into
// PRG and CHR memory offsets.
type Mapper interface {
	// ReadPRG reads from CPU space $8000-$FFFF.
	ReadPRG(addr uint16) uint8
	// WritePRG writes to CPU space $8000-$FFFF, usually a bank register.
	WritePRG(addr uint16, val uint8)

	// ReadCHR reads from PPU space $0000-$1FFF.
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, val uint8)

	// PagePtr returns a 256 bytes view of the PRG memory page containing
	// addr, or nil.
	PagePtr(addr uint16) []byte

	HasExtendedRAM() bool
	Mirroring() ines.Mirroring
}
