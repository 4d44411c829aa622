package tests

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	prgBankSize = 0x4000
	chrBankSize = 0x2000
)

// ROM builds iNES images in memory.
type ROM struct {
	Header [16]byte
	PRG    []byte
	CHR    []byte
}

// NewROM returns an NROM image with the given number of 16KB PRG banks and 8KB
// CHR banks. PRG is filled with NOP instructions.
func NewROM(prgBanks, chrBanks int) *ROM {
	r := &ROM{
		PRG: make([]byte, prgBanks*prgBankSize),
		CHR: make([]byte, chrBanks*chrBankSize),
	}
	copy(r.Header[:], "NES\x1a")
	r.Header[4] = uint8(prgBanks)
	r.Header[5] = uint8(chrBanks)
	for i := range r.PRG {
		r.PRG[i] = 0xEA
	}
	return r
}

// Mapper sets the mapper number.
func (r *ROM) Mapper(id uint8) *ROM {
	r.Header[6] = r.Header[6]&0x0F | id<<4
	r.Header[7] = r.Header[7]&0x0F | id&0xF0
	return r
}

// Vertical sets vertical nametable mirroring.
func (r *ROM) Vertical() *ROM {
	r.Header[6] |= 0x01
	return r
}

// ExtendedRAM declares 8KB of RAM at $6000-$7FFF.
func (r *ROM) ExtendedRAM() *ROM {
	r.Header[6] |= 0x02
	return r
}

// Code writes code at the given CPU address, using the NROM layout (the PRG
// is mirrored over $8000-$FFFF).
func (r *ROM) Code(addr uint16, code []byte) *ROM {
	off := int(addr-0x8000) % len(r.PRG)
	copy(r.PRG[off:], code)
	return r
}

// Vectors sets the NMI, RESET and IRQ vectors, stored at the end of the last
// PRG bank.
func (r *ROM) Vectors(nmi, reset, irq uint16) *ROM {
	last := r.PRG[len(r.PRG)-6:]
	last[0], last[1] = uint8(nmi), uint8(nmi>>8)
	last[2], last[3] = uint8(reset), uint8(reset>>8)
	last[4], last[5] = uint8(irq), uint8(irq>>8)
	return r
}

// Bytes returns the raw iNES image.
func (r *ROM) Bytes() []byte {
	buf := make([]byte, 0, len(r.Header)+len(r.PRG)+len(r.CHR))
	buf = append(buf, r.Header[:]...)
	buf = append(buf, r.PRG...)
	return append(buf, r.CHR...)
}

// WriteFile writes the image in a temporary directory and returns its path.
func (r *ROM) WriteFile(tb testing.TB) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "test.nes")
	if err := os.WriteFile(path, r.Bytes(), 0o644); err != nil {
		tb.Fatal(err)
	}
	return path
}

// Hex decodes space separated hexadecimal bytes, such as "a9 01 8d 00 02".
func Hex(tb testing.TB, s string) []byte {
	tb.Helper()

	buf, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		tb.Fatalf("invalid hex string %q: %s", s, err)
	}
	return buf
}
