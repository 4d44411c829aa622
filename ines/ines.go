// Package ines implements a reader for roms in the iNES file format, used for
// the distribution of NES binary programs.
package ines

import (
	"io"
	"os"
)

const (
	HeaderSize  = 16
	PRGBankSize = 0x4000 // 16KB
	CHRBankSize = 0x2000 // 8KB
)

type Rom struct {
	header
	PRG []byte // PRG is PRG ROM data (length is a multiple of 16k)
	CHR []byte // CHR is CHR ROM data (length is a multiple of 8k), empty for CHR-RAM
}

// Open loads a rom from file.
func Open(path string) (*Rom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rom := new(Rom)
	if _, err := rom.ReadFrom(f); err != nil {
		return nil, err
	}
	return rom, nil
}

// ReadFrom implements io.ReaderFrom interface.
func (rom *Rom) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	if err := rom.decode(buf); err != nil {
		return 0, err
	}

	off := HeaderSize

	// PRG rom data
	if len(buf) < off+rom.prgsz {
		return 0, formatErrorf("incomplete PRG section: %d bytes, want %d", len(buf)-off, rom.prgsz)
	}
	rom.PRG = buf[off : off+rom.prgsz]
	off += rom.prgsz

	// CHR rom data
	if len(buf) < off+rom.chrsz {
		return 0, formatErrorf("incomplete CHR section: %d bytes, want %d", len(buf)-off, rom.chrsz)
	}
	rom.CHR = buf[off : off+rom.chrsz]

	return int64(len(buf)), nil
}

const Magic = "NES\x1a"

func (hdr *header) decode(p []byte) error {
	if len(p) < HeaderSize {
		return formatErrorf("file too small, needs %d bytes for the header", HeaderSize)
	}
	if string(p[:4]) != Magic {
		return formatErrorf("invalid magic number %q", p[:4])
	}
	copy(hdr.raw[:], p[:HeaderSize])

	if hdr.PRGBanks() == 0 {
		return formatErrorf("no PRG-ROM banks")
	}
	if hdr.HasTrainer() {
		return &UnsupportedFeatureError{Feature: "trainer"}
	}
	if hdr.IsPAL() {
		return &UnsupportedFeatureError{Feature: "PAL video"}
	}

	hdr.prgsz = hdr.PRGBanks() * PRGBankSize
	hdr.chrsz = hdr.CHRBanks() * CHRBankSize
	return nil
}

type header struct {
	raw   [HeaderSize]byte
	prgsz int
	chrsz int
}

// PRGBanks returns the number of 16KB PRG-ROM banks.
func (hdr *header) PRGBanks() int { return int(hdr.raw[4]) }

// CHRBanks returns the number of 8KB CHR-ROM banks.
func (hdr *header) CHRBanks() int { return int(hdr.raw[5]) }

// HasCHRRAM reports whether the cartridge has no CHR-ROM, in which case the
// mapper provides 8KB of CHR-RAM.
func (hdr *header) HasCHRRAM() bool { return hdr.CHRBanks() == 0 }

// HasTrainer indicates the presence of a trainer section in the rom.
func (hdr *header) HasTrainer() bool {
	return hdr.raw[6]&0x04 != 0
}

// HasExtendedRAM indicates the presence of 8KB of RAM at $6000-$7FFF.
func (hdr *header) HasExtendedRAM() bool {
	return hdr.raw[6]&0x02 != 0
}

// IsPAL reports whether the rom targets PAL or dual-region consoles.
func (hdr *header) IsPAL() bool {
	return hdr.raw[10]&0x3 == 0x2 || hdr.raw[10]&0x1 != 0
}

// Mirroring returns the nametable mirroring declared in the header (bits 0
// and 3 of byte 6). Bit 3 takes precedence.
func (hdr *header) Mirroring() Mirroring {
	if hdr.raw[6]&0x08 != 0 {
		return FourScreen
	}
	return Mirroring(hdr.raw[6] & 0x01)
}

// Mapper returns the mapper number, made of the high nibbles of bytes 6 and 7.
func (hdr *header) Mapper() uint8 {
	return (hdr.raw[6]>>4)&0x0F | hdr.raw[7]&0xF0
}
