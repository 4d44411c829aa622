package mappers

import (
	"nescore/hw/hwio"
	"nescore/ines"
)

const (
	prgPageSize = 0x4000
	chrPageSize = 0x1000
)

// base implements the behavior shared by all mappers: PRG is seen by the CPU
// through two 16KB windows and CHR by the PPU through two 4KB windows. Mappers
// switch banks by moving those windows.
type base struct {
	desc MapperDesc
	rom  *ines.Rom

	prg *hwio.Mem
	chr *hwio.Mem

	prgpages [2]uint32 // $8000 and $C000 windows
	chrpages [2]uint32 // $0000 and $1000 windows

	onMirroring func()
}

func newbase(desc MapperDesc, rom *ines.Rom, onMirroring func()) *base {
	b := &base{
		desc:        desc,
		rom:         rom,
		prg:         &hwio.Mem{Name: "PRG-ROM", Data: rom.PRG, Flags: hwio.MemFlag8ReadOnly},
		onMirroring: onMirroring,
	}
	if rom.HasCHRRAM() {
		b.chr = hwio.NewMem("CHR-RAM", ines.CHRBankSize, hwio.MemFlagReadWrite)
	} else {
		b.chr = &hwio.Mem{Name: "CHR-ROM", Data: rom.CHR, Flags: hwio.MemFlag8ReadOnly}
	}

	b.selectPRGPage16KB(0, 0)
	b.selectPRGPage16KB(1, -1)
	b.selectCHRPage8KB(0)
	return b
}

// selectPRGPage16KB maps the 16KB PRG bank into the given window. A negative
// bank counts from the end.
func (b *base) selectPRGPage16KB(window int, bank int) {
	nbanks := len(b.rom.PRG) / prgPageSize
	if bank < 0 {
		bank += nbanks
	}
	b.prgpages[window] = uint32((bank % nbanks) * prgPageSize)
}

// selectPRGPage32KB maps 2 consecutive 16KB banks, the low bit of bank is
// ignored.
func (b *base) selectPRGPage32KB(bank int) {
	bank &^= 1
	b.selectPRGPage16KB(0, bank)
	b.selectPRGPage16KB(1, bank+1)
}

func (b *base) selectCHRPage4KB(window int, bank int) {
	nbanks := b.chr.Size() / chrPageSize
	b.chrpages[window] = uint32((bank % nbanks) * chrPageSize)
}

func (b *base) selectCHRPage8KB(bank int) {
	b.selectCHRPage4KB(0, bank*2)
	b.selectCHRPage4KB(1, bank*2+1)
}

func (b *base) prgoff(addr uint16) uint32 {
	return b.prgpages[(addr>>14)&1] + uint32(addr&(prgPageSize-1))
}

func (b *base) chroff(addr uint16) uint32 {
	return b.chrpages[(addr>>12)&1] + uint32(addr&(chrPageSize-1))
}

func (b *base) ReadPRG(addr uint16) uint8 {
	return b.prg.Read8(b.prgoff(addr))
}

func (b *base) WritePRG(addr uint16, val uint8) {
	modMapper.WarnZ("Write to PRG-ROM").
		String("mapper", b.desc.Name).
		Hex16("addr", addr).
		Hex8("val", val).
		End()
}

func (b *base) ReadCHR(addr uint16) uint8 {
	return b.chr.Read8(b.chroff(addr))
}

func (b *base) WriteCHR(addr uint16, val uint8) {
	b.chr.Write8(b.chroff(addr), val)
}

func (b *base) PagePtr(addr uint16) []byte {
	return b.prg.Page(b.prgoff(addr &^ 0xFF))
}

func (b *base) HasExtendedRAM() bool {
	return b.rom.HasExtendedRAM()
}

func (b *base) Mirroring() ines.Mirroring {
	return b.rom.Mirroring()
}
