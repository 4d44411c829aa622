package hw

import (
	"nescore/emu/log"
	"nescore/hw/hwio"
	"nescore/ines"
)

// PictureBus is the PPU address space: pattern tables from the cartridge,
// 2KB of nametable RAM and the palette.
type PictureBus struct {
	RAM     *hwio.Mem // 2 physical nametables
	Palette *hwio.Mem // 32 bytes

	mapper Mapper

	// offsets in RAM of the 4 logical nametables.
	nametables [4]uint32
}

func NewPictureBus() *PictureBus {
	return &PictureBus{
		RAM:     hwio.NewMem("VRAM", 0x800, hwio.MemFlagReadWrite),
		Palette: hwio.NewMem("Palette", 0x20, hwio.MemFlagReadWrite),
	}
}

func (pb *PictureBus) SetMapper(m Mapper) {
	pb.mapper = m
	pb.UpdateMirroring()
}

// UpdateMirroring recomputes the nametable layout from the mapper mirroring.
func (pb *PictureBus) UpdateMirroring() {
	if pb.mapper == nil {
		return
	}

	mirroring := pb.mapper.Mirroring()
	switch mirroring {
	case ines.Horizontal:
		pb.nametables = [4]uint32{0, 0, 0x400, 0x400}
	case ines.Vertical:
		pb.nametables = [4]uint32{0, 0x400, 0, 0x400}
	case ines.OneScreenLower:
		pb.nametables = [4]uint32{0, 0, 0, 0}
	case ines.OneScreenHigher:
		pb.nametables = [4]uint32{0x400, 0x400, 0x400, 0x400}
	default:
		log.ModPPU.ErrorZ("Unsupported nametable mirroring").Stringer("mirroring", mirroring).End()
		pb.nametables = [4]uint32{0, 0, 0, 0}
	}
	log.ModPPU.DebugZ("Nametable mirroring").Stringer("mirroring", mirroring).End()
}

func (pb *PictureBus) nametableOffset(addr uint16) uint32 {
	// $3000-$3EFF mirrors $2000-$2EFF.
	table := (addr >> 10) & 3
	return pb.nametables[table] + uint32(addr&0x3FF)
}

// paletteWriteIndex maps addr onto the 32 bytes palette. Writes to $3F10
// go to the backdrop color at $3F00.
func paletteWriteIndex(addr uint16) uint32 {
	idx := uint32(addr & 0x1F)
	if idx == 0x10 {
		idx = 0
	}
	return idx
}

func (pb *PictureBus) Read(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		if pb.mapper == nil {
			log.ModPPU.ErrorZ("Read from CHR without a mapper").Hex16("addr", addr).End()
			return 0
		}
		return pb.mapper.ReadCHR(addr)
	case addr < 0x3F00:
		return pb.RAM.Read8(pb.nametableOffset(addr))
	default:
		return pb.ReadPalette(uint8(addr))
	}
}

func (pb *PictureBus) Write(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		if pb.mapper == nil {
			log.ModPPU.ErrorZ("Write to CHR without a mapper").Hex16("addr", addr).Hex8("val", val).End()
			return
		}
		pb.mapper.WriteCHR(addr, val)
	case addr < 0x3F00:
		pb.RAM.Write8(pb.nametableOffset(addr), val)
	default:
		pb.Palette.Write8(paletteWriteIndex(addr), val)
	}
}

// ReadPalette returns the palette entry at idx (modulo 32).
func (pb *PictureBus) ReadPalette(idx uint8) uint8 {
	return pb.Palette.Read8(uint32(idx & 0x1F))
}
