package hw

import (
	"nescore/emu/log"
	"nescore/hw/hwio"
)

//go:generate go tool stringer -type=IORegister

// IORegister is a memory mapped register reachable from the CPU.
type IORegister uint16

const (
	PPUCTRL IORegister = 0x2000 + iota
	PPUMASK
	PPUSTATUS
	OAMADDR
	OAMDATA
	PPUSCROLL
	PPUADDR
	PPUDATA
)

const (
	OAMDMA IORegister = 0x4014
	JOY1   IORegister = 0x4016
	JOY2   IORegister = 0x4017
)

// PPURegisters is the CPU side of the PPU, mapped at $2000-$3FFF.
type PPURegisters interface {
	Control(val uint8)
	SetMask(val uint8)
	Status() uint8
	SetOAMAddress(val uint8)
	SetOAMData(val uint8)
	OAMData() uint8
	SetScroll(val uint8)
	SetDataAddress(val uint8)
	Data() uint8
	SetData(val uint8)
}

// DMA starts an OAM transfer from the given CPU page, mapped at $4014.
type DMA interface {
	StartDMA(page uint8)
}

// MainBus is the CPU address space.
type MainBus struct {
	RAM    *hwio.Mem // 2KB, mirrored up to $1FFF
	ExtRAM *hwio.Mem // 8KB at $6000-$7FFF, if the cartridge has some

	mapper Mapper
	ppu    PPURegisters
	dma    DMA
	pads   *Joypads
}

func NewMainBus() *MainBus {
	return &MainBus{
		RAM:    hwio.NewMem("RAM", 0x800, hwio.MemFlagReadWrite),
		ExtRAM: hwio.NewMem("ExtRAM", 0x2000, hwio.MemFlagReadWrite),
	}
}

func (b *MainBus) SetMapper(m Mapper)           { b.mapper = m }
func (b *MainBus) ConnectPPU(ppu PPURegisters)  { b.ppu = ppu }
func (b *MainBus) ConnectDMA(dma DMA)           { b.dma = dma }
func (b *MainBus) ConnectJoypads(pads *Joypads) { b.pads = pads }

// Reset clears RAM.
func (b *MainBus) Reset() {
	b.RAM.Reset()
	b.ExtRAM.Reset()
}

func (b *MainBus) hasExtRAM() bool {
	return b.mapper != nil && b.mapper.HasExtendedRAM()
}

func (b *MainBus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.RAM.Read8(uint32(addr))
	case addr < 0x4000:
		return b.readReg(IORegister(addr & 0x2007))
	case addr < 0x4020:
		return b.readReg(IORegister(addr))
	case addr < 0x6000:
		log.ModMem.DebugZ("Read from expansion ROM").Hex16("addr", addr).End()
		return 0
	case addr < 0x8000:
		if !b.hasExtRAM() {
			log.ModMem.DebugZ("Read from absent extended RAM").Hex16("addr", addr).End()
			return 0
		}
		return b.ExtRAM.Read8(uint32(addr - 0x6000))
	}

	if b.mapper == nil {
		log.ModMem.ErrorZ("Read from PRG without a mapper").Hex16("addr", addr).End()
		return 0
	}
	return b.mapper.ReadPRG(addr)
}

func (b *MainBus) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		b.RAM.Write8(uint32(addr), val)
	case addr < 0x4000:
		b.writeReg(IORegister(addr&0x2007), val)
	case addr < 0x4020:
		b.writeReg(IORegister(addr), val)
	case addr < 0x6000:
		log.ModMem.DebugZ("Write to expansion ROM").Hex16("addr", addr).Hex8("val", val).End()
	case addr < 0x8000:
		if !b.hasExtRAM() {
			log.ModMem.DebugZ("Write to absent extended RAM").Hex16("addr", addr).Hex8("val", val).End()
			return
		}
		b.ExtRAM.Write8(uint32(addr-0x6000), val)
	default:
		if b.mapper == nil {
			log.ModMem.ErrorZ("Write to PRG without a mapper").Hex16("addr", addr).Hex8("val", val).End()
			return
		}
		b.mapper.WritePRG(addr, val)
	}
}

func (b *MainBus) readReg(reg IORegister) uint8 {
	switch reg {
	case PPUSTATUS, OAMDATA, PPUDATA:
		if b.ppu == nil {
			break
		}
		switch reg {
		case PPUSTATUS:
			return b.ppu.Status()
		case OAMDATA:
			return b.ppu.OAMData()
		default:
			return b.ppu.Data()
		}
	case JOY1, JOY2:
		if b.pads == nil {
			break
		}
		return b.pads.Read(int(reg - JOY1))
	case PPUCTRL, PPUMASK, OAMADDR, PPUSCROLL, PPUADDR, OAMDMA:
		log.ModHwIo.DebugZ("Read from write-only register").Stringer("reg", reg).End()
		return 0
	default:
		log.ModHwIo.DebugZ("Read from APU register").Hex16("addr", uint16(reg)).End()
		return 0
	}

	log.ModHwIo.ErrorZ("No handle registered for register").Stringer("reg", reg).End()
	return 0
}

func (b *MainBus) writeReg(reg IORegister, val uint8) {
	switch reg {
	case PPUCTRL, PPUMASK, PPUSTATUS, OAMADDR, OAMDATA, PPUSCROLL, PPUADDR, PPUDATA:
		if b.ppu == nil {
			break
		}
		switch reg {
		case PPUCTRL:
			b.ppu.Control(val)
		case PPUMASK:
			b.ppu.SetMask(val)
		case PPUSTATUS:
			log.ModHwIo.DebugZ("Write to read-only register").Stringer("reg", reg).Hex8("val", val).End()
		case OAMADDR:
			b.ppu.SetOAMAddress(val)
		case OAMDATA:
			b.ppu.SetOAMData(val)
		case PPUSCROLL:
			b.ppu.SetScroll(val)
		case PPUADDR:
			b.ppu.SetDataAddress(val)
		case PPUDATA:
			b.ppu.SetData(val)
		}
		return
	case OAMDMA:
		if b.dma == nil {
			break
		}
		b.dma.StartDMA(val)
		return
	case JOY1:
		if b.pads == nil {
			break
		}
		b.pads.Strobe(val)
		return
	default:
		// $4017 writes go to the APU frame counter.
		log.ModHwIo.DebugZ("Write to APU register").Hex16("addr", uint16(reg)).Hex8("val", val).End()
		return
	}

	log.ModHwIo.ErrorZ("No handle registered for register").Stringer("reg", reg).Hex8("val", val).End()
}

// PagePtr returns the 256 bytes of memory backing the given CPU page, or nil
// if the page is not backed by memory.
func (b *MainBus) PagePtr(page uint8) []byte {
	addr := uint16(page) << 8
	switch {
	case addr < 0x2000:
		return b.RAM.Page(uint32(addr))
	case addr < 0x6000:
		return nil
	case addr < 0x8000:
		if !b.hasExtRAM() {
			return nil
		}
		return b.ExtRAM.Page(uint32(addr - 0x6000))
	}

	if b.mapper == nil {
		return nil
	}
	return b.mapper.PagePtr(addr)
}
