package hw

import (
	"nescore/emu/log"
	"nescore/hw/hwio"
)

// PPUCTRL ($2000)
//
//	7  bit  0
//	---- ----
//	VPHB SINN
//	|||| ||||
//	|||| ||++- Base nametable address
//	|||| |+--- VRAM address increment per CPU read/write of PPUDATA
//	|||| +---- Sprite pattern table address for 8x8 sprites
//	|||+------ Background pattern table address
//	||+------- Sprite size (0: 8x8 pixels; 1: 8x16 pixels)
//	|+-------- PPU master/slave select (unused)
//	+--------- Generate an NMI at the start of vertical blanking
func (p *PPU) Control(ctrl uint8) {
	p.generateInterrupt = hwio.GetBit8(ctrl, 7)
	p.longSprites = hwio.GetBit8(ctrl, 5)
	p.bgPage = uint16(hwio.GetBiti8(ctrl, 4))
	p.sprPage = uint16(hwio.GetBiti8(ctrl, 3))
	if hwio.GetBit8(ctrl, 2) {
		p.dataAddrIncrement = 32
	} else {
		p.dataAddrIncrement = 1
	}
	p.tempAddr = p.tempAddr&^0xC00 | uint16(ctrl&0x3)<<10

	log.ModPPU.DebugZ("Write PPUCTRL").
		Hex8("val", ctrl).
		Bool("nmi", p.generateInterrupt).
		Bool("long", p.longSprites).
		Uint16("incr", p.dataAddrIncrement).
		End()
}

// PPUMASK ($2001)
//
//	7  bit  0
//	---- ----
//	BGRs bMmG
//	|||| ||||
//	|||| |||+- Greyscale
//	|||| ||+-- Show background in leftmost 8 pixels of screen
//	|||| |+--- Show sprites in leftmost 8 pixels of screen
//	|||| +---- Show background
//	|||+------ Show sprites
//	+++------- Color emphasis (unused)
func (p *PPU) SetMask(mask uint8) {
	p.greyscale = hwio.GetBit8(mask, 0)
	p.hideEdgeBg = !hwio.GetBit8(mask, 1)
	p.hideEdgeSpr = !hwio.GetBit8(mask, 2)
	p.showBg = hwio.GetBit8(mask, 3)
	p.showSprites = hwio.GetBit8(mask, 4)

	log.ModPPU.DebugZ("Write PPUMASK").Hex8("val", mask).End()
}

// Status returns PPUSTATUS ($2002). Reading it clears the vblank flag and
// resets the write toggle.
func (p *PPU) Status() uint8 {
	status := hwio.B2U8(p.sprZeroHit)<<6 | hwio.B2U8(p.vblank)<<7
	p.vblank = false
	p.firstWrite = true
	return status
}

// SetOAMAddress writes OAMADDR ($2003).
func (p *PPU) SetOAMAddress(addr uint8) {
	p.oamAddr = addr
}

// SetOAMData writes OAMDATA ($2004), OAMADDR is incremented.
func (p *PPU) SetOAMData(val uint8) {
	p.oam[p.oamAddr] = val
	p.oamAddr++
}

// OAMData reads OAMDATA ($2004).
func (p *PPU) OAMData() uint8 {
	return p.oam[p.oamAddr]
}

// SetScroll writes PPUSCROLL ($2005), X then Y.
func (p *PPU) SetScroll(val uint8) {
	if p.firstWrite {
		// coarse X and fine X
		p.tempAddr = p.tempAddr&^0x1F | uint16(val>>3)
		p.fineXScroll = val & 0x7
		p.firstWrite = false
	} else {
		// fine Y and coarse Y
		p.tempAddr = p.tempAddr&^0x73E0 | uint16(val&0x7)<<12 | uint16(val&0xF8)<<2
		p.firstWrite = true
	}
}

// SetDataAddress writes PPUADDR ($2006), high byte then low byte.
func (p *PPU) SetDataAddress(val uint8) {
	if p.firstWrite {
		p.tempAddr = p.tempAddr&^0xFF00 | uint16(val&0x3F)<<8
		p.firstWrite = false
	} else {
		p.tempAddr = p.tempAddr&^0xFF | uint16(val)
		p.dataAddr = p.tempAddr
		p.firstWrite = true
	}
}

// Data reads PPUDATA ($2007). Reads below the palette are delayed by one read
// through an internal buffer.
func (p *PPU) Data() uint8 {
	addr := p.dataAddr & 0x3FFF
	data := p.bus.Read(addr)
	p.dataAddr += p.dataAddrIncrement

	if addr < 0x3F00 {
		data, p.dataBuffer = p.dataBuffer, data
	}
	return data
}

// SetData writes PPUDATA ($2007).
func (p *PPU) SetData(val uint8) {
	p.bus.Write(p.dataAddr&0x3FFF, val)
	p.dataAddr += p.dataAddrIncrement
}

// DoDMA copies a 256 bytes page into OAM, starting at OAMADDR and wrapping
// around.
func (p *PPU) DoDMA(page []byte) {
	n := copy(p.oam[p.oamAddr:], page)
	copy(p.oam[:p.oamAddr], page[n:])
}
