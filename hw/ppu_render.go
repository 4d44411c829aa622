package hw

// renderDot renders one dot of a visible scanline.
func (p *PPU) renderDot() {
	switch {
	case p.cycle > 0 && p.cycle <= scanlineVisibleDots:
		p.renderPixel(p.cycle-1, p.scanline)
	case p.cycle == scanlineVisibleDots+1 && p.showBg:
		p.incrementY()
	case p.cycle == scanlineVisibleDots+2 && p.rendering():
		p.copyHorizontal()
	}
}

func (p *PPU) renderPixel(x, y int) {
	bgColor, bgOpaque := p.backgroundPixel(x)
	sprColor, sprOpaque, sprForeground := p.spritePixel(x, y, bgOpaque)

	color := bgColor
	switch {
	case (!bgOpaque && sprOpaque) || (bgOpaque && sprOpaque && sprForeground):
		color = sprColor
	case !bgOpaque && !sprOpaque:
		color = 0
	}

	idx := p.bus.ReadPalette(color)
	if p.greyscale {
		idx &= 0x30
	}
	p.picture.Pix[y*FrameWidth+x] = idx & 0x3F
}

func (p *PPU) backgroundPixel(x int) (color uint8, opaque bool) {
	if !p.showBg {
		return 0, false
	}

	xFine := (int(p.fineXScroll) + x) % 8
	if !p.hideEdgeBg || x >= 8 {
		// Fetch tile, fine Y is masked off.
		tile := uint16(p.bus.Read(0x2000 | p.dataAddr&0x0FFF))

		// Fetch pattern. Each pattern occupies 16 bytes, the 2 bitplanes
		// are 8 bytes apart.
		addr := tile*16 + (p.dataAddr>>12)&0x7 | p.bgPage<<12
		shift := uint(7 ^ xFine)
		color = (p.bus.Read(addr) >> shift) & 1
		color |= ((p.bus.Read(addr+8) >> shift) & 1) << 1
		opaque = color != 0

		// Attribute byte holds the upper 2 bits of the palette index.
		addr = 0x23C0 | p.dataAddr&0x0C00 | (p.dataAddr>>4)&0x38 | (p.dataAddr>>2)&0x07
		attr := p.bus.Read(addr)
		ashift := (p.dataAddr>>4)&4 | p.dataAddr&2
		color |= ((attr >> ashift) & 0x3) << 2
	}

	if xFine == 7 {
		p.incrementCoarseX()
	}
	return color, opaque
}

func (p *PPU) spritePixel(x, y int, bgOpaque bool) (color uint8, opaque, foreground bool) {
	if !p.showSprites || (p.hideEdgeSpr && x < 8) {
		return 0, false, false
	}

	length := 8
	if p.longSprites {
		length = 16
	}

	for _, i := range p.scanlineSprites {
		sprX := int(p.oam[int(i)*4+3])
		if x-sprX < 0 || x-sprX >= 8 {
			continue
		}

		sprY := int(p.oam[int(i)*4+0]) + 1
		tile := uint16(p.oam[int(i)*4+1])
		attr := p.oam[int(i)*4+2]

		xShift := (x - sprX) % 8
		yOffset := (y - sprY) % length
		if attr&0x40 == 0 {
			// Not flipped horizontally.
			xShift ^= 7
		}
		if attr&0x80 != 0 {
			yOffset ^= length - 1
		}

		var addr uint16
		if !p.longSprites {
			addr = tile*16 + uint16(yOffset) | p.sprPage<<12
		} else {
			// Bit 3 selects the bottom tile, the next pattern.
			yOffset = (yOffset & 7) | (yOffset&8)<<1
			addr = (tile>>1)*32 + uint16(yOffset)
			addr |= (tile & 1) << 12
		}

		color = (p.bus.Read(addr) >> xShift) & 1
		color |= ((p.bus.Read(addr+8) >> xShift) & 1) << 1
		if color == 0 {
			continue
		}

		color |= 0x10 | (attr&0x3)<<2
		foreground = attr&0x20 == 0

		if i == 0 && p.showBg && bgOpaque && !p.sprZeroHit {
			p.sprZeroHit = true
		}

		// Highest priority sprite found.
		return color, true, foreground
	}
	return 0, false, false
}

func (p *PPU) incrementCoarseX() {
	if p.dataAddr&0x001F == 31 {
		p.dataAddr &^= 0x001F
		// Switch horizontal nametable.
		p.dataAddr ^= 0x0400
	} else {
		p.dataAddr++
	}
}

func (p *PPU) incrementY() {
	if p.dataAddr&0x7000 != 0x7000 {
		// fine Y < 7
		p.dataAddr += 0x1000
		return
	}

	p.dataAddr &^= 0x7000
	y := (p.dataAddr & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		// Switch vertical nametable.
		p.dataAddr ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.dataAddr = p.dataAddr&^0x03E0 | y<<5
}

// evaluateSprites builds the list of sprites visible on the next scanline.
func (p *PPU) evaluateSprites() {
	length := 8
	if p.longSprites {
		length = 16
	}

	p.scanlineSprites = p.scanlineSprites[:0]
	for i := 0; i < 64; i++ {
		diff := p.scanline - int(p.oam[i*4])
		if diff >= 0 && diff < length {
			p.scanlineSprites = append(p.scanlineSprites, uint8(i))
			if len(p.scanlineSprites) == 8 {
				break
			}
		}
	}
}
