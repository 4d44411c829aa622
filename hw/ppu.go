package hw

import (
	"nescore/emu/log"
)

const (
	scanlineEndCycle    = 340
	visibleScanlines    = 240
	scanlineVisibleDots = 256
	frameEndScanline    = 261
)

//go:generate go tool stringer -type=PipelineState

// PipelineState is the part of the frame the PPU is rendering.
type PipelineState uint8

const (
	PreRender PipelineState = iota
	Render
	PostRender
	VerticalBlank
)

// counters locate the PPU within the frame.
type counters struct {
	cycle     int
	scanline  int
	evenFrame bool
}

// Screen receives rendered frames.
type Screen interface {
	// SetFrame is called once per frame. The frame is only valid until the
	// next call.
	SetFrame(*Frame)
}

// PPU is the 2C02 picture processing unit.
type PPU struct {
	bus    *PictureBus
	screen Screen
	nmi    func()

	oam             [256]uint8
	scanlineSprites []uint8 // OAM indices of the sprites on the next scanline

	state PipelineState
	counters

	vblank     bool
	sprZeroHit bool

	// Loopy registers
	dataAddr    uint16 // v
	tempAddr    uint16 // t
	fineXScroll uint8  // x
	firstWrite  bool   // !w
	dataBuffer  uint8

	oamAddr uint8

	// PPUCTRL
	longSprites       bool
	generateInterrupt bool
	bgPage            uint16
	sprPage           uint16
	dataAddrIncrement uint16

	// PPUMASK
	greyscale   bool
	showSprites bool
	showBg      bool
	hideEdgeSpr bool
	hideEdgeBg  bool

	// picture is being rendered while the screen holds the other frame.
	frames  [2]Frame
	picture *Frame
}

func NewPPU(bus *PictureBus, screen Screen) *PPU {
	p := &PPU{
		bus:             bus,
		screen:          screen,
		nmi:             func() {},
		scanlineSprites: make([]uint8, 0, 8),
	}
	p.picture = &p.frames[0]
	return p
}

// SetInterruptCallback sets the function called when the PPU raises an NMI.
func (p *PPU) SetInterruptCallback(cb func()) {
	p.nmi = cb
}

func (p *PPU) Reset() {
	p.longSprites = false
	p.generateInterrupt = false
	p.greyscale = false
	p.vblank = false
	p.sprZeroHit = false
	p.hideEdgeBg = false
	p.hideEdgeSpr = false
	p.showBg = true
	p.showSprites = true
	p.evenFrame = true
	p.firstWrite = true
	p.bgPage = 0
	p.sprPage = 0
	p.dataAddr = 0
	p.tempAddr = 0
	p.fineXScroll = 0
	p.dataBuffer = 0
	p.oamAddr = 0
	p.cycle = 0
	p.scanline = 0
	p.dataAddrIncrement = 1
	p.state = PreRender
	p.scanlineSprites = p.scanlineSprites[:0]
}

// State returns the current pipeline state, scanline and cycle.
func (p *PPU) State() (state PipelineState, scanline, cycle int) {
	return p.state, p.scanline, p.cycle
}

func (p *PPU) rendering() bool {
	return p.showBg && p.showSprites
}

// Step advances the PPU by one dot.
func (p *PPU) Step() {
	switch p.state {
	case PreRender:
		p.preRenderDot()
	case Render:
		p.renderDot()
	case VerticalBlank:
		p.vblankDot()
	}

	next, c, ev := advance(p.state, p.counters, p.rendering())
	switch ev {
	case evScanlineEnd:
		p.evaluateSprites()
	case evFrameEnd:
		p.flush()
	}
	if next != p.state {
		log.ModPPU.DebugZ("State change").
			Stringer("from", p.state).
			Stringer("to", next).
			Int("scanline", p.scanline).
			End()
	}
	p.state, p.counters = next, c
}

type event uint8

const (
	evNone        event = iota
	evScanlineEnd       // end of a visible scanline, before the counter moves
	evFrameEnd          // the picture is complete
)

// advance computes the pipeline position following the current dot. A
// scanline is made of dots 0 to 340.
func advance(state PipelineState, c counters, rendering bool) (PipelineState, counters, event) {
	ev := evNone
	next := c
	next.cycle++

	switch state {
	case PreRender:
		// The last dot is skipped on odd frames when rendering.
		end := scanlineEndCycle
		if !c.evenFrame && rendering {
			end--
		}
		if c.cycle >= end {
			state = Render
			next.cycle, next.scanline = 0, 0
		}

	case Render:
		if c.cycle >= scanlineEndCycle {
			ev = evScanlineEnd
			next.scanline++
			next.cycle = 0
		}
		if next.scanline >= visibleScanlines {
			state = PostRender
		}

	case PostRender:
		if c.cycle >= scanlineEndCycle {
			ev = evFrameEnd
			next.scanline++
			next.cycle = 0
			state = VerticalBlank
		}

	case VerticalBlank:
		if c.cycle >= scanlineEndCycle {
			next.scanline++
			next.cycle = 0
		}
		if next.scanline >= frameEndScanline {
			state = PreRender
			next.scanline = 0
			next.evenFrame = !c.evenFrame
		}
	}
	return state, next, ev
}

func (p *PPU) preRenderDot() {
	switch {
	case p.cycle == 1:
		p.vblank = false
		p.sprZeroHit = false
	case p.cycle == scanlineVisibleDots+1 && p.rendering():
		p.copyHorizontal()
	case p.cycle > 279 && p.cycle < 304 && p.rendering():
		// Vertical scroll bits.
		p.dataAddr = p.dataAddr&^0x7BE0 | p.tempAddr&0x7BE0
	}
}

func (p *PPU) vblankDot() {
	if p.cycle == 1 && p.scanline == visibleScanlines+1 {
		p.vblank = true
		if p.generateInterrupt {
			log.ModPPU.DebugZ("NMI").End()
			p.nmi()
		}
	}
}

// copyHorizontal copies the horizontal scroll bits from t to v.
func (p *PPU) copyHorizontal() {
	p.dataAddr = p.dataAddr&^0x41F | p.tempAddr&0x41F
}

// flush hands the complete picture over to the screen.
func (p *PPU) flush() {
	done := p.picture
	if p.picture == &p.frames[0] {
		p.picture = &p.frames[1]
	} else {
		p.picture = &p.frames[0]
	}
	if p.screen != nil {
		p.screen.SetFrame(done)
	}
}
