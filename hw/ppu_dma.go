package hw

import (
	"nescore/emu/log"
)

// PPUDMA performs OAM DMA transfers, triggered by writes to $4014. The whole
// transfer happens at once, then the CPU is stalled for its duration.
type PPUDMA struct {
	cpu *CPU
	bus *MainBus
	ppu *PPU
}

func NewPPUDMA(cpu *CPU, bus *MainBus, ppu *PPU) *PPUDMA {
	return &PPUDMA{cpu: cpu, bus: bus, ppu: ppu}
}

func (dma *PPUDMA) StartDMA(page uint8) {
	dma.cpu.SkipDMACycles()

	ptr := dma.bus.PagePtr(page)
	if ptr == nil {
		log.ModDMA.ErrorZ("OAM DMA from unmapped page").Hex8("page", page).End()
		return
	}

	log.ModDMA.DebugZ("OAM DMA transfer").
		Hex8("page", page).
		Uint64("cycles", dma.cpu.Cycles).
		End()
	dma.ppu.DoDMA(ptr)
}
