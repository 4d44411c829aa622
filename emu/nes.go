package emu

import (
	"fmt"
	"sync/atomic"

	"nescore/emu/log"
	"nescore/hw"
	"nescore/hw/mappers"
	"nescore/ines"
)

// CPU cycles in an NTSC frame, rounded up.
const cpuCyclesPerFrame = 29781

// NES is a complete console with a cartridge inserted.
type NES struct {
	Rom        *ines.Rom
	Bus        *hw.MainBus
	PictureBus *hw.PictureBus
	CPU        *hw.CPU
	PPU        *hw.PPU
	Mapper     hw.Mapper
	Pads       *hw.Joypads
	DMA        *hw.PPUDMA

	frame    *hw.Frame // last complete frame
	newFrame bool
	frames   atomic.Uint64

	removeLogCtx func()
}

// PowerUp wires the console hardware around rom and resets it. Controllers
// states are read from buttons, which can be nil.
func PowerUp(rom *ines.Rom, buttons hw.ButtonReader) (*NES, error) {
	nes := &NES{
		Rom:        rom,
		Bus:        hw.NewMainBus(),
		PictureBus: hw.NewPictureBus(),
	}

	mapper, err := mappers.Load(rom, nes.PictureBus.UpdateMirroring)
	if err != nil {
		return nil, fmt.Errorf("cartridge: %w", err)
	}
	nes.Mapper = mapper

	nes.CPU = hw.NewCPU(nes.Bus)
	nes.PPU = hw.NewPPU(nes.PictureBus, nes)
	nes.Pads = hw.NewJoypads(buttons)
	nes.DMA = hw.NewPPUDMA(nes.CPU, nes.Bus, nes.PPU)

	nes.Bus.SetMapper(mapper)
	nes.PictureBus.SetMapper(mapper)
	nes.Bus.ConnectPPU(nes.PPU)
	nes.Bus.ConnectDMA(nes.DMA)
	nes.Bus.ConnectJoypads(nes.Pads)
	nes.PPU.SetInterruptCallback(func() { nes.CPU.Interrupt(hw.NMI) })

	nes.removeLogCtx = log.AddContext(nes)

	log.ModEmu.InfoZ("Power up").
		String("mapper", mappers.Name(rom.Mapper())).
		Stringer("mirroring", mapper.Mirroring()).
		End()

	nes.Reset()
	return nes, nil
}

// Reset clears RAM and resets the CPU and the PPU.
func (nes *NES) Reset() {
	nes.Bus.Reset()
	nes.CPU.Reset()
	nes.PPU.Reset()
	nes.newFrame = false
}

// Close unregisters the NES from the logging contexts.
func (nes *NES) Close() {
	if nes.removeLogCtx != nil {
		nes.removeLogCtx()
		nes.removeLogCtx = nil
	}
}

// Step runs one CPU cycle, that is 3 PPU dots.
func (nes *NES) Step() {
	nes.PPU.Step()
	nes.PPU.Step()
	nes.PPU.Step()
	nes.CPU.Step()
}

// RunOneFrame runs the console until the PPU completes a frame, and returns
// it. The frame is valid until the next completed frame.
func (nes *NES) RunOneFrame() *hw.Frame {
	nes.newFrame = false
	for i := 0; i < cpuCyclesPerFrame && !nes.newFrame; i++ {
		nes.Step()
	}
	return nes.frame
}

// Frame returns the last completed frame, or nil.
func (nes *NES) Frame() *hw.Frame { return nes.frame }

// Frames returns the number of completed frames since power up.
func (nes *NES) Frames() uint64 { return nes.frames.Load() }

// SetFrame implements hw.Screen.
func (nes *NES) SetFrame(f *hw.Frame) {
	nes.frame = f
	nes.newFrame = true
	nes.frames.Add(1)
}

func (nes *NES) AddLogContext(e *log.EntryZ) {
	e.Uint64("frame", nes.frames.Load())
}
