package emu

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"nescore/emu/log"
	"nescore/hw"
	"nescore/ines"
)

// Output is the host side of the emulator: it collects user events and
// displays frames.
type Output interface {
	// Poll processes pending host events. It returns false when the user
	// wants to quit.
	Poll() bool
	// Present displays f, which can be nil before the first frame.
	Present(f *hw.Frame)
	Close()
}

const hostTick = time.Second / 60

type Emulator struct {
	NES *NES
	out Output
	cfg EmulationConfig

	// These are accessed concurrently by the emulator loop and the UI.
	quit      atomic.Bool
	paused    atomic.Bool
	focused   atomic.Bool
	reset     atomic.Bool
	stepFrame atomic.Bool

	mu   sync.Mutex
	shot *hw.Frame // copy of the last presented frame

	now func() time.Time
}

// Launch powers up the console with rom inserted. If out implements
// hw.ButtonReader, it is plugged as the controllers. Launch doesn't start the
// emulation loop, call Run() for that.
func Launch(rom *ines.Rom, cfg Config, out Output) (*Emulator, error) {
	cfg.Check()

	buttons, ok := out.(hw.ButtonReader)
	if !ok {
		log.ModEmu.WarnZ("No controllers plugged").End()
		buttons = &StdControllerPair{}
	}

	nes, err := PowerUp(rom, buttons)
	if err != nil {
		return nil, fmt.Errorf("power up failed: %w", err)
	}

	e := &Emulator{
		NES: nes,
		out: out,
		cfg: cfg.Emulation,
		now: time.Now,
	}
	e.focused.Store(true)
	e.paused.Store(cfg.Emulation.StartPaused)
	return e, nil
}

// Run executes the emulation loop until the output or Stop asks to quit.
func (e *Emulator) Run() {
	ticker := time.NewTicker(hostTick)
	defer ticker.Stop()

	e.loop(ticker.C)
	e.out.Close()
	e.NES.Close()
	log.ModEmu.InfoZ("Emulation loop exited").End()
}

func (e *Emulator) loop(tick <-chan time.Time) {
	var budget time.Duration
	last := e.now()

	for e.out.Poll() && !e.quit.Load() {
		e.handleReset()

		now := e.now()
		if e.running() {
			budget = min(budget+now.Sub(last), e.cfg.MaxBurst())
			budget = e.runFor(budget)
			e.present(e.NES.Frame())
		} else {
			// Time doesn't accumulate while suspended.
			budget = 0
			if e.stepFrame.CompareAndSwap(true, false) && e.paused.Load() {
				e.present(e.NES.RunOneFrame())
			}
		}
		last = now

		<-tick
	}
}

func (e *Emulator) present(f *hw.Frame) {
	e.out.Present(f)
	if f == nil {
		return
	}
	e.mu.Lock()
	if e.shot == nil {
		e.shot = new(hw.Frame)
	}
	*e.shot = *f
	e.mu.Unlock()
}

// Frame returns a copy of the last presented frame, or nil.
func (e *Emulator) Frame() *hw.Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.shot == nil {
		return nil
	}
	f := *e.shot
	return &f
}

// Frames returns the number of frames completed since power up.
func (e *Emulator) Frames() uint64 { return e.NES.Frames() }

// runFor emulates budget worth of CPU cycles and returns the remainder.
func (e *Emulator) runFor(budget time.Duration) time.Duration {
	cycle := e.cfg.CPUCycle()
	for budget > cycle {
		e.NES.Step()
		budget -= cycle
	}
	return budget
}

func (e *Emulator) running() bool {
	return !e.paused.Load() && e.focused.Load()
}

func (e *Emulator) handleReset() {
	if e.reset.CompareAndSwap(true, false) {
		log.ModEmu.InfoZ("Performing reset").End()
		e.NES.Reset()
	}
}

// The following methods allow to control the emulator loop in a
// concurrent-safe way.

func (e *Emulator) SetPause(pause bool) { e.paused.Store(pause) }
func (e *Emulator) TogglePause() {
	for {
		old := e.paused.Load()
		if e.paused.CompareAndSwap(old, !old) {
			log.ModEmu.InfoZ("Pause").Bool("paused", !old).End()
			return
		}
	}
}
func (e *Emulator) IsPaused() bool      { return e.paused.Load() }
func (e *Emulator) StepFrame()          { e.stepFrame.Store(true) }
func (e *Emulator) SetFocus(focus bool) { e.focused.Store(focus) }
func (e *Emulator) Reset()              { e.reset.Store(true) }
func (e *Emulator) Stop()               { e.quit.Store(true) }
