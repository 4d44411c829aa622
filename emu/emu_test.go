package emu

import (
	"flag"
	"io"
	"testing"
	"time"

	"nescore/emu/log"
	"nescore/emu/rpc"
	"nescore/hw"
	"nescore/ines"
	"nescore/tests"
)

var _ rpc.Emu = (*Emulator)(nil)

var romPath = flag.String("rom", "", "ROM file to load for BenchmarkEmulation")

// scriptedOutput is an Output that runs for a fixed number of polls, calling
// onPoll before each of them.
type scriptedOutput struct {
	polls  int
	onPoll func(n int)

	npolls    int
	presented []*hw.Frame
	closed    bool
}

func (o *scriptedOutput) Poll() bool {
	if o.onPoll != nil {
		o.onPoll(o.npolls)
	}
	o.npolls++
	return o.npolls <= o.polls
}

func (o *scriptedOutput) Present(f *hw.Frame) { o.presented = append(o.presented, f) }
func (o *scriptedOutput) Close()              { o.closed = true }

// padsOutput also provides the controllers.
type padsOutput struct {
	scriptedOutput
	StdControllerPair
}

// fakeClock advances by step each time it's read.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

// closedTick never blocks.
func closedTick() <-chan time.Time {
	ch := make(chan time.Time)
	close(ch)
	return ch
}

func launchTest(t *testing.T, cfg Config, out Output, step time.Duration) *Emulator {
	t.Helper()
	log.SetOutput(io.Discard)

	r := tests.NewROM(1, 1).Vectors(0x8000, 0x8000, 0x8000)
	e, err := Launch(loadROM(t, r), cfg, out)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(e.NES.Close)
	clock := &fakeClock{t: time.Unix(0, 0), step: step}
	e.now = clock.now
	return e
}

func TestEmulatorPacing(t *testing.T) {
	cases := []struct {
		name   string
		polls  int
		step   time.Duration
		cycles uint64
	}{
		// 10ms / 559ns, the remainder is carried over between polls.
		{name: "1ms polls", polls: 10, step: time.Millisecond, cycles: 17889},
		// A single poll after 1s is capped to the 100ms max burst.
		{name: "max burst", polls: 1, step: time.Second, cycles: 178890},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			out := &scriptedOutput{polls: tt.polls}
			e := launchTest(t, DefaultConfig(), out, tt.step)
			e.loop(closedTick())

			if e.NES.CPU.Cycles != tt.cycles {
				t.Errorf("CPU cycles = %d, want %d", e.NES.CPU.Cycles, tt.cycles)
			}
			if len(out.presented) != tt.polls {
				t.Errorf("presented %d frames, want %d", len(out.presented), tt.polls)
			}
		})
	}
}

func TestEmulatorPause(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Emulation.StartPaused = true

	out := &scriptedOutput{polls: 4}
	e := launchTest(t, cfg, out, time.Millisecond)
	out.onPoll = func(n int) {
		if n == 1 {
			e.StepFrame()
		}
	}
	e.loop(closedTick())

	if got := e.NES.Frames(); got != 1 {
		t.Errorf("Frames() = %d, want 1", got)
	}
	if len(out.presented) != 1 || out.presented[0] == nil {
		t.Fatalf("presented = %v, want a single frame", out.presented)
	}
	shot := e.Frame()
	if shot == nil || shot == out.presented[0] || *shot != *out.presented[0] {
		t.Errorf("Frame() isn't a copy of the presented frame")
	}

	// Unpausing doesn't catch up with the time spent paused.
	e.TogglePause()
	if e.IsPaused() {
		t.Fatal("still paused after TogglePause")
	}
	cycles := e.NES.CPU.Cycles
	out.polls, out.npolls = 1, 0
	e.loop(closedTick())
	if ran := e.NES.CPU.Cycles - cycles; ran != 1788 {
		t.Errorf("ran %d cycles after unpause, want 1788", ran)
	}
}

func TestEmulatorFocus(t *testing.T) {
	out := &scriptedOutput{polls: 5}
	e := launchTest(t, DefaultConfig(), out, time.Millisecond)
	e.SetFocus(false)
	e.loop(closedTick())

	if e.NES.CPU.Cycles != 0 || len(out.presented) != 0 {
		t.Errorf("emulation ran without focus: %d cycles, %d frames", e.NES.CPU.Cycles, len(out.presented))
	}
}

func TestEmulatorResetAndStop(t *testing.T) {
	out := &scriptedOutput{polls: 10}
	e := launchTest(t, DefaultConfig(), out, time.Millisecond)
	out.onPoll = func(n int) {
		switch n {
		case 1:
			e.Reset()
		case 2:
			e.Stop()
		}
	}
	e.loop(closedTick())

	if out.npolls != 3 {
		t.Errorf("polled %d times, want 3", out.npolls)
	}
	// Cycles restart from 0 at reset, the 556ns remainder of the first
	// poll is kept.
	if e.NES.CPU.Cycles != 1789 {
		t.Errorf("CPU cycles = %d, want 1789", e.NES.CPU.Cycles)
	}
}

func TestLaunchPlugsOutputControllers(t *testing.T) {
	out := &padsOutput{}
	out.Pad1Connected = true
	out.SetState(0, 0x01)

	e := launchTest(t, DefaultConfig(), out, time.Millisecond)
	e.NES.Pads.Strobe(1)
	if got := e.NES.Pads.Read(0); got != 0x41 {
		t.Errorf("Read(0) = %02x, want 41", got)
	}
}

func TestEmulatorRun(t *testing.T) {
	out := &scriptedOutput{polls: 2}
	e := launchTest(t, DefaultConfig(), out, time.Millisecond)
	e.Run()

	if !out.closed {
		t.Error("output not closed")
	}
}

func BenchmarkEmulation(b *testing.B) {
	if *romPath == "" {
		b.Skip("missing -rom flag")
	}
	log.Disable()
	defer log.Enable()
	b.ReportAllocs()

	rom, err := ines.Open(*romPath)
	if err != nil {
		b.Fatal(err)
	}
	nes, err := PowerUp(rom, nil)
	if err != nil {
		b.Fatal(err)
	}
	defer nes.Close()

	const nframes = 300

	nloops := 0
	start := time.Now()
	for b.Loop() {
		for range nframes {
			nes.RunOneFrame()
		}
		nloops++
	}
	fps := float64(nframes*nloops) / time.Since(start).Seconds()
	b.ReportMetric(fps, "frames/s")
}
