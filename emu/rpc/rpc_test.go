package rpc

import (
	"io"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nescore/emu/log"
	"nescore/hw"
)

type fakeEmu struct {
	mu     sync.Mutex
	calls  []string
	paused bool
	frame  *hw.Frame
}

func (e *fakeEmu) record(call string) {
	e.mu.Lock()
	e.calls = append(e.calls, call)
	e.mu.Unlock()
}

func (e *fakeEmu) Reset()     { e.record("reset") }
func (e *fakeEmu) StepFrame() { e.record("step") }
func (e *fakeEmu) Stop()      { e.record("stop") }
func (e *fakeEmu) SetPause(pause bool) {
	e.record("pause")
	e.mu.Lock()
	e.paused = pause
	e.mu.Unlock()
}
func (e *fakeEmu) Frames() uint64 { return 12 }
func (e *fakeEmu) Frame() *hw.Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frame
}

func TestClientServer(t *testing.T) {
	log.SetOutput(io.Discard)

	port, err := UnusedPort()
	if err != nil {
		t.Fatal(err)
	}
	emu := &fakeEmu{}
	srv, err := NewServer(port, emu)
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Close()

	client, err := NewClient(port)
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	// No frame yet.
	pix, err := client.Frame()
	if err != nil {
		t.Fatal(err)
	}
	if len(pix) != 0 {
		t.Errorf("Frame() returned %d bytes before the first frame", len(pix))
	}

	for _, f := range []func() error{
		func() error { return client.SetPause(true) },
		client.StepFrame,
		client.Reset,
		client.Stop,
	} {
		if err := f(); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{"pause", "step", "reset", "stop"}
	emu.mu.Lock()
	if diff := cmp.Diff(want, emu.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if !emu.paused {
		t.Errorf("emulator not paused")
	}
	emu.mu.Unlock()

	n, err := client.Frames()
	if err != nil {
		t.Fatal(err)
	}
	if n != 12 {
		t.Errorf("Frames() = %d, want 12", n)
	}

	emu.mu.Lock()
	emu.frame = &hw.Frame{}
	emu.frame.Pix[0] = 0x2A
	emu.mu.Unlock()
	pix, err = client.Frame()
	if err != nil {
		t.Fatal(err)
	}
	if len(pix) != hw.FrameWidth*hw.FrameHeight || pix[0] != 0x2A {
		t.Errorf("Frame() = %d bytes, first pixel %02x", len(pix), pix[0])
	}
}
