package ui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/veandco/go-sdl2/sdl"
)

type controlsRecorder struct {
	paused bool
	calls  []string
}

func (c *controlsRecorder) TogglePause()   { c.paused = !c.paused; c.calls = append(c.calls, "pause") }
func (c *controlsRecorder) IsPaused() bool { return c.paused }
func (c *controlsRecorder) StepFrame()     { c.calls = append(c.calls, "step") }
func (c *controlsRecorder) Reset()         { c.calls = append(c.calls, "reset") }
func (c *controlsRecorder) SetFocus(focus bool) {
	if focus {
		c.calls = append(c.calls, "focus")
	} else {
		c.calls = append(c.calls, "blur")
	}
}

func key(sym sdl.Keycode, typ uint32) *sdl.KeyboardEvent {
	return &sdl.KeyboardEvent{Type: typ, Keysym: sdl.Keysym{Sym: sym}}
}

func TestHandleEvent(t *testing.T) {
	var ctrl controlsRecorder
	o := &Output{}
	o.SetControls(&ctrl)

	events := []sdl.Event{
		key(sdl.K_F3, sdl.KEYUP), // ignored, not paused
		key(sdl.K_F2, sdl.KEYDOWN),
		key(sdl.K_F2, sdl.KEYUP),
		key(sdl.K_F3, sdl.KEYDOWN),
		key(sdl.K_F3, sdl.KEYUP),
		&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Sym: sdl.K_F5}},
		key(sdl.K_F5, sdl.KEYDOWN),
		&sdl.WindowEvent{Event: sdl.WINDOWEVENT_FOCUS_LOST},
		&sdl.WindowEvent{Event: sdl.WINDOWEVENT_FOCUS_GAINED},
		key(sdl.K_a, sdl.KEYDOWN),
	}
	for i, ev := range events {
		if !o.handleEvent(ev) {
			t.Fatalf("event %d: handleEvent() = false", i)
		}
	}

	want := []string{"pause", "step", "reset", "blur", "focus"}
	if diff := cmp.Diff(want, ctrl.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleEventQuit(t *testing.T) {
	o := &Output{}

	if o.handleEvent(&sdl.QuitEvent{}) {
		t.Error("QuitEvent didn't quit")
	}
	if o.handleEvent(key(sdl.K_ESCAPE, sdl.KEYDOWN)) {
		t.Error("Escape didn't quit")
	}
	// Without controls, hotkeys are ignored.
	if !o.handleEvent(key(sdl.K_F2, sdl.KEYDOWN)) {
		t.Error("F2 quit")
	}
}
