// Package ui is the SDL host of the emulator: it shows frames in a window and
// turns keyboard events into controller states and emulator commands.
package ui

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"nescore/emu"
	"nescore/emu/log"
	"nescore/hw"
	"nescore/hw/input"
)

var modUI = log.NewModule("ui")

// Controls is the part of the emulator driven by hotkeys.
type Controls interface {
	TogglePause()
	IsPaused() bool
	StepFrame()
	Reset()
	SetFocus(focus bool)
}

type Config struct {
	Title string
	Video emu.VideoConfig
	Input input.Config
}

// Output is an SDL window implementing emu.Output. It also provides the
// controllers, from the keyboard.
type Output struct {
	*input.Provider

	win  *window
	ctrl Controls
	pix  []byte
}

var (
	_ emu.Output      = (*Output)(nil)
	_ hw.ButtonReader = (*Output)(nil)
)

// NewOutput opens the window. SDL must be running, see sdl.Main.
func NewOutput(cfg Config) (*Output, error) {
	var (
		win *window
		err error
	)
	sdl.Do(func() {
		win, err = newWindow(cfg.Title, hw.FrameWidth, hw.FrameHeight,
			cfg.Video.Scale, cfg.Video.Monitor, !cfg.Video.DisableVSync)
	})
	if err != nil {
		return nil, fmt.Errorf("video: %w", err)
	}

	modUI.InfoZ("Window created").
		Int("scale", cfg.Video.Scale).
		Bool("vsync", !cfg.Video.DisableVSync).
		End()

	return &Output{
		Provider: input.NewProvider(cfg.Input),
		win:      win,
		pix:      make([]byte, hw.FrameWidth*hw.FrameHeight*4),
	}, nil
}

// SetControls connects the hotkeys to the emulator.
func (o *Output) SetControls(ctrl Controls) { o.ctrl = ctrl }

func (o *Output) Poll() bool {
	running := true
	sdl.Do(func() {
		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			if !o.handleEvent(ev) {
				running = false
			}
		}
	})
	return running
}

// handleEvent processes a single event. It returns false if the user wants to
// quit.
func (o *Output) handleEvent(ev sdl.Event) bool {
	switch ev := ev.(type) {
	case *sdl.QuitEvent:
		return false

	case *sdl.WindowEvent:
		switch ev.Event {
		case sdl.WINDOWEVENT_FOCUS_GAINED:
			o.control(func(c Controls) { c.SetFocus(true) })
		case sdl.WINDOWEVENT_FOCUS_LOST:
			o.control(func(c Controls) { c.SetFocus(false) })
		}

	case *sdl.KeyboardEvent:
		return o.handleKey(ev.Keysym.Sym, ev.Type == sdl.KEYDOWN, ev.Repeat != 0)
	}
	return true
}

func (o *Output) handleKey(key sdl.Keycode, down, repeat bool) bool {
	if repeat {
		return true
	}
	switch {
	case key == sdl.K_ESCAPE && down:
		return false
	case key == sdl.K_F2 && down:
		o.control(Controls.TogglePause)
	case key == sdl.K_F3 && !down:
		o.control(func(c Controls) {
			if c.IsPaused() {
				c.StepFrame()
			}
		})
	case key == sdl.K_F5 && down:
		o.control(Controls.Reset)
	}
	return true
}

func (o *Output) control(f func(Controls)) {
	if o.ctrl != nil {
		f(o.ctrl)
	}
}

func (o *Output) Present(f *hw.Frame) {
	if f == nil {
		return
	}
	f.DrawRGBA(o.pix)
	sdl.Do(func() { o.win.draw(o.pix) })
}

func (o *Output) Close() {
	sdl.Do(func() {
		if err := o.win.Close(); err != nil {
			modUI.WarnZ("Failed to close window").Error("err", err).End()
		}
	})
}
