package input

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"nescore/emu/log"
)

// A Button identifies a button of a standard NES controller, in the order
// they are shifted out of the controller port.
type Button byte

const (
	A Button = iota
	B
	Select
	Start
	Up
	Down
	Left
	Right

	ButtonCount
)

var buttonNames = [ButtonCount]string{
	"A", "B",
	"Select", "Start",
	"Up", "Down", "Left", "Right",
}

func (b Button) String() string {
	if b >= ButtonCount {
		return fmt.Sprintf("Button(%d)", uint8(b))
	}
	return buttonNames[b]
}

// Key is a keyboard key, identified in configuration files by its SDL
// scancode name.
type Key sdl.Scancode

func (k Key) MarshalText() ([]byte, error) {
	if k == Key(sdl.SCANCODE_UNKNOWN) {
		return nil, nil
	}
	return []byte(sdl.GetScancodeName(sdl.Scancode(k))), nil
}

func (k *Key) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*k = Key(sdl.SCANCODE_UNKNOWN)
		return nil
	}
	sc := sdl.GetScancodeFromName(string(text))
	if sc == sdl.SCANCODE_UNKNOWN {
		return fmt.Errorf("unrecognized key %q", text)
	}
	*k = Key(sc)
	return nil
}

// PaddleConfig holds the key bindings of one controller.
type PaddleConfig struct {
	Plugged bool             `toml:"plugged"`
	Buttons [ButtonCount]Key `toml:"buttons"`
}

type Config struct {
	Paddles [2]PaddleConfig `toml:"paddles"`
}

func DefaultConfig() Config {
	return Config{
		Paddles: [2]PaddleConfig{
			{
				Plugged: true,
				Buttons: [ButtonCount]Key{
					Key(sdl.SCANCODE_J), Key(sdl.SCANCODE_K),
					Key(sdl.SCANCODE_RSHIFT), Key(sdl.SCANCODE_RETURN),
					Key(sdl.SCANCODE_W), Key(sdl.SCANCODE_S),
					Key(sdl.SCANCODE_A), Key(sdl.SCANCODE_D),
				},
			},
			{
				Plugged: true,
				Buttons: [ButtonCount]Key{
					Key(sdl.SCANCODE_KP_5), Key(sdl.SCANCODE_KP_6),
					Key(sdl.SCANCODE_KP_8), Key(sdl.SCANCODE_KP_9),
					Key(sdl.SCANCODE_UP), Key(sdl.SCANCODE_DOWN),
					Key(sdl.SCANCODE_LEFT), Key(sdl.SCANCODE_RIGHT),
				},
			},
		},
	}
}

// Provider reports controller button states from the SDL keyboard state.
type Provider struct {
	keystate []uint8
	cfg      Config
}

// NewProvider must be called after SDL has been initialized.
func NewProvider(cfg Config) *Provider {
	var keystate []uint8
	sdl.Do(func() { keystate = sdl.GetKeyboardState() })

	for i, pad := range cfg.Paddles {
		log.ModInput.InfoZ("paddle config").
			Int("port", i).
			Bool("plugged", pad.Plugged).
			End()
	}
	return &Provider{keystate: keystate, cfg: cfg}
}

// Buttons returns the pressed state of the 8 buttons of the controller
// plugged in port, indexed by Button.
func (p *Provider) Buttons(port int) [8]bool {
	return pressed(p.cfg.Paddles[port], p.keystate)
}

func pressed(pad PaddleConfig, keystate []uint8) [8]bool {
	var state [8]bool
	if !pad.Plugged {
		return state
	}
	for i, k := range pad.Buttons {
		if k == Key(sdl.SCANCODE_UNKNOWN) || int(k) >= len(keystate) {
			continue
		}
		state[i] = keystate[k] != 0
	}
	return state
}
