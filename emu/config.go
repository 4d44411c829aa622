package emu

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"nescore/emu/log"
	"nescore/hw/input"
)

type Config struct {
	Emulation EmulationConfig `toml:"emulation"`
	Video     VideoConfig     `toml:"video"`
	Input     input.Config    `toml:"input"`
	Log       LogConfig       `toml:"log"`
}

type EmulationConfig struct {
	CPUCycleNS  int  `toml:"cpu_cycle_ns"`
	MaxBurstMS  int  `toml:"max_burst_ms"`
	StartPaused bool `toml:"start_paused"`
}

// CPUCycle returns the wall-clock duration of a CPU cycle.
func (ec EmulationConfig) CPUCycle() time.Duration {
	return time.Duration(ec.CPUCycleNS) * time.Nanosecond
}

// MaxBurst returns the maximum emulated time between 2 host polls.
func (ec EmulationConfig) MaxBurst() time.Duration {
	return time.Duration(ec.MaxBurstMS) * time.Millisecond
}

type VideoConfig struct {
	Scale        int   `toml:"scale"`
	DisableVSync bool  `toml:"disable_vsync"`
	Monitor      int32 `toml:"monitor"`
}

type LogConfig struct {
	Modules []string `toml:"modules"`
}

func DefaultConfig() Config {
	return Config{
		Emulation: EmulationConfig{
			CPUCycleNS: 559,
			MaxBurstMS: 100,
		},
		Video: VideoConfig{Scale: 2},
		Input: input.DefaultConfig(),
	}
}

// Check replaces invalid values with their defaults.
func (cfg *Config) Check() {
	def := DefaultConfig()
	if cfg.Emulation.CPUCycleNS <= 0 {
		log.ModEmu.Warnf("Invalid cpu_cycle_ns %d, fallback to %d", cfg.Emulation.CPUCycleNS, def.Emulation.CPUCycleNS)
		cfg.Emulation.CPUCycleNS = def.Emulation.CPUCycleNS
	}
	if cfg.Emulation.MaxBurstMS <= 0 {
		cfg.Emulation.MaxBurstMS = def.Emulation.MaxBurstMS
	}
	if cfg.Video.Scale <= 0 {
		cfg.Video.Scale = def.Video.Scale
	}
}

// ConfigDir returns the nescore configuration directory, creating it if
// needed.
var ConfigDir = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("nescore")
	if err := configdir.MakePath(dir); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

const cfgFilename = "config.toml"

// LoadConfig decodes the configuration file at path on top of the default
// configuration.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return DefaultConfig(), err
	}
	for _, key := range md.Undecoded() {
		log.ModEmu.WarnZ("Unknown config key").
			String("key", key.String()).
			String("file", path).
			End()
	}
	cfg.Check()
	return cfg, nil
}

// LoadConfigOrDefault loads the configuration from the nescore config
// directory, or provides the default one.
func LoadConfigOrDefault() Config {
	path := filepath.Join(ConfigDir(), cfgFilename)
	cfg, err := LoadConfig(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.ModEmu.WarnZ("Failed to load config, using defaults").
				Error("err", err).
				End()
		}
		return DefaultConfig()
	}
	return cfg
}

// SaveConfig into nescore config directory.
func SaveConfig(cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(ConfigDir(), cfgFilename), buf, 0644)
}
