package emu

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"nescore/emu/log"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	log.SetOutput(io.Discard)

	path := writeConfig(t, `
[emulation]
cpu_cycle_ns = 600
start_paused = true

[video]
scale = 0
disable_vsync = true

[log]
modules = ["cpu", "ppu"]

[unknown]
key = 1
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	want := DefaultConfig()
	want.Emulation.CPUCycleNS = 600
	want.Emulation.StartPaused = true
	want.Video.DisableVSync = true
	want.Log.Modules = []string{"cpu", "ppu"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	if got := cfg.Emulation.CPUCycle(); got != 600*time.Nanosecond {
		t.Errorf("CPUCycle() = %s", got)
	}
	if got := cfg.Emulation.MaxBurst(); got != 100*time.Millisecond {
		t.Errorf("MaxBurst() = %s", got)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	log.SetOutput(io.Discard)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadConfig(missing) error = %v, want ErrNotExist", err)
	}

	cfg, err := LoadConfig(writeConfig(t, "[emulation\n"))
	if err == nil {
		t.Fatal("LoadConfig(malformed) succeeded")
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigCheck(t *testing.T) {
	log.SetOutput(io.Discard)

	var cfg Config
	cfg.Emulation.CPUCycleNS = -1
	cfg.Check()

	def := DefaultConfig()
	if cfg.Emulation != def.Emulation || cfg.Video != def.Video {
		t.Errorf("Check() = %+v, want defaults", cfg)
	}
}
