package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"runtime/pprof"
	"time"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-faster/jx"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/sync/errgroup"

	"nescore/emu"
	"nescore/emu/log"
	"nescore/emu/rpc"
	"nescore/hw"
	"nescore/ines"
	"nescore/ui"
)

const statsviewAddr = "localhost:18066"

func loadConfig(path string) emu.Config {
	if path == "" {
		return emu.LoadConfigOrDefault()
	}
	cfg, err := emu.LoadConfig(path)
	checkf(err, "failed to load configuration %s", path)
	return cfg
}

func applyLogConfig(cfg emu.LogConfig) {
	var mask log.ModuleMask
	for _, name := range cfg.Modules {
		mod, ok := log.ModuleByName(name)
		if !ok {
			log.ModEmu.WarnZ("Unknown log module in config").String("name", name).End()
			continue
		}
		mask |= mod.Mask()
	}
	if mask != 0 {
		log.EnableDebugModules(mask)
	}
}

// startCPUProfile starts profiling into path, if not empty. The returned
// function stops it.
func startCPUProfile(path string) (stop func()) {
	if path == "" {
		return func() {}
	}
	f, err := os.Create(path)
	checkf(err, "failed to create cpu profile file")
	checkf(pprof.StartCPUProfile(f), "failed to start cpu profile")
	return func() {
		pprof.StopCPUProfile()
		f.Close()
		fmt.Println("CPU profile written to", path)
	}
}

func startStatsView() {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(statsviewAddr))
		mgr := statsview.New()
		mgr.Start()
	}()
	fmt.Printf("stats server available at http://%s/debug/statsview\n", statsviewAddr)
}

// runMain runs the emulator in a window and returns the process exit code.
func runMain(args Run) int {
	cfg := loadConfig(args.Config)
	applyLogConfig(cfg.Log)
	if args.Scale > 0 {
		cfg.Video.Scale = args.Scale
	}
	if args.Monitor >= 0 {
		cfg.Video.Monitor = args.Monitor
	}

	rom, err := ines.Open(args.RomPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading ROM: %s\n", err)
		return 1
	}

	if args.StatsView {
		startStatsView()
	}

	var exitcode int
	sdl.Main(func() {
		cfg.Check()
		out, err := ui.NewOutput(ui.Config{
			Title: "nescore",
			Video: cfg.Video,
			Input: cfg.Input,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open window: %v\n", err)
			exitcode = 1
			return
		}

		emulator, err := emu.Launch(rom, cfg, out)
		if err != nil {
			out.Close()
			fmt.Fprintf(os.Stderr, "failed to start emulator: %v\n", err)
			exitcode = 1
			return
		}
		out.SetControls(emulator)

		if args.Port != 0 {
			server, err := rpc.NewServer(args.Port, emulator)
			if err != nil {
				fmt.Fprintf(os.Stderr, "RPC error: %v\n", err)
				exitcode = 1
				return
			}
			defer server.Close()
		}

		stop := startCPUProfile(args.CPUProfile)
		defer stop()

		emulator.Run()
	})
	return exitcode
}

// runHeadless runs the emulation without window nor pacing.
func runHeadless(w io.Writer, args Headless) error {
	rom, err := ines.Open(args.RomPath)
	if err != nil {
		return err
	}

	pads := &emu.StdControllerPair{Pad1Connected: true, Pad2Connected: true}
	held, err := emu.ParseButtons(args.Hold)
	if err != nil {
		return err
	}
	pads.SetState(0, held)

	nes, err := emu.PowerUp(rom, pads)
	if err != nil {
		return err
	}
	defer nes.Close()

	stop := startCPUProfile(args.CPUProfile)
	start := time.Now()
	var frame *hw.Frame
	for range args.Frames {
		frame = nes.RunOneFrame()
	}
	elapsed := time.Since(start)
	stop()

	fps := float64(args.Frames) / elapsed.Seconds()
	fmt.Fprintf(w, "%d frames in %s (%.1f frames/s, %d CPU cycles)\n",
		args.Frames, elapsed.Round(time.Millisecond), fps, nes.CPU.Cycles)

	if args.Screenshot != "" {
		if frame == nil {
			return fmt.Errorf("no frame to save")
		}
		if err := frame.SaveAsPNG(args.Screenshot); err != nil {
			return err
		}
		fmt.Fprintln(w, "screenshot saved to", args.Screenshot)
	}
	return nil
}

// romInfos loads the roms concurrently, then prints their infos in order.
func romInfos(w io.Writer, paths []string, asJSON bool) error {
	roms := make([]*ines.Rom, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			rom, err := ines.Open(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			roms[i] = rom
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, rom := range roms {
		if asJSON {
			var e jx.Encoder
			e.ObjStart()
			e.FieldStart("path")
			e.Str(paths[i])
			e.FieldStart("header")
			rom.EncodeJSON(&e)
			e.ObjEnd()
			if _, err := fmt.Fprintln(w, e.String()); err != nil {
				return err
			}
			continue
		}

		if len(paths) > 1 {
			fmt.Fprintf(w, "%s:\n", paths[i])
		}
		if err := rom.PrintInfos(w); err != nil {
			return err
		}
	}
	return nil
}

func printVersion(w io.Writer) {
	version := "(devel)"
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		version = bi.Main.Version
	}
	fmt.Fprintf(w, "nescore %s %s/%s\n", version, runtime.GOOS, runtime.GOARCH)
}
