package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"nescore/emu/log"
)

type mode byte

const (
	runMode      mode = iota // Run a ROM in a window
	headlessMode             // Run a ROM without window
	romInfosMode             // Show ROM infos
	versionMode              // Show nescore version
)

type (
	CLI struct {
		Run      Run      `cmd:"" help:"Run ROM in emulator. (default command)" default:"withargs"`
		Headless Headless `cmd:"" help:"Run ROM without window, as fast as possible."`
		RomInfos RomInfos `cmd:"" help:"Show ROM infos." name:"rom-infos"`
		Version  Version  `cmd:"" help:"Show nescore version."`

		Log     logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
		LogFile *outfile   `name:"log-file" help:"Write logs to file." placeholder:"FILE|stdout|stderr"`

		mode mode
	}

	Run struct {
		RomPath string `arg:"" name:"/path/to/rom" help:"${rompath_help}" type:"existingfile"`

		Config     string `name:"config" help:"Configuration file, instead of the one in the user config directory." type:"existingfile"`
		Scale      int    `name:"scale" help:"Window scale factor, overrides the configuration."`
		Monitor    int32  `name:"monitor" help:"Monitor index to use." default:"-1"`
		CPUProfile string `name:"cpuprofile" help:"${cpuprofile_help}" type:"path"`
		StatsView  bool   `name:"statsview" help:"${statsview_help}"`
		Port       int    `name:"port" hidden:"true"`
	}

	Headless struct {
		RomPath string `arg:"" name:"/path/to/rom" help:"${rompath_help}" type:"existingfile"`

		Frames     int    `name:"frames" help:"Number of frames to run." default:"60"`
		Screenshot string `name:"screenshot" help:"Save the last frame as PNG." type:"path"`
		Hold       string `name:"hold" help:"Buttons held on controller 1 (e.g. A,Start)." placeholder:"BUTTONS"`
		CPUProfile string `name:"cpuprofile" help:"${cpuprofile_help}" type:"path"`
	}

	RomInfos struct {
		RomPaths []string `arg:"" name:"/path/to/rom" type:"existingfile"`
		JSON     bool     `name:"json" help:"Print one JSON object per ROM."`
	}

	Version struct{}
)

var vars = kong.Vars{
	"rompath_help":    "iNES ROM file.",
	"cpuprofile_help": "Write CPU profile to file.",
	"statsview_help":  "Serve runtime statistics on http://" + statsviewAddr + "/debug/statsview.",
	"log_help":        "Enable logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("nescore"),
		kong.Description("NES emulator."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch {
	case strings.HasPrefix(ctx.Command(), "headless"):
		cfg.mode = headlessMode
	case strings.HasPrefix(ctx.Command(), "rom-infos"):
		cfg.mode = romInfosMode
	case ctx.Command() == "version":
		cfg.mode = versionMode
	default:
		cfg.mode = runMode
	}

	if cfg.LogFile != nil {
		log.SetOutput(cfg.LogFile)
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if ctx.Command() == "" || strings.HasPrefix(ctx.Command(), "run") || strings.HasPrefix(ctx.Command(), "headless") {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm *logModMask) Decode(ctx *kong.DecodeContext) error {
	var s string
	if err := ctx.Scan.PopValueInto("log", &s); err != nil {
		return err
	}
	mask, nolog, err := parseLogModules(s)
	if err != nil {
		return err
	}
	if nolog {
		log.Disable()
		return nil
	}

	*lm = logModMask(mask)
	log.EnableDebugModules(mask)
	return nil
}

// parseLogModules parses a comma-separated list of module names, 'all' or
// 'no'.
func parseLogModules(s string) (mask log.ModuleMask, nolog bool, err error) {
	allLogs := false
	for _, v := range strings.Split(s, ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return 0, false, fmt.Errorf("unknown log module %s", v)
			}
			mask |= mod.Mask()
		}
	}

	if nolog {
		if allLogs {
			return 0, false, fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if mask != 0 {
			return 0, false, fmt.Errorf("cannot combine 'no' with other log modules")
		}
		return 0, true, nil
	}
	if allLogs {
		mask = log.ModuleMaskAll
	}
	return mask, false, nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	if err := ctx.Scan.PopValueInto("file", &f.name); err != nil {
		return err
	}
	switch f.name {
	case "stdout":
		f.w = os.Stdout
		f.close = func() error { return nil }
	case "stderr":
		f.w = os.Stderr
		f.close = func() error { return nil }
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
