package main

import (
	"os"
)

func main() {
	cli := parseArgs(os.Args[1:])

	exitcode := 0
	switch cli.mode {
	case versionMode:
		printVersion(os.Stdout)
	case romInfosMode:
		checkf(romInfos(os.Stdout, cli.RomInfos.RomPaths, cli.RomInfos.JSON), "rom-infos failed")
	case headlessMode:
		checkf(runHeadless(os.Stdout, cli.Headless), "headless run failed")
	case runMode:
		exitcode = runMain(cli.Run)
	}

	if cli.LogFile != nil {
		cli.LogFile.Close()
	}
	os.Exit(exitcode)
}
