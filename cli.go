package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"c64/emu/log"
)

type mode byte

const (
	runMode mode = iota
	diskInfosMode
	versionMode
)

type CLI struct {
	Run       Run       `cmd:"" help:"Run the emulator." default:"true"`
	DiskInfos DiskInfos `cmd:"" help:"Show .d64 disk image infos." name:"disk-infos"`
	Version   Version   `cmd:"" help:"Show version."`

	Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

	mode mode
}

type Run struct {
	Config     string `name:"config" help:"Path to config.toml (defaults to the platform config directory)." type:"path"`
	DriveImage string `arg:"" name:"/path/to/disk.d64" help:"Mount a .d64 disk image in the drive." optional:"" type:"existingfile"`
	PAL        bool   `name:"pal" help:"Use the PAL clock rate and 50Hz frame pacing instead of NTSC's."`
	Scale      int    `name:"scale" help:"Window scale factor." default:"3"`
}

type DiskInfos struct {
	ImagePath string `arg:"" name:"/path/to/disk.d64" required:"true" type:"existingfile"`
}

type Version struct{}

var vars = kong.Vars{
	"log_help": "Enable logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("c64"),
		kong.Description("Commodore 64 emulator core."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch ctx.Command() {
	case "disk-infos </path/to/disk.d64>":
		cfg.mode = diskInfosMode
	case "version":
		cfg.mode = versionMode
	default:
		cfg.mode = runMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "run") {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s
  As a special case:
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

// Decode implements kong.MapperValue for a comma-separated log-module
// flag.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog, allLogs := false, false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}
	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}
	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

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
