package main

import (
	"fmt"
	"os"

	"github.com/veandco/go-sdl2/sdl"

	"c64/config"
	"c64/emu"
	"c64/notify"
)

// emuMain wires a config, a mounted disk (if any), and a host window
// together and runs the emulator loop until the window is closed.
func emuMain(args Run) {
	sdl.Main(func() {
		cfg := loadConfig(args)

		emulator, err := emu.Launch(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start emulator: %v\n", err)
			os.Exit(1)
		}

		notifier := notify.New(nil)
		emulator.Machine.OnJam(notifier.Jam)

		win, err := emu.NewWindow("C64", cfg.Video.WindowScale)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open window: %v\n", err)
			os.Exit(1)
		}
		defer win.Close()

		audio := make([]int16, 48000/50)
		for {
			if win.PumpEvents(emulator.Mailbox) {
				break
			}
			emulator.RunFrame(audio)
			win.Present(emulator.Framebuffer().Front())
		}
	})
}

func loadConfig(args Run) config.Config {
	var cfg config.Config
	if args.Config != "" {
		var err error
		cfg, err = config.LoadFrom(args.Config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
			cfg = config.Default()
		}
	} else {
		cfg = config.LoadOrDefault()
	}
	if args.PAL {
		cfg.Machine.PAL = true
	}
	if args.DriveImage != "" {
		cfg.Machine.DriveImage = args.DriveImage
	}
	if args.Scale > 0 {
		cfg.Video.WindowScale = args.Scale
	}
	return cfg
}
