// Package config loads and saves the emulator's persistent settings: video
// timing, the mounted disk image, and which log modules are enabled. It
// is a TOML file decoded with github.com/BurntSushi/toml, sitting in the
// platform's user config directory.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"c64/emu/log"
)

// Config is the whole of the emulator's persistent settings.
type Config struct {
	Machine MachineConfig `toml:"machine"`
	Video   VideoConfig   `toml:"video"`
	General GeneralConfig `toml:"general"`
}

// MachineConfig selects the video timing standard and the disk image
// mounted in the drive at startup.
type MachineConfig struct {
	// PAL selects the PAL clock rate and 50Hz frame pacing; false selects
	// the NTSC clock rate and 60Hz pacing. The VIC generates 312 raster
	// lines per frame either way.
	PAL          bool   `toml:"pal"`
	DriveImage   string `toml:"drive_image"`
	KernalROM    string `toml:"kernal_rom"`
	BasicROM     string `toml:"basic_rom"`
	CharROM      string `toml:"char_rom"`
	Drive1541ROM string `toml:"drive_1541_rom"`
}

type VideoConfig struct {
	DisableVSync bool `toml:"disable_vsync"`
	WindowScale  int  `toml:"window_scale"`
}

type GeneralConfig struct {
	ShowSplash bool   `toml:"show_splash"`
	LogModules string `toml:"log_modules"`
}

var configDir = sync.OnceValue(func() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		log.ModEmu.Fatalf("failed to resolve user config directory: %v", err)
	}
	dir = filepath.Join(dir, "c64")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

const cfgFilename = "config.toml"

// Default returns the built-in configuration: NTSC timing, no disk
// mounted, standard 3x window scale.
func Default() Config {
	return Config{Video: VideoConfig{WindowScale: 3}}
}

// LoadOrDefault loads the configuration from the user config directory, or
// returns Default() if none exists yet or the file fails to parse.
func LoadOrDefault() Config {
	cfg := Default()
	path := filepath.Join(configDir(), cfgFilename)
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !os.IsNotExist(err) {
			log.ModEmu.WarnZ("failed to parse config file, using defaults").String("path", path).End()
		}
		return Default()
	}
	return cfg
}

// LoadFrom decodes cfg from an explicit path instead of the user config
// directory, for the CLI's --config override.
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

// Save writes cfg to the user config directory.
func Save(cfg Config) error {
	path := filepath.Join(configDir(), cfgFilename)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
