// Package config loads a GameBoy's startup options from a YAML file, as an
// alternative to composing gameboy.Option values directly in Go. It is a
// thin data-to-options translator, not a replacement for the functional
// option API gameboy.New expects.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogb/gogb/internal/gameboy"
)

// Options is the YAML-serializable description of a machine to start.
type Options struct {
	CGB         bool   `yaml:"cgb"`
	BootROMPath string `yaml:"boot_rom_path"`
	SaveDir     string `yaml:"save_dir"`
}

// Load reads and parses a YAML options file at path.
func Load(path string) (Options, error) {
	var opts Options
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return opts, nil
}

// GameBoyOptions translates o into gameboy.Option values, reading the boot
// ROM file if one was configured. A front-end is still responsible for
// loading the cartridge ROM itself and passing it to gameboy.New.
//
// gameboy.New takes CGB mode as a positional argument rather than an
// Option, so it cannot be returned here: callers must pass o.CGBMode()
// (or o.CGB directly) as that argument themselves, e.g.
// gameboy.New(rom, opts.CGBMode(), gbOpts...).
func (o Options) GameBoyOptions() ([]gameboy.Option, error) {
	var opts []gameboy.Option
	if o.BootROMPath != "" {
		rom, err := os.ReadFile(o.BootROMPath)
		if err != nil {
			return nil, fmt.Errorf("config: read boot rom %s: %w", o.BootROMPath, err)
		}
		opts = append(opts, gameboy.WithBootROM(rom))
	}
	return opts, nil
}

// CGBMode reports whether the configured machine should start in Color
// Game Boy mode. It exists because gameboy.New takes this as a positional
// argument, not a gameboy.Option, so GameBoyOptions can't surface it.
func (o Options) CGBMode() bool {
	return o.CGB
}
