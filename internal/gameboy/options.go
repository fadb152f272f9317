package gameboy

import (
	"github.com/sirupsen/logrus"

	"github.com/gogb/gogb/internal/apu"
)

// WithBootROM installs a boot ROM to run before cartridge code, instead of
// the instant post-boot register state New sets up by default. rom must be
// 256 bytes (DMG) or 2304 bytes (CGB, 0x100+0x800).
func WithBootROM(rom []byte) Option {
	return func(gb *GameBoy) {
		gb.MMU.SetBootROM(rom)
	}
}

// WithAPU replaces the default no-op APU frontend with f.
func WithAPU(f apu.Frontend) Option {
	return func(gb *GameBoy) {
		gb.APU = f
	}
}

// WithLogger replaces GameBoy.Logger. Options run after the cartridge and
// MMU are built, so those components keep the standard logrus logger they
// were constructed with, and New's own fallback warning has already gone to it.
func WithLogger(log *logrus.Logger) Option {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}
