package cpu

import (
	"github.com/gogb/gogb/internal/cartridge"
	"github.com/gogb/gogb/internal/interrupts"
	"github.com/gogb/gogb/internal/joypad"
	"github.com/gogb/gogb/internal/mmu"
	"github.com/gogb/gogb/internal/serial"
	"github.com/gogb/gogb/internal/timer"
)

// blankROM returns a 32KB ROM-only cartridge image backed by a slice the
// caller keeps a handle to. Cartridge.WriteROM is a no-op on real hardware
// (and in this emulator), so tests that need to plant opcodes below 0x8000
// must poke this backing slice directly rather than going through MMU.Write.
func blankROM() []byte {
	rom := make([]byte, 0x8000)
	for i := range rom {
		rom[i] = 0xFF
	}
	rom[0x147] = 0x00 // ROM-only, so the header resolves to a writable-backing mapper
	rom[0x148] = 0x00
	rom[0x149] = 0x00
	return rom
}

// newTestCPU wires a CPU to a fresh MMU backed by a ROM-only cartridge,
// mirroring the teacher's test setup of a CPU plumbed to a real MMU rather
// than a mock, so instruction tests exercise the real memory path (including
// echo/OAM/HRAM routing). The returned rom slice is the cartridge's live
// backing array: write opcodes into it directly.
func newTestCPU() (*CPU, *mmu.MMU, *interrupts.Controller, []byte) {
	rom := blankROM()
	cart, _ := cartridge.New(rom, nil)
	irq := interrupts.NewController()
	jp := joypad.New(irq)
	tm := timer.NewController(irq)
	sr := serial.NewController(irq)
	m := mmu.New(cart, jp, tm, sr, irq, false, nil, nil)
	c := New(m, irq, tm, sr)
	return c, m, irq, rom
}

// newCGBTestCPU is identical to newTestCPU but wires the MMU for CGB mode,
// for tests that exercise double-speed/KEY1 behaviour.
func newCGBTestCPU() (*CPU, *mmu.MMU, *interrupts.Controller, []byte) {
	rom := blankROM()
	cart, _ := cartridge.New(rom, nil)
	irq := interrupts.NewController()
	jp := joypad.New(irq)
	tm := timer.NewController(irq)
	sr := serial.NewController(irq)
	m := mmu.New(cart, jp, tm, sr, irq, true, nil, nil)
	c := New(m, irq, tm, sr)
	return c, m, irq, rom
}
