// Package gameboy wires the independent components — cartridge, MMU, CPU,
// PPU, joypad, serial, timer, interrupts, and an optional APU frontend —
// into a single runnable unit and drives them one frame at a time, the way
// the teacher's internal/gameboy/gameboy.go owns and steps its own Bus/CPU/
// PPU/APU.
package gameboy

import (
	"github.com/sirupsen/logrus"

	"github.com/gogb/gogb/internal/apu"
	"github.com/gogb/gogb/internal/cartridge"
	"github.com/gogb/gogb/internal/cpu"
	"github.com/gogb/gogb/internal/interrupts"
	"github.com/gogb/gogb/internal/joypad"
	"github.com/gogb/gogb/internal/mmu"
	"github.com/gogb/gogb/internal/ppu"
	"github.com/gogb/gogb/internal/serial"
	"github.com/gogb/gogb/internal/timer"
)

// dotsPerFrame is the hard cap on T-cycles StepFrame will spend per call,
// the 70224-dot frame spec.md §4.5/§5 specifies (154 lines × 456 dots).
const dotsPerFrame = 70224

// GameBoy owns every core component and exposes the one operation a
// front-end needs: advance exactly one frame.
type GameBoy struct {
	Cart       *cartridge.Cartridge
	MMU        *mmu.MMU
	CPU        *cpu.CPU
	PPU        *ppu.PPU
	Joypad     *joypad.State
	Serial     *serial.Controller
	Timer      *timer.Controller
	Interrupts *interrupts.Controller
	APU        apu.Frontend

	Logger *logrus.Logger

	cgb bool
}

// Option configures a GameBoy at construction time, matching the teacher's
// functional-option surface (gameboy.GameBoyOpt).
type Option func(*GameBoy)

// New constructs a GameBoy around rom. cgb selects CGB rather than DMG
// behaviour; opts are applied after all components are wired, so options
// that touch the MMU/CPU/PPU directly (WithBootROM) see a fully-formed
// machine.
func New(rom []byte, cgb bool, opts ...Option) *GameBoy {
	gb := &GameBoy{cgb: cgb, Logger: logrus.StandardLogger()}

	cart, ok := cartridge.New(rom, gb.Logger)
	if !ok {
		gb.Logger.Warn("gameboy: falling back to empty cartridge")
	}
	gb.Cart = cart

	gb.Interrupts = interrupts.NewController()
	gb.Joypad = joypad.New(gb.Interrupts)
	gb.Timer = timer.NewController(gb.Interrupts)
	gb.Serial = serial.NewController(gb.Interrupts)

	gb.MMU = mmu.New(gb.Cart, gb.Joypad, gb.Timer, gb.Serial, gb.Interrupts, cgb, nil, gb.Logger)
	gb.PPU = ppu.New(gb.MMU, gb.Interrupts)
	gb.CPU = cpu.New(gb.MMU, gb.Interrupts, gb.Timer, gb.Serial)
	gb.APU = apu.Null{}

	for _, opt := range opts {
		opt(gb)
	}

	if gb.MMU.BootROMActive() {
		gb.CPU.PC = 0
	} else {
		gb.skipBootROM()
	}

	return gb
}

// skipBootROM places the CPU and registers in the post-boot-ROM state a
// real boot ROM would leave them in, so a front-end that doesn't supply one
// still gets a running machine — the same shortcut the teacher's GameBoy
// takes when dontBoot is set.
func (gb *GameBoy) skipBootROM() {
	gb.CPU.PC = 0x0100
	gb.CPU.SP = 0xFFFE
	gb.CPU.SetAF(0x01B0)
	gb.CPU.SetBC(0x0013)
	gb.CPU.SetDE(0x00D8)
	gb.CPU.SetHL(0x014D)
	gb.MMU.SetLY(0)
}

// StepFrame runs the machine until the PPU reports a completed frame or the
// 70224-dot hard cap is reached, per spec.md §4.5/§5, then notifies the APU
// frontend. It returns the number of dot-cycles actually consumed.
func (gb *GameBoy) StepFrame() int {
	dots := 0
	renderEnabled := true

	for dots < dotsPerFrame {
		cycles := gb.CPU.Execute()
		dots += int(cycles)

		gb.PPU.Step(cycles, renderEnabled)
		if gb.PPU.ConsumeFrame() {
			break
		}
	}

	gb.APU.EndFrame(dots)
	return dots
}
