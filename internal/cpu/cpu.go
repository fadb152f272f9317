// Package cpu implements the Sharp LR35902 instruction set: fetch-decode-
// execute, the flag algebra, HALT/STOP, and interrupt servicing described in
// spec.md §4.4. The CPU pulls cycles rather than pushing them: Execute runs
// exactly one instruction (or one interrupt dispatch, or one halted/stopped
// tick) and returns how many T-cycles it cost. Execute ticks the timer and
// serial itself; the caller (internal/gameboy) hands the count to the PPU.
package cpu

import (
	"github.com/gogb/gogb/internal/interrupts"
	"github.com/gogb/gogb/internal/mmu"
	"github.com/gogb/gogb/internal/serial"
	"github.com/gogb/gogb/internal/timer"
)

// runMode tracks HALT/STOP and the HALT-bug edge case, mirroring
// the teacher's cpu.mode field but collapsed to what this pull-model CPU
// actually needs.
type runMode uint8

const (
	modeNormal runMode = iota
	modeHalt
	modeHaltBug // HALT entered with IME off and IF&IE!=0: next fetch doesn't advance PC
	modeStop
)

// CPU is the Sharp LR35902 core. It holds no memory of its own; every memory
// access goes through the MMU, per spec.md §3's ownership rule.
type CPU struct {
	Registers
	PC uint16
	SP uint16

	mmu *mmu.MMU
	irq *interrupts.Controller
	tm  *timer.Controller
	sr  *serial.Controller

	mode       runMode
	haltBugPC  bool
	pendingEI  bool // EI takes effect after the instruction following it

	Breakpoints map[uint16]bool
}

// New returns a CPU wired to the given MMU and interrupt controller. tm and
// sr are ticked once per T-cycle billed by Execute, the way the teacher's
// CPU.tick fans cycles out to its components.
func New(m *mmu.MMU, irq *interrupts.Controller, tm *timer.Controller, sr *serial.Controller) *CPU {
	c := &CPU{mmu: m, irq: irq, tm: tm, sr: sr, Breakpoints: map[uint16]bool{}}
	c.SetAF(0)
	return c
}

// tickComponents bills n T-cycles to the timer and serial controllers. The
// PPU is ticked separately by the orchestrator, since its dot-cycle count
// must also be halved in double-speed mode the same way the CPU's own cycle
// billing is (spec.md §4.6), and the orchestrator is what owns the PPU.
func (c *CPU) tickComponents(n uint8) {
	c.tm.Tick(n)
	c.sr.Tick(n)
}

func (c *CPU) readPC() uint8 {
	v := c.mmu.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) read8(addr uint16) uint8      { return c.mmu.Read(addr) }
func (c *CPU) write8(addr uint16, v uint8)  { c.mmu.Write(addr, v) }

func (c *CPU) read16(addr uint16) uint16 {
	return uint16(c.mmu.Read(addr)) | uint16(c.mmu.Read(addr+1))<<8
}

func (c *CPU) push16(v uint16) {
	c.SP--
	c.mmu.Write(c.SP, uint8(v>>8))
	c.SP--
	c.mmu.Write(c.SP, uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := c.mmu.Read(c.SP)
	c.SP++
	hi := c.mmu.Read(c.SP)
	c.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// Execute runs one unit of CPU work — one instruction, one interrupt
// dispatch, or one idle tick while halted/stopped — and returns the number
// of T-cycles (already halved for double-speed where the hardware halves
// it) that the caller should bill to the PPU.
func (c *CPU) Execute() uint8 {
	if _, ok := c.irq.Highest(); ok && c.mode != modeNormal {
		if c.mode == modeHalt {
			c.mode = modeNormal
		} else if c.mode == modeStop {
			// STOP only wakes on Joypad per hardware, checked independently
			// of interrupt priority: a higher-priority source pending at the
			// same time must not mask Joypad's wake-up.
			if c.irq.Pending()&(1<<interrupts.Joypad) != 0 {
				c.mode = modeNormal
			}
		}
	}

	if c.mode == modeHalt {
		c.tickComponents(4)
		return c.billed(4)
	}
	if c.mode == modeStop {
		c.tickComponents(4)
		return c.billed(4)
	}

	if c.irq.IME {
		if kind, ok := c.irq.Highest(); ok {
			return c.serviceInterrupt(kind)
		}
	}

	wasHaltBug := c.mode == modeHaltBug
	c.mode = modeNormal

	opcode := c.readPC()
	if wasHaltBug {
		c.PC-- // HALT bug: the byte after HALT is fetched but not consumed
	}

	enableIMEAfter := c.pendingEI
	c.pendingEI = false

	cycles := c.dispatch(opcode)

	if enableIMEAfter {
		c.irq.IME = true
	}

	c.tickComponents(cycles)
	return c.billed(cycles)
}

// billed halves the cycle count in CGB double-speed mode: the CPU core
// itself runs twice as fast, but dot-for-dot timing of the PPU/APU is
// unaffected, so callers that feed this return value to hardware clocked at
// the fixed 4.194MHz dot rate see half as many dots per instruction.
func (c *CPU) billed(cycles uint8) uint8 {
	if c.mmu.DoubleSpeed() {
		return cycles / 2
	}
	return cycles
}

func (c *CPU) serviceInterrupt(kind interrupts.Kind) uint8 {
	c.irq.IME = false
	c.irq.Clear(kind)
	c.push16(c.PC)
	c.PC = interrupts.Vector[kind]
	c.tickComponents(20)
	return c.billed(20)
}

func (c *CPU) dispatch(opcode uint8) uint8 {
	if opcode == 0xCB {
		sub := c.readPC()
		return cbTable[sub].exec(c)
	}
	return primaryTable[opcode].exec(c)
}

func (c *CPU) halt() {
	if !c.irq.IME && c.irq.Pending() != 0 {
		c.mode = modeHaltBug
	} else {
		c.mode = modeHalt
	}
}

func (c *CPU) stop() {
	c.mode = modeStop
	if c.mmu.CGBMode() && c.mmu.SpeedSwitchArmed() {
		c.mmu.TriggerSpeedSwitch()
		c.mode = modeNormal
	}
}
