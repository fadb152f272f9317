// Package ppu implements the per-scanline pixel-producing state machine
// spec.md §4.3 calls the GPU: it advances on cycle credits handed to it by
// the CPU, reads VRAM/OAM through the MMU, and raises VBlank/LCD-STAT
// interrupts by writing the MMU's interrupt-flag register.
package ppu

import (
	"github.com/cespare/xxhash"

	"github.com/gogb/gogb/internal/interrupts"
	"github.com/gogb/gogb/internal/mmu"
	"github.com/gogb/gogb/pkg/bits"
)

const (
	ScreenWidth  = 160
	ScreenHeight = 144

	dotsOAMScan   = 80
	dotsVRAMDraw  = 172
	dotsHBlank    = 204
	dotsPerLine   = dotsOAMScan + dotsVRAMDraw + dotsHBlank // 456
	linesVisible  = 144
	linesPerFrame = 154
)

// Mode is one of the four PPU states, numbered to match the low two bits of
// STAT (00=HBlank, 01=VBlank, 10=OAMScan, 11=VRAMDraw).
type Mode uint8

const (
	ModeHBlank Mode = iota
	ModeVBlank
	ModeOAMScan
	ModeVRAMDraw
)

// PPU is the scanline rasterizer. It owns a framebuffer and the tiny bit of
// state that isn't part of the MMU's register file (the mode-internal dot
// counter and the window-line counter), and holds a non-owning *mmu.MMU for
// everything else, per spec.md §3's ownership rule.
type PPU struct {
	mmu *mmu.MMU
	irq *interrupts.Controller

	mode Mode
	dot  uint16

	windowLine uint8 // internal window-line counter; only advances on lines the window actually draws on

	Framebuffer [ScreenHeight][ScreenWidth][4]uint8

	frameComplete bool
	wasOff        bool

	lastHash, curHash uint64

	bgColorIndex  [ScreenWidth]uint8 // last line's BG color index, for sprite BG-priority tests
	bgPriority    [ScreenWidth]bool  // last line's CGB BG-to-OAM priority bit
}

// New returns a PPU driven by m, raising interrupts through irq.
func New(m *mmu.MMU, irq *interrupts.Controller) *PPU {
	return &PPU{mmu: m, irq: irq, wasOff: true}
}

// Mode returns the PPU's current mode.
func (p *PPU) Mode() Mode { return p.mode }

// FrameComplete reports whether the most recent Step call finished a frame
// (LY transitioned 143->144). The orchestrator clears it by calling
// ConsumeFrame.
func (p *PPU) FrameComplete() bool { return p.frameComplete }

// ConsumeFrame clears the completed-frame latch and returns the previous
// value, so the orchestrator can check-and-clear in one call.
func (p *PPU) ConsumeFrame() bool {
	v := p.frameComplete
	p.frameComplete = false
	return v
}

// FrameChanged reports whether the framebuffer differs from the previous
// completed frame, using an xxhash digest the way the teacher's web
// front-end dedups frames before pushing them over a websocket
// (pkg/display/web/player.go) — repurposed here as a plain query any
// front-end can use to skip redundant presentation work.
func (p *PPU) FrameChanged() bool {
	return p.curHash != p.lastHash
}

func (p *PPU) enabled() bool {
	return bits.Test(p.mmu.LCDC(), 7)
}

// Step advances the PPU by cycles dot-cycles. render controls whether the
// (expensive) line renderer actually runs — a front-end doing frame-skip
// can pass false and the mode machine still advances and still raises
// interrupts correctly.
func (p *PPU) Step(cycles uint8, render bool) {
	if !p.enabled() {
		if !p.wasOff {
			p.clearToWhite()
			p.mode = ModeHBlank
			p.mmu.SetLY(0)
			p.dot = 0
			p.windowLine = 0
		}
		p.wasOff = true
		return
	}
	if p.wasOff {
		p.wasOff = false
		p.dot = 0
		p.setMode(ModeOAMScan)
		p.checkLYC()
	}

	for i := uint8(0); i < cycles; i++ {
		p.tick(render)
	}
}

// tick advances the state machine by a single dot-cycle.
func (p *PPU) tick(render bool) {
	p.dot++
	lineDot := p.dot

	switch p.mode {
	case ModeOAMScan:
		if lineDot == dotsOAMScan {
			p.setMode(ModeVRAMDraw)
		}
	case ModeVRAMDraw:
		if lineDot == dotsOAMScan+dotsVRAMDraw {
			if render {
				p.renderLine(int(p.mmu.LYRaw()))
			}
			p.setMode(ModeHBlank)
			p.mmu.CheckHDMA()
		}
	case ModeHBlank:
		if lineDot == dotsPerLine {
			p.advanceLine()
		}
	case ModeVBlank:
		if lineDot == dotsPerLine {
			p.advanceLine()
		}
	}
}

func (p *PPU) advanceLine() {
	p.dot = 0
	newLY := p.mmu.LYRaw() + 1
	if newLY >= linesPerFrame {
		newLY = 0
	}
	p.mmu.SetLY(newLY)
	p.checkLYC()

	switch {
	case newLY == linesVisible:
		p.setMode(ModeVBlank)
		p.irq.Request(interrupts.VBlank)
		p.finishFrame()
	case newLY == 0:
		p.windowLine = 0
		p.setMode(ModeOAMScan)
	case newLY < linesVisible:
		p.setMode(ModeOAMScan)
	default:
		// still inside VBlank (145-153): mode stays ModeVBlank
	}
}

func (p *PPU) setMode(mode Mode) {
	p.mode = mode
	stat := p.mmu.STAT()
	coincidence := uint8(0)
	if p.mmu.LYRaw() == p.mmu.LYC() {
		coincidence = 1 << 2
	}
	p.mmu.SetSTAT((stat & 0x78) | coincidence | uint8(mode))

	switch mode {
	case ModeHBlank:
		if bits.Test(stat, 3) {
			p.irq.Request(interrupts.LCDStat)
		}
	case ModeVBlank:
		if bits.Test(stat, 4) {
			p.irq.Request(interrupts.LCDStat)
		}
	case ModeOAMScan:
		if bits.Test(stat, 5) {
			p.irq.Request(interrupts.LCDStat)
		}
	}
}

func (p *PPU) checkLYC() {
	stat := p.mmu.STAT()
	coincidence := p.mmu.LYRaw() == p.mmu.LYC()
	bit := uint8(0)
	if coincidence {
		bit = 1 << 2
	}
	p.mmu.SetSTAT((stat &^ 0x04) | bit)
	if coincidence && bits.Test(stat, 6) {
		p.irq.Request(interrupts.LCDStat)
	}
}

func (p *PPU) finishFrame() {
	p.lastHash = p.curHash
	p.curHash = p.hashFramebuffer()
	p.frameComplete = true
}

func (p *PPU) hashFramebuffer() uint64 {
	h := xxhash.New()
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			px := p.Framebuffer[y][x]
			h.Write(px[:])
		}
	}
	return h.Sum64()
}

func (p *PPU) clearToWhite() {
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			p.Framebuffer[y][x] = [4]uint8{255, 255, 255, 255}
		}
	}
}
