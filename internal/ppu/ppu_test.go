package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogb/gogb/internal/cartridge"
	"github.com/gogb/gogb/internal/interrupts"
	"github.com/gogb/gogb/internal/joypad"
	"github.com/gogb/gogb/internal/mmu"
	"github.com/gogb/gogb/internal/serial"
	"github.com/gogb/gogb/internal/timer"
)

func newTestPPU() (*PPU, *mmu.MMU, *interrupts.Controller) {
	irq := interrupts.NewController()
	jp := joypad.New(irq)
	tm := timer.NewController(irq)
	sr := serial.NewController(irq)
	m := mmu.New(cartridge.Empty(), jp, tm, sr, irq, false, nil, nil)
	m.Write(mmu.LCDC, 0x80) // LCD on, everything else off
	p := New(m, irq)
	return p, m, irq
}

// newTestCGBPPU is identical to newTestPPU but wires the MMU for CGB mode,
// for tests that exercise CGB-only palette and priority behaviour.
func newTestCGBPPU() (*PPU, *mmu.MMU, *interrupts.Controller) {
	irq := interrupts.NewController()
	jp := joypad.New(irq)
	tm := timer.NewController(irq)
	sr := serial.NewController(irq)
	m := mmu.New(cartridge.Empty(), jp, tm, sr, irq, true, nil, nil)
	m.Write(mmu.LCDC, 0x80) // LCD on, everything else off
	p := New(m, irq)
	return p, m, irq
}

// TestModeCycleOnLineZero exercises spec.md §8 scenario 6.
func TestModeCycleOnLineZero(t *testing.T) {
	p, m, _ := newTestPPU()

	p.Step(dotsOAMScan-1, false) // first Step call also switches mode to OAMScan
	assert.Equal(t, ModeOAMScan, p.Mode())

	p.Step(1, false) // dot count reaches 80: OAMScan -> VRAMDraw
	assert.Equal(t, ModeVRAMDraw, p.Mode())

	p.Step(dotsVRAMDraw-1, false)
	assert.Equal(t, ModeVRAMDraw, p.Mode())
	p.Step(1, false) // dot count reaches 252: VRAMDraw -> HBlank, line rendered
	assert.Equal(t, ModeHBlank, p.Mode())

	p.Step(dotsHBlank-1, false)
	assert.Equal(t, uint8(0), m.LYRaw())
	p.Step(1, false) // dot count reaches 456: line advances
	assert.Equal(t, uint8(1), m.LYRaw())
	assert.Equal(t, ModeOAMScan, p.Mode())
}

// TestVBlankRaisedOnceEnteringLine144 exercises the VBlank interrupt timing
// spec.md §4.3 describes.
func TestVBlankRaisedOnceEnteringLine144(t *testing.T) {
	p, _, irq := newTestPPU()

	for line := 0; line < 144; line++ {
		p.Step(dotsPerLine/2, false) // Step takes a uint8, so a line is two calls
		p.Step(dotsPerLine/2, false)
	}
	assert.NotZero(t, irq.Flag&(1<<interrupts.VBlank))
	assert.Equal(t, ModeVBlank, p.Mode())
	require.True(t, p.FrameComplete())
}

// TestLCDDisabledHoldsLYAtZero exercises spec.md §4.3's LCD-disabled rule.
func TestLCDDisabledHoldsLYAtZero(t *testing.T) {
	p, m, _ := newTestPPU()
	m.Write(mmu.LCDC, 0x00) // disable LCD
	for i := 0; i < 4; i++ {
		p.Step(250, false)
	}
	assert.Equal(t, uint8(0), m.LYRaw())
}

func TestTileAddressSignConvention(t *testing.T) {
	assert.Equal(t, uint16(0), tileAddress(true, 0))
	assert.Equal(t, uint16(16), tileAddress(true, 1))
	assert.Equal(t, uint16(0x1000), tileAddress(false, 0))   // 0x9000 base, index 0
	assert.Equal(t, uint16(0x0FF0), tileAddress(false, 0xFF)) // index -1 -> 0x8FF0
}

func TestDMGPaletteShading(t *testing.T) {
	// BGP = 0b11_10_01_00: index0->0, index1->1, index2->2, index3->3
	palette := uint8(0b11_10_01_00)
	assert.Equal(t, dmgShades[0], dmgColor(palette, 0))
	assert.Equal(t, dmgShades[1], dmgColor(palette, 1))
	assert.Equal(t, dmgShades[2], dmgColor(palette, 2))
	assert.Equal(t, dmgShades[3], dmgColor(palette, 3))
}

func TestCGBColorScalesTo8Bit(t *testing.T) {
	var raw [64]byte
	raw[0] = 0x1F // low byte: red=0x1F
	raw[1] = 0x00
	got := cgbColor(raw, 0, 0)
	assert.Equal(t, uint8(0x1F*8), got[0])
}
