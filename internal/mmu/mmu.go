// Package mmu is the central address-space router described in spec.md
// §4.2: it is the single source of truth for every memory operation
// outside the cartridge, routing CPU and PPU accesses to WRAM, VRAM, OAM,
// HRAM, the I/O register file, and the cartridge itself.
package mmu

import (
	"github.com/sirupsen/logrus"

	"github.com/gogb/gogb/internal/cartridge"
	"github.com/gogb/gogb/internal/interrupts"
	"github.com/gogb/gogb/internal/joypad"
	"github.com/gogb/gogb/internal/serial"
	"github.com/gogb/gogb/internal/timer"
	"github.com/gogb/gogb/pkg/bits"
)

// PPU register addresses, owned directly by the MMU per spec.md §3's
// ownership rule ("MMU exclusively owns all non-cartridge memory").
const (
	LCDC uint16 = 0xFF40
	STAT uint16 = 0xFF41
	SCY  uint16 = 0xFF42
	SCX  uint16 = 0xFF43
	LY   uint16 = 0xFF44
	LYC  uint16 = 0xFF45
	DMA  uint16 = 0xFF46
	BGP  uint16 = 0xFF47
	OBP0 uint16 = 0xFF48
	OBP1 uint16 = 0xFF49
	WY   uint16 = 0xFF4A
	WX   uint16 = 0xFF4B
	VBK  uint16 = 0xFF4F
	BOOT uint16 = 0xFF50

	HDMA1 uint16 = 0xFF51
	HDMA2 uint16 = 0xFF52
	HDMA3 uint16 = 0xFF53
	HDMA4 uint16 = 0xFF54
	HDMA5 uint16 = 0xFF55

	BGPI uint16 = 0xFF68
	BGPD uint16 = 0xFF69
	OBPI uint16 = 0xFF6A
	OBPD uint16 = 0xFF6B

	SVBK uint16 = 0xFF70
	KEY1 uint16 = 0xFF4D

	P1 uint16 = 0xFF00
)

// MMU is the address-space router. It holds non-owning references to the
// Cartridge and to Joypad/Timer/Serial/Interrupts, and exclusively owns
// WRAM, VRAM, OAM, HRAM, and the PPU/DMA register state.
type MMU struct {
	Cart       *cartridge.Cartridge
	Joypad     *joypad.State
	Timer      *timer.Controller
	Serial     *serial.Controller
	Interrupts *interrupts.Controller

	cgb bool
	log *logrus.Logger

	wram *wram
	vram [2][0x2000]byte
	oam  [0xA0]byte
	hram [0x7F]byte

	vramBank uint8
	wramBank uint8 // mirror of wram.sel for SVBK read-back

	// PPU registers
	lcdc, stat, scy, scx, ly, lyc byte
	bgp, obp0, obp1               byte
	wy, wx                        byte

	// boot ROM overlay
	bootROM    []byte
	bootActive bool

	// CGB speed switch
	key1 byte
	doubleSpeed bool

	// CGB palette RAM: 8 palettes x 4 colors x 2 bytes
	bgPalette  [64]byte
	objPalette [64]byte
	bgpi, obpi byte

	hdma *hdmaState

	apuRegs [0x30]byte // FF10-FF3F, raw storage; APU synthesis is out of scope

	// OAM-DMA in-flight state; modeled as instantaneous per spec.md §4.2,
	// so these only exist to answer "is a DMA active" queries if a future
	// caller needs them.
	oamDMAActive bool
}

// New returns an MMU wired to cart and the given peripheral controllers.
// log may be nil, in which case logrus.StandardLogger() is used.
func New(cart *cartridge.Cartridge, jp *joypad.State, tm *timer.Controller, sr *serial.Controller, irq *interrupts.Controller, cgb bool, bootROM []byte, log *logrus.Logger) *MMU {
	if log == nil {
		log = logrus.StandardLogger()
	}
	m := &MMU{
		Cart:       cart,
		Joypad:     jp,
		Timer:      tm,
		Serial:     sr,
		Interrupts: irq,
		cgb:        cgb,
		log:        log,
		wram:       newWRAM(),
		bootROM:    bootROM,
		hdma:       &hdmaState{lastRemaining: 0x7F},
		stat:       0x80,
	}
	if len(bootROM) > 0 {
		m.bootActive = true
	}
	return m
}

// CGBMode reports whether this MMU is configured for Color Game Boy mode.
func (m *MMU) CGBMode() bool { return m.cgb }

// SetBootROM installs rom as the boot-ROM overlay, re-enabling the overlay
// for addresses it covers. A front-end calls this before the machine's
// first StepFrame; called after the BOOT register has been written, it turns
// the overlay back on (an empty rom turns it off).
func (m *MMU) SetBootROM(rom []byte) {
	m.bootROM = rom
	m.bootActive = len(rom) > 0
}

// BootROMActive reports whether reads below the overlay's disable point are
// currently serviced from the boot ROM rather than the cartridge.
func (m *MMU) BootROMActive() bool { return m.bootActive }

// DoubleSpeed reports whether the CPU is currently running at double speed.
func (m *MMU) DoubleSpeed() bool { return m.doubleSpeed }

// Read returns the byte at address, routing through the boot ROM overlay,
// cartridge, WRAM, VRAM, OAM, and I/O register file per spec.md §3.
func (m *MMU) Read(address uint16) uint8 {
	if m.bootActive && m.inBootROMRange(address) {
		return m.bootROM[m.bootROMOffset(address)]
	}

	switch {
	case address < 0x8000:
		return m.Cart.ReadROM(address)
	case address < 0xA000:
		return m.vram[m.vramBank][address-0x8000]
	case address < 0xC000:
		return m.Cart.ReadRAM(address)
	case address < 0xD000:
		return m.wram.readLow(address - 0xC000)
	case address < 0xE000:
		return m.wram.readHigh(address - 0xD000)
	case address < 0xFE00:
		// echo of 0xC000-0xDDFF
		return m.Read(address - 0x2000)
	case address < 0xFEA0:
		return m.oam[address-0xFE00]
	case address < 0xFF00:
		return 0xFF // unusable region
	case address < 0xFF80:
		return m.readIO(address)
	case address < 0xFFFF:
		return m.hram[address-0xFF80]
	default:
		return m.Interrupts.Read(address)
	}
}

// Write stores value at address, with the register-specific side effects
// enumerated in spec.md §4.2.
func (m *MMU) Write(address uint16, value uint8) {
	if m.bootActive && m.inBootROMRange(address) {
		return // boot ROM overlay is read-only
	}

	switch {
	case address < 0x8000:
		m.Cart.WriteROM(address, value)
	case address < 0xA000:
		m.vram[m.vramBank][address-0x8000] = value
	case address < 0xC000:
		m.Cart.WriteRAM(address, value)
	case address < 0xD000:
		m.wram.writeLow(address-0xC000, value)
	case address < 0xE000:
		m.wram.writeHigh(address-0xD000, value)
	case address < 0xFE00:
		m.Write(address-0x2000, value)
	case address < 0xFEA0:
		m.oam[address-0xFE00] = value
	case address < 0xFF00:
		// unusable region, silently ignored
	case address < 0xFF80:
		m.writeIO(address, value)
	case address < 0xFFFF:
		m.hram[address-0xFF80] = value
	default:
		m.Interrupts.Write(address, value)
	}
}

func (m *MMU) inBootROMRange(address uint16) bool {
	if address < 0x0100 {
		return true
	}
	if m.cgb && address >= 0x0200 && address < 0x0900 {
		return len(m.bootROM) > 0x200
	}
	return false
}

func (m *MMU) bootROMOffset(address uint16) uint16 {
	return address
}

// Read16/Write16 are little-endian 16-bit helpers.
func (m *MMU) Read16(address uint16) uint16 {
	return uint16(m.Read(address)) | uint16(m.Read(address+1))<<8
}

func (m *MMU) Write16(address uint16, value uint16) {
	m.Write(address, uint8(value))
	m.Write(address+1, uint8(value>>8))
}

// ReadVRAM reads VRAM bank `bank` directly, bypassing the currently
// selected bank — used by the PPU, which must read both CGB VRAM banks
// regardless of what VBK currently selects.
func (m *MMU) ReadVRAM(bank uint8, address uint16) uint8 {
	return m.vram[bank&1][address&0x1FFF]
}

// ReadOAM reads a raw OAM byte (0-0x9F) for the PPU's sprite scan.
func (m *MMU) ReadOAM(offset uint8) uint8 {
	return m.oam[offset]
}

// --- PPU register accessors -------------------------------------------------
// The PPU holds a non-owning *MMU and drives its state machine through
// these, rather than going through the generic Read/Write path, since they
// are consulted every dot.

func (m *MMU) LCDC() byte     { return m.lcdc }
func (m *MMU) STAT() byte     { return m.stat }
func (m *MMU) SCY() byte      { return m.scy }
func (m *MMU) SCX() byte      { return m.scx }
func (m *MMU) LYRaw() byte    { return m.ly }
func (m *MMU) LYC() byte      { return m.lyc }
func (m *MMU) BGP() byte      { return m.bgp }
func (m *MMU) OBP0() byte     { return m.obp0 }
func (m *MMU) OBP1() byte     { return m.obp1 }
func (m *MMU) WY() byte       { return m.wy }
func (m *MMU) WX() byte       { return m.wx }
func (m *MMU) VRAMBank() byte { return m.vramBank }

// SetLY sets the LY register directly (bypassing the "write resets to 0"
// rule, which only applies to CPU-initiated writes); used by the PPU.
func (m *MMU) SetLY(v byte) { m.ly = v }

// SetSTAT sets the full STAT byte directly; used by the PPU when it updates
// the mode bits or the LYC-coincidence bit.
func (m *MMU) SetSTAT(v byte) { m.stat = v&0x7F | 0x80 }

// BGPaletteByte / ObjPaletteByte expose the raw CGB palette RAM to the PPU.
func (m *MMU) BGPaletteByte(i uint8) uint8  { return m.bgPalette[i&0x3F] }
func (m *MMU) ObjPaletteByte(i uint8) uint8 { return m.objPalette[i&0x3F] }

func (m *MMU) readIO(address uint16) uint8 {
	switch address {
	case P1:
		return m.Joypad.Read()
	case timer.DIV, timer.TIMA, timer.TMA, timer.TAC:
		return m.Timer.Read(address)
	case serial.SB, serial.SC:
		return m.Serial.Read(address)
	case 0xFF0F:
		return m.Interrupts.Read(address)
	case LCDC:
		return m.lcdc
	case STAT:
		return m.stat | 0x80
	case SCY:
		return m.scy
	case SCX:
		return m.scx
	case LY:
		return m.ly
	case LYC:
		return m.lyc
	case DMA:
		return 0xFF
	case BGP:
		return m.bgp
	case OBP0:
		return m.obp0
	case OBP1:
		return m.obp1
	case WY:
		return m.wy
	case WX:
		return m.wx
	case BOOT:
		if m.bootActive {
			return 0
		}
		return 1
	case VBK:
		return m.vramBank | 0xFE
	case KEY1:
		v := m.key1 & 0x01
		if m.doubleSpeed {
			v |= 0x80
		}
		return v | 0x7E
	case HDMA5:
		return m.hdma.statusByte()
	case BGPI:
		return m.bgpi | 0x40
	case BGPD:
		return m.bgPalette[m.bgpi&0x3F]
	case OBPI:
		return m.obpi | 0x40
	case OBPD:
		return m.objPalette[m.obpi&0x3F]
	case SVBK:
		return m.wramBank | 0xF8
	default:
		if address >= 0xFF10 && address < 0xFF40 {
			return m.apuRegs[address-0xFF10]
		}
		return 0xFF
	}
}

func (m *MMU) writeIO(address uint16, value uint8) {
	switch address {
	case P1:
		m.Joypad.Write(value)
	case timer.DIV, timer.TIMA, timer.TMA, timer.TAC:
		m.Timer.Write(address, value)
	case serial.SB, serial.SC:
		m.Serial.Write(address, value)
	case 0xFF0F:
		m.Interrupts.Write(address, value)
	case LCDC:
		m.lcdc = value
	case STAT:
		// bits 0-2 are read-only; preserve them, apply the quirk below
		m.stat = (m.stat & 0x07) | (value & 0x78) | 0x80
		m.statWriteQuirk()
	case SCY:
		m.scy = value
	case SCX:
		m.scx = value
	case LY:
		m.ly = 0 // read-only externally: any write resets it
	case LYC:
		m.lyc = value
	case DMA:
		m.startOAMDMA(value)
	case BGP:
		m.bgp = value
	case OBP0:
		m.obp0 = value
	case OBP1:
		m.obp1 = value
	case WY:
		m.wy = value
	case WX:
		m.wx = value
	case BOOT:
		m.bootActive = false
	case VBK:
		if m.cgb {
			m.vramBank = value & 0x01
		}
	case KEY1:
		if m.cgb {
			m.key1 = value & 0x01
		}
	case HDMA1:
		m.hdma.src = (m.hdma.src & 0x00FF) | uint16(value)<<8
	case HDMA2:
		m.hdma.src = (m.hdma.src & 0xFF00) | uint16(value&0xF0)
	case HDMA3:
		m.hdma.dst = (m.hdma.dst & 0x00FF) | uint16(value&0x1F)<<8
	case HDMA4:
		m.hdma.dst = (m.hdma.dst & 0xFF00) | uint16(value&0xF0)
	case HDMA5:
		m.startVRAMDMA(value)
	case BGPI:
		m.bgpi = value & 0xBF
	case BGPD:
		m.bgPalette[m.bgpi&0x3F] = value
		if bits.Test(m.bgpi, 7) {
			m.bgpi = (m.bgpi & 0x80) | ((m.bgpi + 1) & 0x3F)
		}
	case OBPI:
		m.obpi = value & 0xBF
	case OBPD:
		m.objPalette[m.obpi&0x3F] = value
		if bits.Test(m.obpi, 7) {
			m.obpi = (m.obpi & 0x80) | ((m.obpi + 1) & 0x3F)
		}
	case SVBK:
		if m.cgb {
			m.wramBank = value & 0x07
			m.wram.selectBank(value)
		}
	default:
		if address >= 0xFF10 && address < 0xFF40 {
			m.apuRegs[address-0xFF10] = value
		}
	}
}

// statWriteQuirk implements the non-CGB hardware bug (spec.md §4.2, §9):
// writing STAT while the LCD is on and the current mode is HBlank or
// VBlank spuriously raises the LCD-STAT interrupt.
func (m *MMU) statWriteQuirk() {
	if m.cgb {
		return
	}
	if !bits.Test(m.lcdc, 7) {
		return
	}
	mode := m.stat & 0x03
	if mode == 0 || mode == 1 {
		m.Interrupts.Request(interrupts.LCDStat)
	}
}

// SpeedSwitchArmed reports whether a KEY1 write has armed a speed switch for
// the next STOP instruction.
func (m *MMU) SpeedSwitchArmed() bool {
	return m.cgb && m.key1&0x01 != 0
}

// TriggerSpeedSwitch performs the CGB double-speed toggle armed by a KEY1
// write, invoked by the CPU when STOP executes with bit 0 of KEY1 set.
func (m *MMU) TriggerSpeedSwitch() {
	if !m.cgb || m.key1&0x01 == 0 {
		return
	}
	m.doubleSpeed = !m.doubleSpeed
	m.key1 = 0
}
