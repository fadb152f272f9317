package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMBC3BankSelectUsesFull7Bits(t *testing.T) {
	m := newMBC3(makeROM(128), 0, false)
	m.WriteROM(0x2000, 0x00) // zero -> bank 1, same quirk as MBC1
	assert.Equal(t, byte(1), m.ReadROM(0x4000))

	m.WriteROM(0x2000, 0x7F)
	assert.Equal(t, byte(0x7F), m.ReadROM(0x4000))
}

func TestMBC3RAMBankSelectBelow4(t *testing.T) {
	m := newMBC3(makeROM(2), 4*0x2000, false)
	m.WriteROM(0x0000, 0x0A) // enable
	m.WriteROM(0x4000, 0x02) // select RAM bank 2
	m.WriteRAM(0xA000, 0x55)
	assert.Equal(t, byte(0x55), m.ReadRAM(0xA000))

	m.WriteROM(0x4000, 0x00)
	assert.NotEqual(t, byte(0x55), m.ReadRAM(0xA000))
}

func TestMBC3SelectingRTCRegisterRoutesRAMWindowToClock(t *testing.T) {
	m := newMBC3(makeROM(2), 0x2000, true)
	m.WriteROM(0x0000, 0x0A) // enable
	m.WriteROM(0x4000, 0x08) // select RTC seconds register
	assert.True(t, m.usingRTC())

	m.rtc.elapsed = 5
	m.WriteRAM(0xA000, 0) // write routes to rtc.Write, not RAM array
	m.WriteROM(0x6000, 0x00)
	m.WriteROM(0x6000, 0x01) // latch sequence
	assert.Equal(t, byte(0), m.ReadRAM(0xA000))
}

func TestMBC3WithoutRTCIgnoresRegisterSelect(t *testing.T) {
	m := newMBC3(makeROM(2), 0x2000, false)
	m.WriteROM(0x0000, 0x0A)
	m.WriteROM(0x4000, 0x08)
	assert.False(t, m.usingRTC())
}
