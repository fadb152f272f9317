package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeROM(banks int) []byte {
	rom := make([]byte, banks*0x4000)
	for b := 0; b < banks; b++ {
		rom[b*0x4000] = byte(b) // tag each bank's first byte with its index
	}
	return rom
}

// TestMBC1ZeroBankSelectsOne exercises spec.md §8's MBC1 invariant: writing
// 0 to 0x2000 selects bank 1, not bank 0.
func TestMBC1ZeroBankSelectsOne(t *testing.T) {
	m := newMBC1(makeROM(32), 0)
	m.WriteROM(0x2000, 0x00)
	assert.Equal(t, byte(1), m.ReadROM(0x4000))
}

// TestMBC1BankSelectHonorsUpperBits exercises spec.md §8's MBC1 invariant:
// after writing N (1..31) to 0x2000, reads in 0x4000-0x7FFF use bank
// N|(upper<<5).
func TestMBC1BankSelectHonorsUpperBits(t *testing.T) {
	m := newMBC1(makeROM(128), 0)
	m.WriteROM(0x2000, 0x05)
	m.WriteROM(0x4000, 0x01) // upper bits = 1 -> bank2<<5 = 0x20
	assert.Equal(t, byte(0x25), m.ReadROM(0x4000))
}

// TestMBC1ModeSwitch exercises spec.md §8 scenario 7.
func TestMBC1ModeSwitch(t *testing.T) {
	m := newMBC1(makeROM(128), 4*0x2000)

	m.WriteROM(0x6000, 0x00) // mode 0 (ROM banking)
	m.WriteROM(0x4000, 0x02) // bank2 = 2
	m.WriteROM(0x2000, 0x01) // bank1 = 1 -> bank = 1 | (2<<5) = 0x41
	assert.Equal(t, byte(0x41), m.ReadROM(0x4000))

	m.WriteROM(0x6000, 0x01) // mode 1 (RAM banking)
	m.ramEnabled = true
	assert.Equal(t, 2, m.ramOffset()/0x2000, "RAM bank should now be 2")

	m.WriteROM(0x4000, 0x02)
	m.WriteROM(0x2000, 0x01)
	assert.Equal(t, byte(0x01), m.ReadROM(0x4000), "in RAM mode only bank1 selects the ROM bank")
}

// TestMBC1RAMEnableRequiresLowNibbleA checks the enable-latch contract.
func TestMBC1RAMEnableRequiresLowNibbleA(t *testing.T) {
	m := newMBC1(makeROM(2), 0x2000)
	m.WriteROM(0x0000, 0x05)
	assert.False(t, m.ramEnabled)
	m.WriteROM(0x0000, 0x0A)
	assert.True(t, m.ramEnabled)
}

func TestMBC1RAMReadWriteRoundTrip(t *testing.T) {
	m := newMBC1(makeROM(2), 0x2000)
	m.WriteROM(0x0000, 0x0A) // enable RAM
	m.WriteRAM(0xA010, 0x77)
	assert.Equal(t, byte(0x77), m.ReadRAM(0xA010))
}
