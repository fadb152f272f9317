package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestROMOnlyIgnoresBankingWrites(t *testing.T) {
	r := newROMOnly(makeROM(2))
	r.WriteROM(0x2000, 0x05) // no-op: no banking hardware
	assert.Equal(t, byte(1), r.ReadROM(0x4000))
}

func TestROMOnlyHasNoRAM(t *testing.T) {
	r := newROMOnly(makeROM(2))
	r.WriteRAM(0xA000, 0x42)
	assert.Equal(t, byte(0xFF), r.ReadRAM(0xA000))
	assert.Nil(t, r.SaveRAM())
}
