package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestANDSetsHalfCarryAlwaysClearsCarry(t *testing.T) {
	c, _, _, _ := newTestCPU()
	c.setFlag(flagC, true)
	c.SetA(0xFF)
	result := c.and8(0xFF)
	assert.Equal(t, uint8(0xFF), result)
	assert.True(t, c.flagSet(flagH))
	assert.False(t, c.flagSet(flagC))
	assert.False(t, c.flagSet(flagN))
}

func TestORXORClearAllButZero(t *testing.T) {
	c, _, _, _ := newTestCPU()
	c.setFlag(flagH, true)
	c.setFlag(flagC, true)
	c.setFlag(flagN, true)

	c.or8(0)
	assert.True(t, c.flagSet(flagZ))
	assert.False(t, c.flagSet(flagH))
	assert.False(t, c.flagSet(flagC))
	assert.False(t, c.flagSet(flagN))
}

func TestAddHLCarryFromBit11And15(t *testing.T) {
	c, _, _, _ := newTestCPU()
	c.SetHL(0x0FFF)
	c.setFlag(flagZ, true) // addHL must not touch Z
	c.addHL(0x0001)
	assert.Equal(t, uint16(0x1000), c.HL())
	assert.True(t, c.flagSet(flagH))
	assert.False(t, c.flagSet(flagC))
	assert.True(t, c.flagSet(flagZ), "ADD HL,rr leaves Z untouched")

	c.SetHL(0xFFFF)
	c.addHL(0x0001)
	assert.Equal(t, uint16(0x0000), c.HL())
	assert.True(t, c.flagSet(flagC))
}

func TestAddSPSignedUsesUnsigned8BitCarry(t *testing.T) {
	c, _, _, _ := newTestCPU()
	c.SP = 0x00FF
	result := c.addSPSigned(1)
	assert.Equal(t, uint16(0x0100), result)
	assert.True(t, c.flagSet(flagH))
	assert.True(t, c.flagSet(flagC))
	assert.False(t, c.flagSet(flagZ))
	assert.False(t, c.flagSet(flagN))
}

func TestBitTestLeavesCarryUntouched(t *testing.T) {
	c, _, _, _ := newTestCPU()
	c.setFlag(flagC, true)
	c.bit(0x00, 3)
	assert.True(t, c.flagSet(flagZ))
	assert.False(t, c.flagSet(flagN))
	assert.True(t, c.flagSet(flagH))
	assert.True(t, c.flagSet(flagC))
}

func TestDecUnderflowSetsHalfCarry(t *testing.T) {
	c, _, _, _ := newTestCPU()
	result := c.dec8(0x00)
	assert.Equal(t, uint8(0xFF), result)
	assert.True(t, c.flagSet(flagH))
	assert.True(t, c.flagSet(flagN))
}
