// Package serial provides the narrow link-port stub spec'd for this core:
// enough register behaviour to satisfy software that pokes SB/SC, plus the
// "transfer complete" interrupt, without any actual link-cable protocol.
package serial

import (
	"github.com/gogb/gogb/internal/interrupts"
	"github.com/gogb/gogb/pkg/bits"
)

const (
	SB uint16 = 0xFF01
	SC uint16 = 0xFF02

	// transferCycles is the (simplified) number of cycles an internal-clock
	// transfer takes to complete; real hardware shifts one bit per 512
	// cycles for a full byte, but no commercial title depends on the exact
	// figure for a transfer that has no partner on the other end.
	transferCycles = 512 * 8
)

// Controller owns SB/SC and the transfer-complete countdown.
type Controller struct {
	data    uint8
	control uint8

	transferring bool
	remaining    int

	irq *interrupts.Controller
}

// NewController returns a Controller wired to irq.
func NewController(irq *interrupts.Controller) *Controller {
	return &Controller{irq: irq}
}

// Read returns the register value at address.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case SB:
		return c.data
	case SC:
		return c.control | 0x7E
	}
	return 0xFF
}

// Write stores value into the register at address. Writing SC with both the
// transfer-start bit and the internal-clock bit set begins a transfer; since
// no link partner exists, the byte shifted out is simply 0xFF (idle line)
// and the byte read back after completion is unchanged.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case SB:
		c.data = value
	case SC:
		c.control = value & 0x81
		if bits.Test(c.control, 7) && bits.Test(c.control, 0) {
			c.transferring = true
			c.remaining = transferCycles
		}
	}
}

// Tick advances any in-flight transfer by cycles and raises the Serial
// interrupt when it completes.
func (c *Controller) Tick(cycles uint8) {
	if !c.transferring {
		return
	}
	c.remaining -= int(cycles)
	if c.remaining <= 0 {
		c.transferring = false
		c.control = bits.Reset(c.control, 7)
		c.irq.Request(interrupts.Serial)
	}
}
