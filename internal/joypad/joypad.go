// Package joypad emulates the P1 register and the eight-button input
// surface it multiplexes. It owns no I/O of its own: a front-end reports
// button transitions via Press/Release and the MMU reads back the
// synthesized register.
package joypad

import (
	"github.com/gogb/gogb/internal/interrupts"
	"github.com/gogb/gogb/pkg/bits"
)

// Button is one of the eight physical inputs.
type Button uint8

const (
	A Button = iota
	B
	Select
	Start
	Right
	Left
	Up
	Down
)

// State holds the current P1 selector bits and button state, and raises the
// joypad interrupt on a not-pressed-to-pressed transition.
type State struct {
	selector uint8 // bits 4 (direction select) and 5 (button select), as written
	buttons  uint8 // bit set = pressed, indexed by Button

	irq *interrupts.Controller
}

// New returns a State wired to irq for interrupt delivery.
func New(irq *interrupts.Controller) *State {
	return &State{selector: 0x30, irq: irq}
}

// Read synthesizes the P1 register: the low nibble reflects whichever of the
// direction or button rows is currently selected (active-low), the high
// nibble echoes the selector bits, and the two unused top bits read high.
func (s *State) Read() uint8 {
	lo := uint8(0x0F)
	if !bits.Test(s.selector, 4) { // direction select is active-low
		if bits.Test(s.buttons, uint8(Right)) {
			lo &^= 0x01
		}
		if bits.Test(s.buttons, uint8(Left)) {
			lo &^= 0x02
		}
		if bits.Test(s.buttons, uint8(Up)) {
			lo &^= 0x04
		}
		if bits.Test(s.buttons, uint8(Down)) {
			lo &^= 0x08
		}
	}
	if !bits.Test(s.selector, 5) { // button select is active-low
		if bits.Test(s.buttons, uint8(A)) {
			lo &^= 0x01
		}
		if bits.Test(s.buttons, uint8(B)) {
			lo &^= 0x02
		}
		if bits.Test(s.buttons, uint8(Select)) {
			lo &^= 0x04
		}
		if bits.Test(s.buttons, uint8(Start)) {
			lo &^= 0x08
		}
	}
	return 0xC0 | (s.selector & 0x30) | lo
}

// Write stores the two selector bits from value; the remaining register
// state is synthesized on read.
func (s *State) Write(value uint8) {
	s.selector = (s.selector & 0xCF) | (value & 0x30)
}

// Press marks button as held, raising the joypad interrupt if this is a
// not-pressed-to-pressed transition.
func (s *State) Press(button Button) {
	if !bits.Test(s.buttons, uint8(button)) {
		s.buttons = bits.Set(s.buttons, uint8(button))
		if s.irq != nil {
			s.irq.Request(interrupts.Joypad)
		}
	}
}

// Release marks button as not held.
func (s *State) Release(button Button) {
	s.buttons = bits.Reset(s.buttons, uint8(button))
}
