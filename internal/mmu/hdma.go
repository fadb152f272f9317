package mmu

import "github.com/gogb/gogb/pkg/bits"

// hdmaState is the CGB VRAM-DMA engine's bookkeeping, per spec.md §4.2.
type hdmaState struct {
	src, dst        uint16
	active          bool
	remainingChunks uint8 // valid while active: 16-byte chunks left to copy
	lastRemaining   uint8 // low 7 bits reported while inactive; 0x7F = complete/never run
}

// statusByte renders the HDMA5 read value: bit 7 clear plus the remaining
// chunk count minus one while an H-blank transfer is in progress, or bit 7 set plus
// the last known remaining count (0x7F after a full completion) otherwise.
func (h *hdmaState) statusByte() uint8 {
	if h.active {
		return h.remainingChunks - 1
	}
	return 0x80 | h.lastRemaining
}

// startVRAMDMA handles a write to HDMA5, choosing general-purpose
// (immediate) or H-blank (incremental) transfer per bit 7 of value.
func (m *MMU) startVRAMDMA(value uint8) {
	if !bits.Test(value, 7) {
		if m.hdma.active {
			// cancel the in-progress H-blank transfer
			m.hdma.active = false
			if m.hdma.remainingChunks > 0 {
				m.hdma.lastRemaining = m.hdma.remainingChunks - 1
			}
			return
		}
		length := (int(value&0x7F) + 1) * 16
		m.copyHDMAChunk(length)
		m.hdma.src += uint16(length)
		m.hdma.dst += uint16(length)
		m.hdma.lastRemaining = 0x7F
		return
	}

	m.hdma.active = true
	m.hdma.remainingChunks = (value & 0x7F) + 1
}

// copyHDMAChunk copies n bytes from the source address into the VRAM bank
// selected by VBK at the moment of the transfer, wrapping the destination
// within the 8KB VRAM window.
func (m *MMU) copyHDMAChunk(n int) {
	for i := 0; i < n; i++ {
		m.vram[m.vramBank][(m.hdma.dst+uint16(i))&0x1FFF] = m.Read(m.hdma.src + uint16(i))
	}
}

// CheckHDMA is called by the PPU at the start of every H-blank. If an
// H-blank VRAM-DMA is active it performs one 16-byte chunk and returns the
// extra CPU cycles that chunk bills (8, doubled to 16 in double-speed), per
// spec.md §4.2/§5. It returns 0 if no H-blank transfer is active.
func (m *MMU) CheckHDMA() uint8 {
	if !m.hdma.active {
		return 0
	}

	m.copyHDMAChunk(16)
	m.hdma.src += 16
	m.hdma.dst += 16
	m.hdma.remainingChunks--

	if m.hdma.remainingChunks == 0 {
		m.hdma.active = false
		m.hdma.lastRemaining = 0x7F
	}

	if m.doubleSpeed {
		return 16
	}
	return 8
}
