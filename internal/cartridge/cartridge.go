// Package cartridge owns the immutable ROM image, the mutable external RAM,
// and the mapper logic (bank switching, RAM enable, optional real-time
// clock) described in spec.md §4.1. It is the only component in this module
// with a file-system contract: save-path derivation and RAM persistence.
package cartridge

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Cartridge is the cartridge slot: a parsed header plus whichever
// MemoryBankController the header's type byte selects.
type Cartridge struct {
	MemoryBankController
	Header Header
}

// New parses rom's header and constructs the matching mapper. Images too
// short to hold a header and unsupported mapper kinds fall back to Empty()
// with a warning logged, per spec.md §7's "refuse to load" contract; a
// logo or header-checksum mismatch is only logged and the ROM still loads. The boolean second
// return communicates whether rom loaded as a real cartridge or the stub.
func New(rom []byte, log *logrus.Logger) (*Cartridge, bool) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if len(rom) < 0x150 {
		log.Warn("cartridge: rom image too small to contain a header")
		return Empty(), false
	}

	h := ParseHeader(rom)
	c := &Cartridge{Header: h}

	switch h.Mapper {
	case MapperROM:
		c.MemoryBankController = newROMOnly(rom)
	case MapperMBC1:
		c.MemoryBankController = newMBC1(rom, h.RAMSize)
	case MapperMBC2:
		c.MemoryBankController = newMBC2(rom)
	case MapperMBC3:
		c.MemoryBankController = newMBC3(rom, h.RAMSize, h.HasRTC)
	case MapperMBC5:
		c.MemoryBankController = newMBC5(rom, h.RAMSize)
	default:
		log.Warnf("cartridge: unsupported mapper for type byte 0x%02X", h.TypeByte)
		return Empty(), false
	}

	if !ValidLogo(rom) {
		log.Warn("cartridge: logo bitmap does not match, loading anyway")
	}
	if !ValidHeaderChecksum(rom) {
		log.Warn("cartridge: header checksum mismatch, loading anyway")
	}

	return c, true
}

// Empty returns a stub cartridge that reads as all-0xFF everywhere, used
// when no ROM is loaded or loading fails.
func Empty() *Cartridge {
	blank := make([]byte, 0x8000)
	for i := range blank {
		blank[i] = 0xFF
	}
	return &Cartridge{MemoryBankController: newROMOnly(blank)}
}

// Title returns the cartridge's title as parsed from the header.
func (c *Cartridge) Title() string {
	return c.Header.Title
}

// SavePath derives a stable save-file name from the title plus both
// checksums, so two different ROMs that happen to share a title don't
// collide, per spec.md §4.1.
func (c *Cartridge) SavePath() string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s|%02x|%04x", c.Header.Title, c.Header.HeaderChecksum, c.Header.GlobalChecksum)))
	return hex.EncodeToString(sum[:]) + ".sav"
}
