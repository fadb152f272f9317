package cartridge

import "fmt"

// MapperKind identifies the banking hardware wired into a cartridge.
type MapperKind uint8

const (
	MapperROM MapperKind = iota
	MapperMBC1
	MapperMBC2
	MapperMBC3
	MapperMBC5
	MapperUnsupported
)

func (k MapperKind) String() string {
	switch k {
	case MapperROM:
		return "ROM"
	case MapperMBC1:
		return "MBC1"
	case MapperMBC2:
		return "MBC2"
	case MapperMBC3:
		return "MBC3"
	case MapperMBC5:
		return "MBC5"
	default:
		return "unsupported"
	}
}

// typeInfo describes what a cartridge-type byte implies about the hardware.
type typeInfo struct {
	mapper     MapperKind
	hasRAM     bool
	hasBattery bool
	hasRTC     bool
}

// typeTable maps the header's cartridge-type byte (0x147) to its mapper and
// feature set, per spec.md §6's supported-type enumeration.
var typeTable = map[uint8]typeInfo{
	0x00: {MapperROM, false, false, false},
	0x01: {MapperMBC1, false, false, false},
	0x02: {MapperMBC1, true, false, false},
	0x03: {MapperMBC1, true, true, false},
	0x05: {MapperMBC2, true, false, false},
	0x06: {MapperMBC2, true, true, false},
	0x0F: {MapperMBC3, false, true, true},
	0x10: {MapperMBC3, true, true, true},
	0x11: {MapperMBC3, false, false, false},
	0x12: {MapperMBC3, true, false, false},
	0x13: {MapperMBC3, true, true, false},
	0x19: {MapperMBC5, false, false, false},
	0x1A: {MapperMBC5, true, false, false},
	0x1B: {MapperMBC5, true, true, false},
	0x1C: {MapperMBC5, false, false, false},
	0x1D: {MapperMBC5, true, false, false},
	0x1E: {MapperMBC5, true, true, false},
}

// cgbFlag classifies the 0x143 byte.
type cgbFlag uint8

const (
	cgbFlagNone cgbFlag = iota
	cgbFlagSupported
	cgbFlagOnly
)

// Header is the parsed 0x0100-0x014F cartridge header.
type Header struct {
	Title            string
	ManufacturerCode string
	CGB              cgbFlag
	NewLicenseeCode  string
	SGBFlag          bool
	TypeByte         uint8
	Mapper           MapperKind
	HasRAM           bool
	HasBattery       bool
	HasRTC           bool
	ROMSize          int
	RAMSize          int
	OldLicenseeCode  uint8
	MaskROMVersion   uint8
	HeaderChecksum   uint8
	GlobalChecksum   uint16
}

var romSizeTable = map[uint8]int{
	0x00: 32 * 1024, 0x01: 64 * 1024, 0x02: 128 * 1024, 0x03: 256 * 1024,
	0x04: 512 * 1024, 0x05: 1024 * 1024, 0x06: 2 * 1024 * 1024,
	0x07: 4 * 1024 * 1024, 0x08: 8 * 1024 * 1024,
}

var ramSizeTable = map[uint8]int{
	0x00: 0, 0x01: 2 * 1024, 0x02: 8 * 1024, 0x03: 32 * 1024,
	0x04: 128 * 1024, 0x05: 64 * 1024,
}

// Logo is the fixed 48-byte Nintendo logo bitmap every valid cartridge
// carries at 0x0104-0x0133.
var Logo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B,
	0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
	0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC,
	0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// ValidLogo reports whether rom carries the fixed Nintendo logo at 0x0104.
func ValidLogo(rom []byte) bool {
	if len(rom) < 0x134 {
		return false
	}
	for i, b := range Logo {
		if rom[0x104+i] != b {
			return false
		}
	}
	return true
}

// ValidHeaderChecksum reports whether rom's header checksum byte (0x14D)
// matches -sum(bytes 0x134..0x14C) - 25, per spec.md §6.
func ValidHeaderChecksum(rom []byte) bool {
	if len(rom) < 0x150 {
		return false
	}
	var sum uint8
	for i := 0x134; i <= 0x14C; i++ {
		sum = sum - rom[i] - 1
	}
	return sum == rom[0x14D]
}

// ParseHeader parses the header embedded in rom. It does not validate the
// logo or checksum; callers that care should use ValidLogo/ValidHeaderChecksum.
func ParseHeader(rom []byte) Header {
	h := Header{}
	if len(rom) < 0x150 {
		return h
	}

	switch rom[0x143] {
	case 0xC0:
		h.CGB = cgbFlagOnly
	case 0x80:
		h.CGB = cgbFlagSupported
	default:
		h.CGB = cgbFlagNone
	}

	titleEnd := 0x144
	if h.CGB != cgbFlagNone {
		titleEnd = 0x143
	}
	h.Title = trimTitle(rom[0x134:titleEnd])
	h.ManufacturerCode = string(rom[0x13F:0x143])
	h.NewLicenseeCode = string(rom[0x144:0x146])
	h.SGBFlag = rom[0x146] == 0x03

	h.TypeByte = rom[0x147]
	info, ok := typeTable[h.TypeByte]
	if !ok {
		info = typeInfo{mapper: MapperUnsupported}
	}
	h.Mapper = info.mapper
	h.HasRAM = info.hasRAM
	h.HasBattery = info.hasBattery
	h.HasRTC = info.hasRTC

	h.ROMSize = romSizeTable[rom[0x148]]
	h.RAMSize = ramSizeTable[rom[0x149]]
	h.OldLicenseeCode = rom[0x14B]
	h.MaskROMVersion = rom[0x14C]
	h.HeaderChecksum = rom[0x14D]
	h.GlobalChecksum = uint16(rom[0x14E])<<8 | uint16(rom[0x14F])

	return h
}

func trimTitle(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// GameboyColor reports whether the cartridge requires or supports CGB mode.
func (h Header) GameboyColor() bool {
	return h.CGB != cgbFlagNone
}

// String renders a short human-readable summary, in the teacher's style.
func (h Header) String() string {
	return fmt.Sprintf("%s [%s] ROM=%dKB RAM=%dKB", h.Title, h.Mapper, h.ROMSize/1024, h.RAMSize/1024)
}
