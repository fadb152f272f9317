package cartridge

// mbc3 implements the MBC3 mapper: 7-bit ROM bank select (zero-adjusted to
// 1), a RAM-bank-or-RTC-register selector at 0x4000-0x5FFF (raw byte; 0-3
// select RAM, 0x8-0xC select an RTC register), and the RTC latch sequence
// on 0x6000-0x7FFF, per spec.md §4.1.
type mbc3 struct {
	rom []byte
	ram []byte
	rtc *rtc

	ramEnabled bool
	romBank    uint8
	bankOrRTC  uint8

	romBanks int
}

func newMBC3(rom []byte, ramSize int, hasRTC bool) *mbc3 {
	m := &mbc3{
		rom:      rom,
		ram:      make([]byte, ramSize),
		romBank:  1,
		romBanks: romBankCount(len(rom)),
	}
	if hasRTC {
		m.rtc = newRTC()
	}
	return m
}

func (m *mbc3) ReadROM(address uint16) uint8 {
	if address < 0x4000 {
		if int(address) < len(m.rom) {
			return m.rom[address]
		}
		return 0xFF
	}
	bank := int(m.romBank) % m.romBanks
	off := bank*0x4000 + int(address-0x4000)
	if off >= 0 && off < len(m.rom) {
		return m.rom[off]
	}
	return 0xFF
}

func (m *mbc3) WriteROM(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		value &= 0x7F
		if value == 0 {
			value = 1
		}
		m.romBank = value
	case address < 0x6000:
		m.bankOrRTC = value
		if m.rtc != nil && value >= 0x08 && value <= 0x0C {
			m.rtc.SelectRegister(value)
		}
	default:
		if m.rtc != nil {
			m.rtc.Latch(value)
		}
	}
}

func (m *mbc3) usingRTC() bool {
	return m.rtc != nil && m.bankOrRTC >= 0x08 && m.bankOrRTC <= 0x0C
}

func (m *mbc3) ramOffset(address uint16) int {
	if len(m.ram) == 0 {
		return -1
	}
	banks := len(m.ram) / 0x2000
	if banks < 1 {
		banks = 1
	}
	return int(m.bankOrRTC&0x03)%banks*0x2000 + int(address&0x1FFF)
}

func (m *mbc3) ReadRAM(address uint16) uint8 {
	if !m.ramEnabled {
		return 0xFF
	}
	if m.usingRTC() {
		return m.rtc.Read()
	}
	off := m.ramOffset(address)
	if off >= 0 && off < len(m.ram) {
		return m.ram[off]
	}
	return 0xFF
}

func (m *mbc3) WriteRAM(address uint16, value uint8) {
	if !m.ramEnabled {
		return
	}
	if m.usingRTC() {
		m.rtc.Write(value)
		return
	}
	off := m.ramOffset(address)
	if off >= 0 && off < len(m.ram) {
		m.ram[off] = value
	}
}

func (m *mbc3) SaveRAM() []byte {
	out := make([]byte, len(m.ram))
	copy(out, m.ram)
	return out
}

func (m *mbc3) LoadRAM(data []byte) {
	copy(m.ram, data)
}
