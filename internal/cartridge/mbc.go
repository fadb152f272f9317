package cartridge

// MemoryBankController is the banking behaviour a cartridge delegates to.
// ROM/RAM reads and writes are addressed exactly as the CPU sees them
// (0x0000-0x7FFF for ROM, 0xA000-0xBFFF for external RAM); the mapper is
// responsible for translating those into bank-relative offsets.
type MemoryBankController interface {
	ReadROM(address uint16) uint8
	WriteROM(address uint16, value uint8)
	ReadRAM(address uint16) uint8
	WriteRAM(address uint16, value uint8)

	// SaveRAM returns a copy of the cartridge's external RAM for
	// persistence; LoadRAM restores it from a prior save.
	SaveRAM() []byte
	LoadRAM(data []byte)
}
