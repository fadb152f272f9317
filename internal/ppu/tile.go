package ppu

// tileAddress resolves a tile index into a VRAM-relative byte offset
// (0-0x1FFF), honoring the sign convention of the selected tile-data base:
// 0x8000 is unsigned indexing, 0x9000 is signed (spec.md §4.3).
func tileAddress(unsignedMode bool, tileIndex uint8) uint16 {
	if unsignedMode {
		return uint16(tileIndex) * 16
	}
	signed := int8(tileIndex)
	return uint16(int32(0x9000-0x8000) + int32(signed)*16)
}

// tileRow unpacks one 8-pixel row of a tile (2 planar bytes: low bitplane,
// high bitplane) into 8 2-bit color indices, index 0 = leftmost pixel.
func tileRow(lo, hi uint8, xFlip bool) [8]uint8 {
	var row [8]uint8
	for bit := 0; bit < 8; bit++ {
		shift := uint(7 - bit)
		lowBit := (lo >> shift) & 1
		highBit := (hi >> shift) & 1
		row[bit] = lowBit | highBit<<1
	}
	if xFlip {
		row[0], row[7] = row[7], row[0]
		row[1], row[6] = row[6], row[1]
		row[2], row[5] = row[5], row[2]
		row[3], row[4] = row[4], row[3]
	}
	return row
}
