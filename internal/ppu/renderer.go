package ppu

import "github.com/gogb/gogb/pkg/bits"

// renderLine draws one scanline (line 0-143) into the framebuffer,
// implementing the background, window, and sprite passes of spec.md §4.3.
func (p *PPU) renderLine(line int) {
	lcdc := p.mmu.LCDC()
	cgb := p.mmu.CGBMode()

	bgEnabledDMG := bits.Test(lcdc, 0) || cgb // on CGB bit 0 never blanks BG, only kills priority
	for x := 0; x < ScreenWidth; x++ {
		p.bgColorIndex[x] = 0
		p.bgPriority[x] = false
	}

	var bgPal, objPal [64]byte
	if cgb {
		bgPal = p.bgPaletteSnapshot()
		objPal = p.objPaletteSnapshot()
	}

	if bgEnabledDMG {
		p.renderBackground(line, lcdc, cgb, bgPal)
	} else {
		for x := 0; x < ScreenWidth; x++ {
			p.Framebuffer[line][x] = dmgColor(p.mmu.BGP(), 0)
		}
	}

	windowDrawn := false
	if bits.Test(lcdc, 5) && p.mmu.WY() <= uint8(line) && p.mmu.WX() <= 166 {
		windowDrawn = p.renderWindow(line, lcdc, cgb, bgPal)
	}
	if windowDrawn {
		p.windowLine++
	}

	if bits.Test(lcdc, 1) {
		p.renderSprites(line, lcdc, cgb, objPal)
	}
}

func (p *PPU) renderBackground(line int, lcdc uint8, cgb bool, bgPal [64]byte) {
	mapBase := uint16(0x9800)
	if bits.Test(lcdc, 3) {
		mapBase = 0x9C00
	}
	unsignedTiles := bits.Test(lcdc, 4)

	scy, scx := p.mmu.SCY(), p.mmu.SCX()
	y := (int(scy) + line) & 0xFF
	tileRowInMap := y / 8
	rowInTile := y % 8

	for x := 0; x < ScreenWidth; x++ {
		mapX := (int(scx) + x) & 0xFF
		tileCol := mapX / 8
		colInTile := mapX % 8

		mapOffset := uint16(tileRowInMap*32+tileCol) & 0x3FF
		tileIndex := p.mmu.ReadVRAM(0, mapBase-0x8000+mapOffset)

		attrs := uint8(0)
		if cgb {
			attrs = p.mmu.ReadVRAM(1, mapBase-0x8000+mapOffset)
		}
		bank := (attrs >> 3) & 1
		xFlip := attrs&0x20 != 0
		yFlip := attrs&0x40 != 0
		palette := attrs & 0x07

		r := rowInTile
		if yFlip {
			r = 7 - r
		}
		tileAddr := tileAddress(unsignedTiles, tileIndex)
		lo := p.mmu.ReadVRAM(bank, tileAddr+uint16(r)*2)
		hi := p.mmu.ReadVRAM(bank, tileAddr+uint16(r)*2+1)
		row := tileRow(lo, hi, xFlip)

		colorIndex := row[colInTile]
		p.bgColorIndex[x] = colorIndex
		p.bgPriority[x] = cgb && attrs&0x80 != 0

		if cgb {
			p.Framebuffer[line][x] = cgbColor(bgPal, palette, colorIndex)
		} else {
			p.Framebuffer[line][x] = dmgColor(p.mmu.BGP(), colorIndex)
		}
	}
}

func (p *PPU) renderWindow(line int, lcdc uint8, cgb bool, bgPal [64]byte) bool {
	mapBase := uint16(0x9800)
	if bits.Test(lcdc, 6) {
		mapBase = 0x9C00
	}
	unsignedTiles := bits.Test(lcdc, 4)

	wx := int(p.mmu.WX()) - 7
	if wx >= ScreenWidth {
		return false
	}

	y := int(p.windowLine)
	tileRowInMap := y / 8
	rowInTile := y % 8
	drawn := false

	for x := 0; x < ScreenWidth; x++ {
		if x < wx {
			continue
		}
		drawn = true
		winX := x - wx
		tileCol := winX / 8
		colInTile := winX % 8

		mapOffset := uint16(tileRowInMap*32+tileCol) & 0x3FF
		tileIndex := p.mmu.ReadVRAM(0, mapBase-0x8000+mapOffset)

		attrs := uint8(0)
		if cgb {
			attrs = p.mmu.ReadVRAM(1, mapBase-0x8000+mapOffset)
		}
		bank := (attrs >> 3) & 1
		xFlip := attrs&0x20 != 0
		yFlip := attrs&0x40 != 0
		palette := attrs & 0x07

		r := rowInTile
		if yFlip {
			r = 7 - r
		}
		tileAddr := tileAddress(unsignedTiles, tileIndex)
		lo := p.mmu.ReadVRAM(bank, tileAddr+uint16(r)*2)
		hi := p.mmu.ReadVRAM(bank, tileAddr+uint16(r)*2+1)
		row := tileRow(lo, hi, xFlip)

		colorIndex := row[colInTile]
		p.bgColorIndex[x] = colorIndex
		p.bgPriority[x] = cgb && attrs&0x80 != 0

		if cgb {
			p.Framebuffer[line][x] = cgbColor(bgPal, palette, colorIndex)
		} else {
			p.Framebuffer[line][x] = dmgColor(p.mmu.BGP(), colorIndex)
		}
	}
	return drawn
}

func (p *PPU) renderSprites(line int, lcdc uint8, cgb bool, objPal [64]byte) {
	height := 8
	if bits.Test(lcdc, 2) {
		height = 16
	}
	sprites := p.scanSprites(line, height)
	bgGlobalPriority := cgb && !bits.Test(lcdc, 0)

	// draw in reverse so the first (highest-priority) sprite in the
	// ordered list ends up drawn last, per spec.md §4.3.
	for i := len(sprites) - 1; i >= 0; i-- {
		s := sprites[i]
		row := line - s.y
		if s.yFlip() {
			row = height - 1 - row
		}

		tile := s.tile
		if height == 16 {
			tile &^= 0x01
			if row >= 8 {
				tile |= 0x01
				row -= 8
			}
		}

		bank := uint8(0)
		if cgb {
			bank = s.cgbBank()
		}
		tileAddr := uint16(tile) * 16
		lo := p.mmu.ReadVRAM(bank, tileAddr+uint16(row)*2)
		hi := p.mmu.ReadVRAM(bank, tileAddr+uint16(row)*2+1)
		pixels := tileRow(lo, hi, s.xFlip())

		for col := 0; col < 8; col++ {
			x := s.x + col
			if x < 0 || x >= ScreenWidth {
				continue
			}
			colorIndex := pixels[col]
			if colorIndex == 0 {
				continue // transparent
			}

			if !bgGlobalPriority {
				if s.bgPriority() && p.bgColorIndex[x] != 0 {
					continue
				}
				if cgb && p.bgPriority[x] && p.bgColorIndex[x] != 0 {
					continue
				}
			}

			if cgb {
				p.Framebuffer[line][x] = cgbColor(objPal, s.cgbPalette(), colorIndex)
			} else {
				pal := p.mmu.OBP0()
				if s.dmgPalette() == 1 {
					pal = p.mmu.OBP1()
				}
				p.Framebuffer[line][x] = dmgColor(pal, colorIndex)
			}
		}
	}
}

// bgPaletteSnapshot/objPaletteSnapshot copy the MMU's live CGB palette RAM
// into the fixed-size array cgbColor expects.
func (p *PPU) bgPaletteSnapshot() [64]byte {
	var out [64]byte
	for i := range out {
		out[i] = p.mmu.BGPaletteByte(uint8(i))
	}
	return out
}

func (p *PPU) objPaletteSnapshot() [64]byte {
	var out [64]byte
	for i := range out {
		out[i] = p.mmu.ObjPaletteByte(uint8(i))
	}
	return out
}
