package cpu

func buildCBTable() {
	shiftOps := []func(c *CPU, v uint8) uint8{
		(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr,
		(*CPU).sla, (*CPU).sra, (*CPU).swap, (*CPU).srl,
	}
	shiftNames := []string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

	for group := uint8(0); group < 8; group++ {
		for reg := uint8(0); reg < 8; reg++ {
			op := group*8 + reg
			g, r := group, reg
			cycles := uint8(8)
			if r == 6 {
				cycles = 16
			}
			cbTable[op] = Instruction{shiftNames[g] + " " + r8Names[r], func(c *CPU) uint8 {
				c.setR8(r, shiftOps[g](c, c.getR8(r)))
				return cycles
			}}
		}
	}

	for bit := uint8(0); bit < 8; bit++ {
		for reg := uint8(0); reg < 8; reg++ {
			b, r := bit, reg

			bitOp := 0x40 + b*8 + r
			cyclesBit := uint8(8)
			if r == 6 {
				cyclesBit = 12
			}
			cbTable[bitOp] = Instruction{"BIT", func(c *CPU) uint8 {
				c.bit(c.getR8(r), b)
				return cyclesBit
			}}

			resOp := 0x80 + b*8 + r
			cyclesRW := uint8(8)
			if r == 6 {
				cyclesRW = 16
			}
			cbTable[resOp] = Instruction{"RES", func(c *CPU) uint8 {
				c.setR8(r, c.getR8(r)&^(1<<b))
				return cyclesRW
			}}

			setOp := 0xC0 + b*8 + r
			cbTable[setOp] = Instruction{"SET", func(c *CPU) uint8 {
				c.setR8(r, c.getR8(r)|(1<<b))
				return cyclesRW
			}}
		}
	}
}
