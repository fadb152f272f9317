package cpu

// getR8/setR8 resolve the standard 3-bit register field (B,C,D,E,H,L,(HL),A)
// used throughout the opcode map. Index 6 reads/writes memory at HL and
// costs an extra memory access, which the opcode-table builders account for
// by billing more cycles for the (HL) variants.
func (c *CPU) getR8(index uint8) uint8 {
	if index == 6 {
		return c.read8(c.HL())
	}
	return c.b[regIndex(index)]
}

func (c *CPU) setR8(index uint8, v uint8) {
	if index == 6 {
		c.write8(c.HL(), v)
		return
	}
	c.b[regIndex(index)] = v
}

// regIndex maps the instruction encoding order (B,C,D,E,H,L,_,A) directly
// onto Registers.b, since both use the same ordering.
func regIndex(index uint8) uint8 { return index }

// r16 group used by 0x01/0x11/0x21/0x31 (LD rr,d16), 0x03/.../0x33 (INC rr),
// 0x0B/.../0x3B (DEC rr) and 0x09/.../0x39 (ADD HL,rr): BC, DE, HL, SP.
func (c *CPU) getR16Group1(index uint8) uint16 {
	switch index {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.SP
	}
}

func (c *CPU) setR16Group1(index uint8, v uint16) {
	switch index {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SP = v
	}
}

// r16 group used by PUSH/POP: BC, DE, HL, AF.
func (c *CPU) getR16Group2(index uint8) uint16 {
	switch index {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.AF()
	}
}

func (c *CPU) setR16Group2(index uint8, v uint16) {
	switch index {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SetAF(v & 0xFFF0)
	}
}

// condition evaluates the cc field used by conditional JP/JR/CALL/RET:
// 0=NZ, 1=Z, 2=NC, 3=C.
func (c *CPU) condition(index uint8) bool {
	switch index {
	case 0:
		return !c.flagSet(flagZ)
	case 1:
		return c.flagSet(flagZ)
	case 2:
		return !c.flagSet(flagC)
	default:
		return c.flagSet(flagC)
	}
}

func (c *CPU) readOperand16() uint16 {
	lo := c.readPC()
	hi := c.readPC()
	return uint16(hi)<<8 | uint16(lo)
}
