package cpu

import "github.com/sirupsen/logrus"

// Instruction describes one decoded opcode: its mnemonic (kept for
// disassembly and tests, unused by dispatch itself) and the function that
// performs it and reports the actual number of T-cycles it cost — some
// instructions take fewer cycles when a branch isn't taken.
type Instruction struct {
	Name string
	exec func(c *CPU) uint8
}

var primaryTable [256]Instruction
var cbTable [256]Instruction

var r8Names = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
var r16g1Names = [4]string{"BC", "DE", "HL", "SP"}
var r16g2Names = [4]string{"BC", "DE", "HL", "AF"}
var ccNames = [4]string{"NZ", "Z", "NC", "C"}

func init() {
	buildPrimaryTable()
	buildCBTable()
}

func buildPrimaryTable() {
	for i := range primaryTable {
		primaryTable[i] = Instruction{"??", func(c *CPU) uint8 { return 4 }}
	}

	// 0x40-0x7F: LD r,r' (0x76 is HALT, overridden below)
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			op := 0x40 + dst*8 + src
			d, s := dst, src
			cycles := uint8(4)
			if d == 6 || s == 6 {
				cycles = 8
			}
			primaryTable[op] = Instruction{"LD " + r8Names[d] + "," + r8Names[s], func(c *CPU) uint8 {
				c.setR8(d, c.getR8(s))
				return cycles
			}}
		}
	}

	// 0x80-0xBF: ALU A,r — op = 0x80 + group*8 + src
	aluOps := []func(c *CPU, v uint8){
		func(c *CPU, v uint8) { c.SetA(c.add8(v, false)) },
		func(c *CPU, v uint8) { c.SetA(c.add8(v, true)) },
		func(c *CPU, v uint8) { c.SetA(c.sub8(v, false)) },
		func(c *CPU, v uint8) { c.SetA(c.sub8(v, true)) },
		func(c *CPU, v uint8) { c.SetA(c.and8(v)) },
		func(c *CPU, v uint8) { c.SetA(c.xor8(v)) },
		func(c *CPU, v uint8) { c.SetA(c.or8(v)) },
		func(c *CPU, v uint8) { c.cp8(v) },
	}
	aluNames := []string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}
	for group := uint8(0); group < 8; group++ {
		for src := uint8(0); src < 8; src++ {
			op := 0x80 + group*8 + src
			g, s := group, src
			cycles := uint8(4)
			if s == 6 {
				cycles = 8
			}
			primaryTable[op] = Instruction{aluNames[g] + " A," + r8Names[s], func(c *CPU) uint8 {
				aluOps[g](c, c.getR8(s))
				return cycles
			}}
		}
	}

	// ALU A,d8: 0xC6 + group*8
	for group := uint8(0); group < 8; group++ {
		g := group
		primaryTable[0xC6+g*8] = Instruction{aluNames[g] + " A,d8", func(c *CPU) uint8 {
			aluOps[g](c, c.readPC())
			return 8
		}}
	}

	// INC r8 / DEC r8: 0x04+8n, 0x05+8n for n=0..7 mapped onto B,C,D,E,H,L,(HL),A
	incDecOrder := [8]uint8{regB, regC, regD, regE, regH, regL, 6, regA}
	for n, reg := range incDecOrder {
		r := reg
		cycles := uint8(4)
		if r == 6 {
			cycles = 12
		}
		incOp := uint8(0x04 + n*8)
		decOp := uint8(0x05 + n*8)
		primaryTable[incOp] = Instruction{"INC " + r8Names[r], func(c *CPU) uint8 {
			c.setR8(r, c.inc8(c.getR8(r)))
			return cycles
		}}
		primaryTable[decOp] = Instruction{"DEC " + r8Names[r], func(c *CPU) uint8 {
			c.setR8(r, c.dec8(c.getR8(r)))
			return cycles
		}}
	}

	// LD r,d8: 0x06+8n
	for n, reg := range incDecOrder {
		r := reg
		cycles := uint8(8)
		if r == 6 {
			cycles = 12
		}
		op := uint8(0x06 + n*8)
		primaryTable[op] = Instruction{"LD " + r8Names[r] + ",d8", func(c *CPU) uint8 {
			v := c.readPC()
			c.setR8(r, v)
			return cycles
		}}
	}

	// LD rr,d16 / INC rr / DEC rr / ADD HL,rr : 0x01/0x11/0x21/0x31 family
	for g := uint8(0); g < 4; g++ {
		group := g
		primaryTable[0x01+group*0x10] = Instruction{"LD " + r16g1Names[group] + ",d16", func(c *CPU) uint8 {
			c.setR16Group1(group, c.readOperand16())
			return 12
		}}
		primaryTable[0x03+group*0x10] = Instruction{"INC " + r16g1Names[group], func(c *CPU) uint8 {
			c.setR16Group1(group, c.getR16Group1(group)+1)
			return 8
		}}
		primaryTable[0x0B+group*0x10] = Instruction{"DEC " + r16g1Names[group], func(c *CPU) uint8 {
			c.setR16Group1(group, c.getR16Group1(group)-1)
			return 8
		}}
		primaryTable[0x09+group*0x10] = Instruction{"ADD HL," + r16g1Names[group], func(c *CPU) uint8 {
			c.addHL(c.getR16Group1(group))
			return 8
		}}
	}

	// PUSH/POP rr: 0xC1/0xD1/0xE1/0xF1 and 0xC5/0xD5/0xE5/0xF5
	for g := uint8(0); g < 4; g++ {
		group := g
		primaryTable[0xC1+group*0x10] = Instruction{"POP " + r16g2Names[group], func(c *CPU) uint8 {
			c.setR16Group2(group, c.pop16())
			return 12
		}}
		primaryTable[0xC5+group*0x10] = Instruction{"PUSH " + r16g2Names[group], func(c *CPU) uint8 {
			c.push16(c.getR16Group2(group))
			return 16
		}}
	}

	// conditional RET/JP/CALL: 0xC0+8n, 0xC2+8n, 0xC4+8n for n=0..3
	for g := uint8(0); g < 4; g++ {
		group := g
		primaryTable[0xC0+group*0x08] = Instruction{"RET " + ccNames[group], func(c *CPU) uint8 {
			if c.condition(group) {
				c.PC = c.pop16()
				return 20
			}
			return 8
		}}
		primaryTable[0xC2+group*0x08] = Instruction{"JP " + ccNames[group] + ",a16", func(c *CPU) uint8 {
			target := c.readOperand16()
			if c.condition(group) {
				c.PC = target
				return 16
			}
			return 12
		}}
		primaryTable[0xC4+group*0x08] = Instruction{"CALL " + ccNames[group] + ",a16", func(c *CPU) uint8 {
			target := c.readOperand16()
			if c.condition(group) {
				c.push16(c.PC)
				c.PC = target
				return 24
			}
			return 12
		}}
	}

	// JR cc,r8: 0x20,0x28,0x30,0x38
	jrCC := [4]uint8{0, 1, 2, 3}
	for i, cc := range jrCC {
		op := uint8(0x20 + i*8)
		condIdx := cc
		primaryTable[op] = Instruction{"JR " + ccNames[condIdx] + ",r8", func(c *CPU) uint8 {
			offset := int8(c.readPC())
			if c.condition(condIdx) {
				c.PC = uint16(int32(c.PC) + int32(offset))
				return 12
			}
			return 8
		}}
	}

	// RST n: 0xC7+8n
	for n := uint8(0); n < 8; n++ {
		vector := uint16(n) * 8
		op := uint8(0xC7 + n*8)
		primaryTable[op] = Instruction{"RST", func(c *CPU) uint8 {
			c.push16(c.PC)
			c.PC = vector
			return 16
		}}
	}

	assignIrregularPrimary()
}

func assignIrregularPrimary() {
	t := &primaryTable

	t[0x00] = Instruction{"NOP", func(c *CPU) uint8 { return 4 }}
	t[0x10] = Instruction{"STOP", func(c *CPU) uint8 {
		c.readPC() // STOP is a 2-byte opcode; the operand is conventionally 0x00
		c.stop()
		return 4
	}}
	t[0x76] = Instruction{"HALT", func(c *CPU) uint8 {
		c.halt()
		return 4
	}}
	t[0xF3] = Instruction{"DI", func(c *CPU) uint8 {
		c.irq.IME = false
		c.pendingEI = false
		return 4
	}}
	t[0xFB] = Instruction{"EI", func(c *CPU) uint8 {
		c.pendingEI = true
		return 4
	}}

	t[0x02] = Instruction{"LD (BC),A", func(c *CPU) uint8 { c.write8(c.BC(), c.A()); return 8 }}
	t[0x12] = Instruction{"LD (DE),A", func(c *CPU) uint8 { c.write8(c.DE(), c.A()); return 8 }}
	t[0x0A] = Instruction{"LD A,(BC)", func(c *CPU) uint8 { c.SetA(c.read8(c.BC())); return 8 }}
	t[0x1A] = Instruction{"LD A,(DE)", func(c *CPU) uint8 { c.SetA(c.read8(c.DE())); return 8 }}

	t[0x22] = Instruction{"LD (HL+),A", func(c *CPU) uint8 {
		c.write8(c.HL(), c.A())
		c.SetHL(c.HL() + 1)
		return 8
	}}
	t[0x32] = Instruction{"LD (HL-),A", func(c *CPU) uint8 {
		c.write8(c.HL(), c.A())
		c.SetHL(c.HL() - 1)
		return 8
	}}
	t[0x2A] = Instruction{"LD A,(HL+)", func(c *CPU) uint8 {
		c.SetA(c.read8(c.HL()))
		c.SetHL(c.HL() + 1)
		return 8
	}}
	t[0x3A] = Instruction{"LD A,(HL-)", func(c *CPU) uint8 {
		c.SetA(c.read8(c.HL()))
		c.SetHL(c.HL() - 1)
		return 8
	}}

	t[0x08] = Instruction{"LD (a16),SP", func(c *CPU) uint8 {
		addr := c.readOperand16()
		c.write8(addr, uint8(c.SP))
		c.write8(addr+1, uint8(c.SP>>8))
		return 20
	}}

	t[0x07] = Instruction{"RLCA", func(c *CPU) uint8 {
		c.SetA(c.rlc(c.A()))
		c.setFlag(flagZ, false)
		return 4
	}}
	t[0x0F] = Instruction{"RRCA", func(c *CPU) uint8 {
		c.SetA(c.rrc(c.A()))
		c.setFlag(flagZ, false)
		return 4
	}}
	t[0x17] = Instruction{"RLA", func(c *CPU) uint8 {
		c.SetA(c.rl(c.A()))
		c.setFlag(flagZ, false)
		return 4
	}}
	t[0x1F] = Instruction{"RRA", func(c *CPU) uint8 {
		c.SetA(c.rr(c.A()))
		c.setFlag(flagZ, false)
		return 4
	}}

	t[0x27] = Instruction{"DAA", func(c *CPU) uint8 { c.daa(); return 4 }}
	t[0x2F] = Instruction{"CPL", func(c *CPU) uint8 { c.cpl(); return 4 }}
	t[0x37] = Instruction{"SCF", func(c *CPU) uint8 { c.scf(); return 4 }}
	t[0x3F] = Instruction{"CCF", func(c *CPU) uint8 { c.ccf(); return 4 }}

	t[0x18] = Instruction{"JR r8", func(c *CPU) uint8 {
		offset := int8(c.readPC())
		c.PC = uint16(int32(c.PC) + int32(offset))
		return 12
	}}
	t[0xC3] = Instruction{"JP a16", func(c *CPU) uint8 {
		c.PC = c.readOperand16()
		return 16
	}}
	t[0xE9] = Instruction{"JP HL", func(c *CPU) uint8 {
		c.PC = c.HL()
		return 4
	}}
	t[0xCD] = Instruction{"CALL a16", func(c *CPU) uint8 {
		target := c.readOperand16()
		c.push16(c.PC)
		c.PC = target
		return 24
	}}
	t[0xC9] = Instruction{"RET", func(c *CPU) uint8 {
		c.PC = c.pop16()
		return 16
	}}
	t[0xD9] = Instruction{"RETI", func(c *CPU) uint8 {
		c.PC = c.pop16()
		c.irq.IME = true
		return 16
	}}

	t[0xE0] = Instruction{"LDH (a8),A", func(c *CPU) uint8 {
		addr := 0xFF00 | uint16(c.readPC())
		c.write8(addr, c.A())
		return 12
	}}
	t[0xF0] = Instruction{"LDH A,(a8)", func(c *CPU) uint8 {
		addr := 0xFF00 | uint16(c.readPC())
		c.SetA(c.read8(addr))
		return 12
	}}
	t[0xE2] = Instruction{"LD (C),A", func(c *CPU) uint8 {
		c.write8(0xFF00|uint16(c.C()), c.A())
		return 8
	}}
	t[0xF2] = Instruction{"LD A,(C)", func(c *CPU) uint8 {
		c.SetA(c.read8(0xFF00 | uint16(c.C())))
		return 8
	}}
	t[0xEA] = Instruction{"LD (a16),A", func(c *CPU) uint8 {
		addr := c.readOperand16()
		c.write8(addr, c.A())
		return 16
	}}
	t[0xFA] = Instruction{"LD A,(a16)", func(c *CPU) uint8 {
		addr := c.readOperand16()
		c.SetA(c.read8(addr))
		return 16
	}}

	t[0xE8] = Instruction{"ADD SP,r8", func(c *CPU) uint8 {
		e := int8(c.readPC())
		c.SP = c.addSPSigned(e)
		return 16
	}}
	t[0xF8] = Instruction{"LD HL,SP+r8", func(c *CPU) uint8 {
		e := int8(c.readPC())
		c.SetHL(c.addSPSigned(e))
		return 12
	}}
	t[0xF9] = Instruction{"LD SP,HL", func(c *CPU) uint8 {
		c.SP = c.HL()
		return 8
	}}

	t[0xCB] = Instruction{"PREFIX CB", func(c *CPU) uint8 { return 4 }} // unreachable: dispatch intercepts 0xCB directly

	for _, op := range []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD} {
		code := op
		t[op] = Instruction{"ILLEGAL", func(c *CPU) uint8 {
			logrus.Warnf("cpu: illegal opcode 0x%02X at 0x%04X, treated as NOP", code, c.PC-1)
			return 4
		}}
	}
}
