package cpu

// register indices into Registers.b, matching the 3-bit encoding the
// instruction set uses for B,C,D,E,H,L,(HL),A.
const (
	regB = iota
	regC
	regD
	regE
	regH
	regL
	_ // (HL) has no backing register; callers special-case index 6
	regA
)

// Registers holds the eight 8-bit registers as a flat array rather than the
// pointer-aliased A/F/B/C/.../BC/DE/HL pairs the teacher's Registers type
// uses: a flat array makes the 16-bit pair a plain computed view instead of
// state that two representations could disagree on.
type Registers struct {
	b [8]uint8 // index by regB..regA; index 6 (unused) kept so offsets line up
	f uint8    // flags register, low nibble always reads zero
}

func (r *Registers) A() uint8      { return r.b[regA] }
func (r *Registers) SetA(v uint8)  { r.b[regA] = v }
func (r *Registers) B() uint8      { return r.b[regB] }
func (r *Registers) SetB(v uint8)  { r.b[regB] = v }
func (r *Registers) C() uint8      { return r.b[regC] }
func (r *Registers) SetC(v uint8)  { r.b[regC] = v }
func (r *Registers) D() uint8      { return r.b[regD] }
func (r *Registers) SetD(v uint8)  { r.b[regD] = v }
func (r *Registers) E() uint8      { return r.b[regE] }
func (r *Registers) SetE(v uint8)  { r.b[regE] = v }
func (r *Registers) H() uint8      { return r.b[regH] }
func (r *Registers) SetH(v uint8)  { r.b[regH] = v }
func (r *Registers) L() uint8      { return r.b[regL] }
func (r *Registers) SetL(v uint8)  { r.b[regL] = v }
func (r *Registers) F() uint8      { return r.f }
func (r *Registers) SetF(v uint8)  { r.f = v & 0xF0 }

func (r *Registers) AF() uint16     { return uint16(r.A())<<8 | uint16(r.F()) }
func (r *Registers) SetAF(v uint16) { r.SetA(uint8(v >> 8)); r.SetF(uint8(v)) }
func (r *Registers) BC() uint16     { return uint16(r.B())<<8 | uint16(r.C()) }
func (r *Registers) SetBC(v uint16) { r.SetB(uint8(v >> 8)); r.SetC(uint8(v)) }
func (r *Registers) DE() uint16     { return uint16(r.D())<<8 | uint16(r.E()) }
func (r *Registers) SetDE(v uint16) { r.SetD(uint8(v >> 8)); r.SetE(uint8(v)) }
func (r *Registers) HL() uint16     { return uint16(r.H())<<8 | uint16(r.L()) }
func (r *Registers) SetHL(v uint16) { r.SetH(uint8(v >> 8)); r.SetL(uint8(v)) }
