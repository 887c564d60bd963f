package cpu

// Opcode selects one of the sixteen machine operations.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_ADDR = Opcode(0)  // addr
	OP_ADDI = Opcode(1)  // addi
	OP_MULR = Opcode(2)  // mulr
	OP_MULI = Opcode(3)  // muli
	OP_BANR = Opcode(4)  // banr
	OP_BANI = Opcode(5)  // bani
	OP_BORR = Opcode(6)  // borr
	OP_BORI = Opcode(7)  // bori
	OP_SETR = Opcode(8)  // setr
	OP_SETI = Opcode(9)  // seti
	OP_GTIR = Opcode(10) // gtir
	OP_GTRI = Opcode(11) // gtri
	OP_GTRR = Opcode(12) // gtrr
	OP_EQIR = Opcode(13) // eqir
	OP_EQRI = Opcode(14) // eqri
	OP_EQRR = Opcode(15) // eqrr

	OPCODE_COUNT = 16
)

// Mode is the interpretation of an A or B operand.
type Mode int

const (
	MODE_NONE = Mode(0) // Operand is ignored.
	MODE_REG  = Mode(1) // Operand is a register index.
	MODE_IMM  = Mode(2) // Operand is a literal value.
)

var opcodeModes = [OPCODE_COUNT][2]Mode{
	OP_ADDR: {MODE_REG, MODE_REG},
	OP_ADDI: {MODE_REG, MODE_IMM},
	OP_MULR: {MODE_REG, MODE_REG},
	OP_MULI: {MODE_REG, MODE_IMM},
	OP_BANR: {MODE_REG, MODE_REG},
	OP_BANI: {MODE_REG, MODE_IMM},
	OP_BORR: {MODE_REG, MODE_REG},
	OP_BORI: {MODE_REG, MODE_IMM},
	OP_SETR: {MODE_REG, MODE_NONE},
	OP_SETI: {MODE_IMM, MODE_NONE},
	OP_GTIR: {MODE_IMM, MODE_REG},
	OP_GTRI: {MODE_REG, MODE_IMM},
	OP_GTRR: {MODE_REG, MODE_REG},
	OP_EQIR: {MODE_IMM, MODE_REG},
	OP_EQRI: {MODE_REG, MODE_IMM},
	OP_EQRR: {MODE_REG, MODE_REG},
}

// Valid returns true if the opcode is one of the sixteen machine operations.
func (op Opcode) Valid() bool {
	return op >= OP_ADDR && op <= OP_EQRR
}

// Modes returns how the A and B operands are interpreted.
// The C operand is always a destination register.
func (op Opcode) Modes() (a, b Mode) {
	if !op.Valid() {
		return
	}
	modes := opcodeModes[op]
	return modes[0], modes[1]
}

// Compare returns true for the greater-than and equality opcodes,
// which only ever write 0 or 1.
func (op Opcode) Compare() bool {
	return op >= OP_GTIR && op <= OP_EQRR
}

// Opcodes returns all of the opcodes, in encoding order.
func Opcodes() (ops []Opcode) {
	ops = make([]Opcode, 0, OPCODE_COUNT)
	for op := OP_ADDR; op <= OP_EQRR; op++ {
		ops = append(ops, op)
	}
	return
}

// ParseOpcode returns the opcode for a mnemonic.
func ParseOpcode(mnemonic string) (op Opcode, ok bool) {
	for _, op = range Opcodes() {
		if op.String() == mnemonic {
			ok = true
			return
		}
	}

	op = 0
	return
}
