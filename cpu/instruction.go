package cpu

import (
	"errors"
	"fmt"
)

// Instruction is a decoded machine instruction.
// C is always the destination register; the meaning of A and B depends
// on the opcode (see Opcode.Modes).
type Instruction struct {
	Op Opcode
	A  int
	B  int
	C  int
}

// String returns the assembly language representation of this instruction.
func (inst Instruction) String() string {
	return fmt.Sprintf("%v %d %d %d", inst.Op, inst.A, inst.B, inst.C)
}

// Check verifies that every register operand of the instruction is a valid
// index into a bank of count registers.
func (inst Instruction) Check(count int) (err error) {
	if !inst.Op.Valid() {
		return errors.Join(ErrInstruction(inst), ErrOpcodeInvalid)
	}

	valid := func(index int) bool { return index >= 0 && index < count }

	mode_a, mode_b := inst.Op.Modes()
	switch {
	case mode_a == MODE_REG && !valid(inst.A):
		err = errors.Join(ErrInstruction(inst), ErrOperandA, ErrRegisterInvalid)
	case mode_b == MODE_REG && !valid(inst.B):
		err = errors.Join(ErrInstruction(inst), ErrOperandB, ErrRegisterInvalid)
	case !valid(inst.C):
		err = errors.Join(ErrInstruction(inst), ErrOperandC, ErrRegisterInvalid)
	}

	return
}

// Execute performs the instruction against a register bank, returning a new
// bank that differs from the input at most in register C.
// The input bank is not modified.
func Execute(inst Instruction, regs Registers) (out Registers, err error) {
	err = inst.Check(len(regs))
	if err != nil {
		return
	}

	out = regs.Clone()
	out[inst.C] = inst.compute(out)

	return
}

// compute returns the value the instruction writes to register C.
// Operands must already have been checked.
func (inst Instruction) compute(regs Registers) (value int) {
	a, b := inst.A, inst.B

	switch inst.Op {
	case OP_ADDR:
		value = regs[a] + regs[b]
	case OP_ADDI:
		value = regs[a] + b
	case OP_MULR:
		value = regs[a] * regs[b]
	case OP_MULI:
		value = regs[a] * b
	case OP_BANR:
		value = regs[a] & regs[b]
	case OP_BANI:
		value = regs[a] & b
	case OP_BORR:
		value = regs[a] | regs[b]
	case OP_BORI:
		value = regs[a] | b
	case OP_SETR:
		value = regs[a]
	case OP_SETI:
		value = a
	case OP_GTIR:
		value = boolValue(a > regs[b])
	case OP_GTRI:
		value = boolValue(regs[a] > b)
	case OP_GTRR:
		value = boolValue(regs[a] > regs[b])
	case OP_EQIR:
		value = boolValue(a == regs[b])
	case OP_EQRI:
		value = boolValue(regs[a] == b)
	case OP_EQRR:
		value = boolValue(regs[a] == regs[b])
	default:
		panic("unknown opcode")
	}

	return
}

func boolValue(cond bool) int {
	if cond {
		return 1
	}
	return 0
}
