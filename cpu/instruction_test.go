package cpu

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecute(t *testing.T) {
	assert := assert.New(t)

	before := Registers{3, 2, 1, 1}

	table := [](struct {
		inst     Instruction
		expected int
	}){
		{Instruction{OP_ADDR, 0, 1, 3}, 5},
		{Instruction{OP_ADDI, 0, 7, 3}, 10},
		{Instruction{OP_MULR, 0, 1, 3}, 6},
		{Instruction{OP_MULI, 0, -4, 3}, -12},
		{Instruction{OP_BANR, 0, 1, 3}, 2},
		{Instruction{OP_BANI, 0, 6, 3}, 2},
		{Instruction{OP_BORR, 1, 2, 3}, 3},
		{Instruction{OP_BORI, 1, 4, 3}, 6},
		{Instruction{OP_SETR, 0, 99, 3}, 3},
		{Instruction{OP_SETI, 42, 99, 3}, 42},
		{Instruction{OP_GTIR, 4, 0, 3}, 1},
		{Instruction{OP_GTIR, 3, 0, 3}, 0},
		{Instruction{OP_GTRI, 0, 2, 3}, 1},
		{Instruction{OP_GTRI, 0, 3, 3}, 0},
		{Instruction{OP_GTRR, 0, 1, 3}, 1},
		{Instruction{OP_GTRR, 1, 0, 3}, 0},
		{Instruction{OP_EQIR, 2, 1, 3}, 1},
		{Instruction{OP_EQIR, 3, 1, 3}, 0},
		{Instruction{OP_EQRI, 0, 3, 3}, 1},
		{Instruction{OP_EQRI, 0, 4, 3}, 0},
		{Instruction{OP_EQRR, 2, 3, 0}, 1},
		{Instruction{OP_EQRR, 0, 1, 3}, 0},
	}

	for _, entry := range table {
		after, err := Execute(entry.inst, before)
		assert.NoError(err, entry.inst.String())
		if err != nil {
			continue
		}

		assert.Equal(entry.expected, after[entry.inst.C], entry.inst.String())
		for n := range before {
			if n == entry.inst.C {
				continue
			}
			assert.Equal(before[n], after[n], entry.inst.String())
		}
	}

	// Input bank untouched.
	assert.Equal(Registers{3, 2, 1, 1}, before)
}

func TestExecute_Sample(t *testing.T) {
	assert := assert.New(t)

	// Before: [3, 2, 1, 1], 2 1 2 -> After: [3, 2, 2, 1]
	// behaves like mulr, addi and seti.
	before := Registers{3, 2, 1, 1}
	expected := Registers{3, 2, 2, 1}

	var matches []Opcode
	for _, op := range Opcodes() {
		after, err := Execute(Instruction{op, 2, 1, 2}, before)
		if err != nil {
			continue
		}
		if slices.Equal(expected, after) {
			matches = append(matches, op)
		}
	}

	assert.Equal([]Opcode{OP_ADDI, OP_MULR, OP_SETI}, matches)
}

func TestExecute_RegisterInvalid(t *testing.T) {
	assert := assert.New(t)

	regs := Registers{1, 2, 3, 4}

	table := [](struct {
		inst    Instruction
		operand error
	}){
		{Instruction{OP_ADDR, 4, 0, 0}, ErrOperandA},
		{Instruction{OP_ADDR, -1, 0, 0}, ErrOperandA},
		{Instruction{OP_ADDR, 0, 4, 0}, ErrOperandB},
		{Instruction{OP_ADDI, 0, 1, 4}, ErrOperandC},
		{Instruction{OP_GTIR, 0, 9, 0}, ErrOperandB},
		{Instruction{OP_SETI, 0, 0, -1}, ErrOperandC},
	}

	for _, entry := range table {
		after, err := Execute(entry.inst, regs)
		assert.Nil(after, entry.inst.String())
		assert.ErrorIs(err, ErrRegisterInvalid, entry.inst.String())
		assert.ErrorIs(err, entry.operand, entry.inst.String())
		assert.True(errors.Is(err, ErrInstruction{}), entry.inst.String())
	}

	// Immediate and ignored operands are never treated as registers.
	for _, inst := range []Instruction{
		{OP_ADDI, 0, 1000, 1},
		{OP_SETI, -50, -7, 1},
		{OP_SETR, 2, 1000, 1},
		{OP_GTIR, 1000, 0, 1},
		{OP_EQRI, 0, -1000, 1},
	} {
		_, err := Execute(inst, regs)
		assert.NoError(err, inst.String())
	}
}

func TestExecute_OpcodeInvalid(t *testing.T) {
	assert := assert.New(t)

	_, err := Execute(Instruction{Opcode(16), 0, 0, 0}, Registers{0})
	assert.ErrorIs(err, ErrOpcodeInvalid)
}

func TestInstruction_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("addr 1 2 3", Instruction{OP_ADDR, 1, 2, 3}.String())
	assert.Equal("seti -5 0 4", Instruction{OP_SETI, -5, 0, 4}.String())
	assert.Equal("eqrr 4 0 2", Instruction{OP_EQRR, 4, 0, 2}.String())
}

func TestOpcode(t *testing.T) {
	assert := assert.New(t)

	ops := Opcodes()
	assert.Equal(OPCODE_COUNT, len(ops))

	for _, op := range ops {
		assert.True(op.Valid())
		assert.Len(op.String(), 4)

		parsed, ok := ParseOpcode(op.String())
		assert.True(ok, op.String())
		assert.Equal(op, parsed)

		a, _ := op.Modes()
		assert.NotEqual(MODE_NONE, a, op.String())
	}

	_, ok := ParseOpcode("nope")
	assert.False(ok)

	assert.False(Opcode(-1).Valid())
	assert.Equal("Opcode(16)", Opcode(16).String())

	a, b := OP_SETI.Modes()
	assert.Equal(MODE_IMM, a)
	assert.Equal(MODE_NONE, b)

	a, b = OP_GTIR.Modes()
	assert.Equal(MODE_IMM, a)
	assert.Equal(MODE_REG, b)

	assert.True(OP_EQRR.Compare())
	assert.True(OP_GTIR.Compare())
	assert.False(OP_SETI.Compare())
}
