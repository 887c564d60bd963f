// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// Program is an instruction listing with an optional instruction pointer
// register binding.
type Program struct {
	IpBound      bool          // Set if IpRegister mirrors the program counter.
	IpRegister   int           // Register bound to the program counter.
	Instructions []Instruction // Instruction listing, indexed by program counter.
	LineNo       []int         // Source line of each instruction, if assembled.
}

// Bind binds register reg to the program counter.
// Negative registers are rejected with ErrIpRegisterInvalid.
func (prog *Program) Bind(reg int) (err error) {
	if reg < 0 {
		err = ErrIpRegisterInvalid
		return
	}

	prog.IpBound = true
	prog.IpRegister = reg
	return
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.Instructions)
}

// Index returns the program counter of the first instruction using op.
func (prog *Program) Index(op Opcode) (pc int, ok bool) {
	for n, inst := range prog.Instructions {
		if inst.Op == op {
			return n, true
		}
	}

	return -1, false
}

// Line returns the source line of the instruction at pc, or 0 if unknown.
func (prog *Program) Line(pc int) int {
	if pc < 0 || pc >= len(prog.LineNo) {
		return 0
	}
	return prog.LineNo[pc]
}

// RegisterCount returns the smallest register bank able to run the program:
// one past the highest register index referenced by any operand or by the
// instruction pointer binding.
func (prog *Program) RegisterCount() (count int) {
	use := func(index int) {
		if index+1 > count {
			count = index + 1
		}
	}

	if prog.IpBound {
		use(prog.IpRegister)
	}

	for _, inst := range prog.Instructions {
		mode_a, mode_b := inst.Op.Modes()
		if mode_a == MODE_REG {
			use(inst.A)
		}
		if mode_b == MODE_REG {
			use(inst.B)
		}
		use(inst.C)
	}

	return
}

// All iterates over the program counter and instruction of the listing.
func (prog *Program) All() iter.Seq2[int, Instruction] {
	return func(yield func(pc int, inst Instruction) bool) {
		for pc, inst := range prog.Instructions {
			if !yield(pc, inst) {
				return
			}
		}
	}
}

// WriteTo writes the program in assembler syntax.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	var count int

	if prog.IpBound {
		if prog.IpRegister < 0 {
			err = ErrIpRegisterInvalid
			return
		}
		count, err = fmt.Fprintf(w, "#ip %d\n", prog.IpRegister)
		n += int64(count)
		if err != nil {
			return
		}
	}

	for _, inst := range prog.All() {
		count, err = fmt.Fprintln(w, inst.String())
		n += int64(count)
		if err != nil {
			return
		}
	}

	return
}

// String returns the program in assembler syntax.
func (prog *Program) String() string {
	var sb strings.Builder
	_, _ = prog.WriteTo(&sb)
	return sb.String()
}
