package cpu

import (
	"fmt"
	"slices"
	"strings"
)

// Registers is a register bank. Its length is fixed when a program is
// loaded and never changes while the program runs.
type Registers []int

// NewRegisters creates a zeroed bank of count registers.
func NewRegisters(count int) Registers {
	return make(Registers, count)
}

// Clone returns an independent copy of the bank.
func (regs Registers) Clone() Registers {
	return slices.Clone(regs)
}

// Valid returns true if index names a register in the bank.
func (regs Registers) Valid(index int) bool {
	return index >= 0 && index < len(regs)
}

// Get returns the value of register index.
func (regs Registers) Get(index int) (value int, err error) {
	if !regs.Valid(index) {
		err = ErrRegisterInvalid
		return
	}

	value = regs[index]
	return
}

// Set updates register index in place.
func (regs Registers) Set(index int, value int) (err error) {
	if !regs.Valid(index) {
		err = ErrRegisterInvalid
		return
	}

	regs[index] = value
	return
}

// String returns the bank as `[r0 r1 ...]`.
func (regs Registers) String() string {
	words := make([]string, len(regs))
	for n, val := range regs {
		words[n] = fmt.Sprintf("%d", val)
	}
	return "[" + strings.Join(words, " ") + "]"
}
