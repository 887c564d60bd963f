// Package cpu implements the register machine and assembler for elfcode
// programs.
//
// The machine consists of a program counter (PC), a bank of signed integer
// registers sized when the program is loaded, and a fixed set of sixteen
// three-operand instructions. A program may bind one register to the PC;
// that register receives the PC before every instruction and is read back
// afterwards, so any instruction writing it performs a jump.
//
// Long-running programs can be stopped early with RunUntil, which reports
// the values seen in a watched register at a watched instruction to a
// Halter strategy, for example one that stops at the first repeated value.
//
// The assembler reads the textual program format: an optional `#ip N`
// directive followed by one `mnemonic A B C` instruction per line.
package cpu
