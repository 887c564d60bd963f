package cpu

import (
	"errors"

	"github.com/ezrec/elfcode/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted             = errors.New(f("halted"))
	ErrIpRegisterInvalid  = errors.New(f("ip register invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrRegistersEmpty     = errors.New(f("register bank empty"))
	ErrProgramMissing     = errors.New(f("program missing"))
	ErrHalterMissing      = errors.New(f("halter missing"))
	ErrWatchOpcodeMissing = errors.New(f("watched opcode not in program"))
	ErrTickLimit          = errors.New(f("tick limit reached"))

	// Instruction decode errors
	ErrOpcodeInvalid = errors.New(f("opcode invalid"))
	ErrOperandA      = errors.New(f("operand a"))
	ErrOperandB      = errors.New(f("operand b"))
	ErrOperandC      = errors.New(f("operand c"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrIpDirective     = errors.New(f("#ip directive invalid"))
	ErrIpDuplicate     = errors.New(f("#ip directive duplicated"))
	ErrIpLate          = errors.New(f("#ip directive after first instruction"))
	ErrOperandCount    = errors.New(f("expected three operands"))
)

// ErrInstruction decorates an execution failure with the failing instruction.
type ErrInstruction Instruction

func (ei ErrInstruction) Error() string {
	return f("bad instruction '%v'", Instruction(ei).String())
}

func (ei ErrInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrInstruction)
	return
}

// ErrMnemonic is an unknown opcode mnemonic, with the closest known
// mnemonic when one is near enough to be a likely typo.
type ErrMnemonic struct {
	Word    string
	Suggest string
}

func (err ErrMnemonic) Error() string {
	if len(err.Suggest) == 0 {
		return f("unknown mnemonic '%v'", err.Word)
	}
	return f("unknown mnemonic '%v', did you mean '%v'?", err.Word, err.Suggest)
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
