package emulator

import (
	"errors"

	"github.com/ezrec/elfcode/cpu"
	"github.com/ezrec/elfcode/translate"
)

var f = translate.From

var (
	ErrTickLimit      = cpu.ErrTickLimit
	ErrTickBudget     = errors.New(f("tick budget invalid"))
	ErrWatchMode      = errors.New(f("watch mode invalid"))
	ErrWatchOpcode    = errors.New(f("watch opcode invalid"))
	ErrWatchDisabled  = errors.New(f("watch not configured"))
	ErrRegisterCount  = errors.New(f("register count invalid"))
	ErrProgramMissing = errors.New(f("no program loaded"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Pc     int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("pc %d %v", err.Pc, err.Err)
	}
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
