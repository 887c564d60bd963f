// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
)

var _cpu_defines = map[string]string{
	"OPCODES": fmt.Sprintf("%d", OPCODE_COUNT),
}

// Cpu is the execution context for a single program run.
//
// The register bank is owned exclusively by the Cpu; callers receive
// copies from Run and RunUntil.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Program  *Program  // Program being executed.
	Register Registers // Register bank.
	Pc       int       // Program counter.
	Ticks    int       // Instructions executed since reset.
	MaxTicks int       // If positive, Run and RunUntil stop with ErrTickLimit at this many ticks.
}

// NewCpu creates a Cpu ready to run prog from a copy of regs.
func NewCpu(prog *Program, regs Registers) (cpu *Cpu, err error) {
	cpu = &Cpu{
		Program: prog,
	}

	err = cpu.Reset(regs)
	if err != nil {
		cpu = nil
		return
	}

	return
}

// Defines returns an iterator over the cpu defines.
func Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return Defines()
}

// Reset the Cpu state.
// - Replaces the register bank with a copy of regs.
// - Zeros the program counter and tick counter.
// - Validates the instruction pointer binding against the bank size.
func (cpu *Cpu) Reset(regs Registers) (err error) {
	if cpu.Program == nil {
		err = ErrProgramMissing
		return
	}

	if len(regs) == 0 {
		err = ErrRegistersEmpty
		return
	}

	if cpu.Program.IpBound && !regs.Valid(cpu.Program.IpRegister) {
		err = errors.Join(ErrIpRegisterInvalid, ErrRegisterInvalid)
		return
	}

	cpu.Register = regs.Clone()
	cpu.Pc = 0
	cpu.Ticks = 0

	if cpu.Verbose {
		log.Printf("cpu: reset %v", cpu.Register)
	}

	return
}

// State returns STATE_HALTED once the program counter has left the program.
func (cpu *Cpu) State() State {
	if cpu.Pc < 0 || cpu.Pc >= cpu.Program.Len() {
		return STATE_HALTED
	}
	return STATE_RUNNING
}

// String returns the current Cpu state as a string.
func (cpu *Cpu) String() string {
	return fmt.Sprintf("pc=%d ticks=%d state=%v regs=%v", cpu.Pc, cpu.Ticks, cpu.State(), cpu.Register)
}

// Step executes a single instruction cycle:
//   - If an instruction pointer register is bound, it receives the PC.
//   - The instruction at the PC is executed.
//   - If bound, the PC is read back from the instruction pointer register.
//   - The PC is incremented.
//
// Returns ErrHalted if the program counter is already outside the program.
func (cpu *Cpu) Step() (err error) {
	if cpu.State() == STATE_HALTED {
		err = ErrHalted
		return
	}

	prog := cpu.Program
	inst := prog.Instructions[cpu.Pc]

	err = inst.Check(len(cpu.Register))
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%03d: %v %v", cpu.Pc, inst, cpu.Register)
	}

	if prog.IpBound {
		cpu.Register[prog.IpRegister] = cpu.Pc
	}

	cpu.Register[inst.C] = inst.compute(cpu.Register)

	if prog.IpBound {
		cpu.Pc = cpu.Register[prog.IpRegister]
	}

	cpu.Pc++
	cpu.Ticks++

	return
}

// limit returns ErrTickLimit once the tick budget is spent.
func (cpu *Cpu) limit() error {
	if cpu.MaxTicks > 0 && cpu.Ticks >= cpu.MaxTicks {
		return ErrTickLimit
	}
	return nil
}

// Run steps the Cpu until the program counter leaves the program, and
// returns a copy of the final register bank. On error no registers are
// returned.
func (cpu *Cpu) Run() (regs Registers, err error) {
	for cpu.State() == STATE_RUNNING {
		err = cpu.limit()
		if err != nil {
			return
		}

		err = cpu.Step()
		if err != nil {
			return
		}
	}

	if cpu.Verbose {
		log.Printf("cpu: halted after %d ticks: %v", cpu.Ticks, cpu.Register)
	}

	regs = cpu.Register.Clone()
	return
}

// RunUntil steps the Cpu like Run, but each time the program counter
// reaches the watched instruction the watched register is passed to the
// halter before the instruction executes. The run stops when the halter
// returns true, or when the program halts on its own.
func (cpu *Cpu) RunUntil(watch Watch, halter Halter) (obs Observation, err error) {
	if halter == nil {
		err = ErrHalterMissing
		return
	}

	at, ok := cpu.Program.Index(watch.Opcode)
	if !ok {
		err = errors.Join(ErrWatchOpcodeMissing, fmt.Errorf("%v", watch.Opcode))
		return
	}

	if !cpu.Register.Valid(watch.Register) {
		err = errors.Join(ErrRegisterInvalid, fmt.Errorf("r%d", watch.Register))
		return
	}

	history := []int{}

	for cpu.State() == STATE_RUNNING {
		if cpu.Pc == at {
			value := cpu.Register[watch.Register]
			if halter.Halt(value, history[:len(history):len(history)]) {
				if cpu.Verbose {
					log.Printf("cpu: watch %v r%d fired on %d after %d observations", watch.Opcode, watch.Register, value, len(history))
				}
				obs = Observation{
					Fired:     true,
					Value:     value,
					Trace:     history,
					Registers: cpu.Register.Clone(),
					Ticks:     cpu.Ticks,
				}
				return
			}
			history = append(history, value)
		}

		err = cpu.limit()
		if err != nil {
			return
		}

		err = cpu.Step()
		if err != nil {
			return
		}
	}

	obs = Observation{
		Trace:     history,
		Registers: cpu.Register.Clone(),
		Ticks:     cpu.Ticks,
	}

	return
}

// Run executes prog from regs until it halts.
func Run(prog *Program, regs Registers) (final Registers, err error) {
	cpu, err := NewCpu(prog, regs)
	if err != nil {
		return
	}

	return cpu.Run()
}

// RunUntil executes prog from regs until the halter stops it at the watch,
// or the program halts.
func RunUntil(prog *Program, regs Registers, watch Watch, halter Halter) (obs Observation, err error) {
	cpu, err := NewCpu(prog, regs)
	if err != nil {
		return
	}

	return cpu.RunUntil(watch, halter)
}
