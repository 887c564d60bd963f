// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/elfcode/cpu"
	"github.com/ezrec/elfcode/internal"
)

const (
	DEFAULT_REGISTERS = 6 // Register bank size of the #ip programs.
)

var _emulator_defines = map[string]string{
	"REGISTERS": fmt.Sprintf("%v", DEFAULT_REGISTERS),
}

// Emulator state. Cpu + program + run policy.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the Cpu simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Config Config // Run configuration.
}

// NewEmulator creates a new emulator.
func NewEmulator(cfg Config) (emu *Emulator) {
	emu = &Emulator{
		Verbose: cfg.Verbose,
		Program: &cpu.Program{},
		Config:  cfg,
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	defines := maps.Clone(_emulator_defines)
	if emu.Config.Registers > 0 {
		defines["REGISTERS"] = fmt.Sprintf("%v", emu.Config.Registers)
	}

	return internal.IterSeq2Concat(maps.All(defines), cpu.Defines())
}

// Load sets the program to run, and resets the emulator.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	emu.Program = prog
	return emu.Reset()
}

// Registers returns the register bank size used for the loaded program.
func (emu *Emulator) Registers() int {
	return max(emu.Config.Registers, emu.Program.RegisterCount())
}

// Reset the emulator state.
// - Sizes a zeroed register bank for the program.
// - Seeds r0.
// - Resets the Cpu.
func (emu *Emulator) Reset() (err error) {
	if emu.Program == nil {
		err = ErrProgramMissing
		return
	}

	regs := cpu.NewRegisters(emu.Registers())
	if len(regs) == 0 {
		err = ErrRegisterCount
		return
	}
	regs[0] = emu.Config.Seed

	if emu.Verbose {
		log.Printf("emulator: reset %d registers, seed %d", len(regs), emu.Config.Seed)
	}

	emu.Cpu, err = cpu.NewCpu(emu.Program, regs)
	if err != nil {
		return
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.MaxTicks = emu.Config.MaxTicks

	return
}

// LineNo returns the current line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	return emu.Program.Line(emu.Cpu.Pc)
}

// runtime wraps err with the current program location.
func (emu *Emulator) runtime(lineno, pc int, err error) error {
	if err == nil {
		return nil
	}
	return &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Cpu == nil {
		err = ErrProgramMissing
		return
	}

	if emu.Cpu.State() == cpu.STATE_HALTED {
		done = true
		return
	}

	lineno, pc := emu.LineNo(), emu.Cpu.Pc

	err = emu.runtime(lineno, pc, emu.Cpu.Step())
	if err != nil {
		return
	}

	done = emu.Cpu.State() == cpu.STATE_HALTED
	return
}

// Run ticks the emulator until the program halts, returning the final
// registers. A positive MaxTicks bounds the number of instructions executed.
func (emu *Emulator) Run() (regs cpu.Registers, err error) {
	if emu.Cpu == nil {
		err = ErrProgramMissing
		return
	}

	for done := false; !done; {
		if emu.Config.MaxTicks > 0 && emu.Cpu.Ticks >= emu.Config.MaxTicks {
			err = emu.runtime(emu.LineNo(), emu.Cpu.Pc, ErrTickLimit)
			return
		}

		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: halted after %d ticks", emu.Cpu.Ticks)
	}

	regs = emu.Cpu.Register.Clone()
	return
}

// Watch runs the program under the configured watch. A positive MaxTicks
// bounds the run as it does for Run.
func (emu *Emulator) Watch() (obs cpu.Observation, err error) {
	if emu.Cpu == nil {
		err = ErrProgramMissing
		return
	}

	if !emu.Config.Watch.Enabled() {
		err = ErrWatchDisabled
		return
	}

	watch, err := emu.Config.Watch.Watch()
	if err != nil {
		return
	}

	halter, err := emu.Config.Watch.Halter()
	if err != nil {
		return
	}

	pc, _ := emu.Program.Index(watch.Opcode)
	lineno := emu.Program.Line(pc)

	obs, err = emu.Cpu.RunUntil(watch, halter)
	if err != nil {
		err = emu.runtime(emu.LineNo(), emu.Cpu.Pc, err)
		return
	}

	if emu.Verbose {
		log.Printf("emulator: watch %v r%d at line %d: fired=%v value=%d after %d observations",
			watch.Opcode, watch.Register, lineno, obs.Fired, obs.Value, len(obs.Trace))
	}

	return
}
