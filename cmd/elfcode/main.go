// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/ezrec/elfcode/cpu"
	"github.com/ezrec/elfcode/emulator"
	"github.com/ezrec/elfcode/translate"
)

func fatalf(format string, args ...any) {
	log.Printf(format, args...)
	atexit.Exit(1)
}

// parseWatch parses an `opcode:register[:mode]` watch specification.
func parseWatch(text string) (wc emulator.WatchConfig, err error) {
	parts := strings.Split(text, ":")
	if len(parts) < 2 || len(parts) > 3 {
		err = fmt.Errorf("watch %q: expected opcode:register[:mode]", text)
		return
	}

	wc.Opcode = parts[0]
	wc.Register, err = strconv.Atoi(parts[1])
	if err != nil {
		err = fmt.Errorf("watch %q: %w", text, err)
		return
	}

	if len(parts) == 3 {
		wc.Mode = parts[2]
	} else {
		wc.Mode = emulator.WATCH_CYCLE
	}

	return
}

func main() {
	var compile string
	var config string
	var seed int
	var ticks int
	var watch string
	var verbose bool

	flag.StringVar(&compile, "c", "", "elfcode program file to run")
	flag.StringVar(&config, "config", "", ".toml emulator configuration")
	flag.IntVar(&seed, "seed", 0, "Initial value of register 0")
	flag.IntVar(&ticks, "ticks", 0, "Maximum instructions to execute (0 is unlimited)")
	flag.StringVar(&watch, "watch", "", "Watch opcode:register[:first|cycle]")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) == 0 {
		fatalf("%v: no program given (-c)", os.Args[0])
	}

	cfg := emulator.DefaultConfig()
	if len(config) != 0 {
		inf, err := os.Open(config)
		if err != nil {
			fatalf("%v: %v", config, err)
		}
		atexit.Register(func() { inf.Close() })

		cfg, err = emulator.LoadConfig(inf)
		if err != nil {
			fatalf("%v: %v", config, err)
		}
	}

	// Command line flags override the configuration file.
	var err error
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "seed":
			cfg.Seed = seed
		case "ticks":
			cfg.MaxTicks = ticks
		case "v":
			cfg.Verbose = verbose
		case "watch":
			cfg.Watch, err = parseWatch(watch)
		}
	})
	if err != nil {
		fatalf("%v", err)
	}

	err = cfg.Validate()
	if err != nil {
		fatalf("%v", err)
	}

	emu := emulator.NewEmulator(cfg)

	inf, err := os.Open(compile)
	if err != nil {
		fatalf("%v: %v", compile, err)
	}
	atexit.Register(func() { inf.Close() })

	asm := &cpu.Assembler{Verbose: cfg.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		fatalf("%v: %v", compile, err)
	}

	err = emu.Load(prog)
	if err != nil {
		fatalf("%v: %v", compile, err)
	}

	p := translate.Printer()

	if !cfg.Watch.Enabled() {
		regs, err := emu.Run()
		if err != nil {
			fatalf("%v: %v", compile, err)
		}
		p.Printf("ticks: %d\n", emu.Ticks)
		p.Printf("registers: %v\n", regs)
		atexit.Exit(0)
	}

	obs, err := emu.Watch()
	if err != nil {
		fatalf("%v: %v", compile, err)
	}

	p.Printf("ticks: %d\n", obs.Ticks)
	if !obs.Fired {
		p.Printf("halted after %d observations\n", len(obs.Trace))
	} else {
		p.Printf("value: %d\n", obs.Value)
	}
	if first, ok := obs.First(); ok {
		p.Printf("first: %d\n", first)
	}
	if last, ok := obs.Last(); ok {
		p.Printf("last: %d\n", last)
	}
	if start := obs.CycleStart(); start >= 0 {
		p.Printf("cycle: %d values, starting at %d\n", len(obs.Trace)-start, start)
	}
	p.Printf("registers: %v\n", obs.Registers)

	atexit.Exit(0)
}
