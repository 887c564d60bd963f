package emulator

import (
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/elfcode/cpu"
)

// Watch modes.
const (
	WATCH_FIRST = "first" // Stop at the first observation.
	WATCH_CYCLE = "cycle" // Stop when an observation repeats.
)

// WatchConfig selects the RunUntil observation point.
type WatchConfig struct {
	Opcode   string `toml:"opcode"`   // Mnemonic of the watched instruction.
	Register int    `toml:"register"` // Observed register.
	Mode     string `toml:"mode"`     // WATCH_FIRST or WATCH_CYCLE.
}

// Config is the emulator configuration.
type Config struct {
	Registers int         `toml:"registers"` // Minimum register bank size.
	Seed      int         `toml:"seed"`      // Initial value of r0.
	MaxTicks  int         `toml:"max_ticks"` // Tick budget for Run; 0 is unlimited.
	Verbose   bool        `toml:"verbose"`
	Watch     WatchConfig `toml:"watch"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		Registers: DEFAULT_REGISTERS,
		Watch: WatchConfig{
			Mode: WATCH_CYCLE,
		},
	}
}

// LoadConfig decodes a TOML configuration over the defaults.
func LoadConfig(input io.Reader) (cfg Config, err error) {
	cfg = DefaultConfig()

	_, err = toml.NewDecoder(input).Decode(&cfg)
	if err != nil {
		return
	}

	err = cfg.Validate()
	return
}

// Validate checks the configuration for consistency.
func (cfg *Config) Validate() (err error) {
	if cfg.Registers < 0 {
		return ErrRegisterCount
	}

	if cfg.MaxTicks < 0 {
		return ErrTickBudget
	}

	if cfg.Watch.Enabled() {
		_, err = cfg.Watch.Watch()
		if err != nil {
			return
		}
		_, err = cfg.Watch.Halter()
		if err != nil {
			return
		}
	}

	return
}

// Enabled returns true if a watch opcode is configured.
func (wc WatchConfig) Enabled() bool {
	return len(wc.Opcode) != 0
}

// Watch returns the cpu watch for the configuration.
func (wc WatchConfig) Watch() (watch cpu.Watch, err error) {
	op, ok := cpu.ParseOpcode(strings.ToLower(wc.Opcode))
	if !ok {
		err = ErrWatchOpcode
		return
	}

	watch = cpu.Watch{Opcode: op, Register: wc.Register}
	return
}

// Halter returns a new halt strategy for the configured mode.
func (wc WatchConfig) Halter() (halter cpu.Halter, err error) {
	switch wc.Mode {
	case WATCH_FIRST:
		halter = cpu.FirstObserved()
	case WATCH_CYCLE, "":
		halter = cpu.NewCycleTracker()
	default:
		err = ErrWatchMode
	}
	return
}
