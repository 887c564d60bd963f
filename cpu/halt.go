package cpu

import (
	"slices"
)

//go:generate go tool mockgen -write_package_comment=false -package=$GOPACKAGE -destination=mock_halter_test.go github.com/ezrec/elfcode/cpu Halter

// Watch selects where RunUntil observes the machine: just before the first
// instruction using Opcode executes, the value of Register is observed.
type Watch struct {
	Opcode   Opcode
	Register int
}

// Halter decides whether an observed value stops RunUntil.
// The history holds every value observed before this one, oldest first.
type Halter interface {
	Halt(value int, history []int) bool
}

// HaltFunc adapts a function to the Halter interface.
type HaltFunc func(value int, history []int) bool

func (hf HaltFunc) Halt(value int, history []int) bool {
	return hf(value, history)
}

// FirstObserved halts on the very first observation.
func FirstObserved() Halter {
	return HaltFunc(func(value int, history []int) bool {
		return true
	})
}

// CycleTracker halts when an observed value repeats. Deterministic programs
// repeat their whole observation sequence from that point on.
type CycleTracker struct {
	seen map[int]int
}

var _ Halter = (*CycleTracker)(nil)

// NewCycleTracker creates an empty cycle tracker.
func NewCycleTracker() *CycleTracker {
	return &CycleTracker{
		seen: make(map[int]int),
	}
}

// Halt records the value, returning true if it was already recorded.
func (ct *CycleTracker) Halt(value int, history []int) bool {
	if ct.seen == nil {
		ct.seen = make(map[int]int)
	}

	_, ok := ct.seen[value]
	if ok {
		return true
	}

	ct.seen[value] = len(history)
	return false
}

// Seen returns the observation index at which value was first recorded.
func (ct *CycleTracker) Seen(value int) (index int, ok bool) {
	index, ok = ct.seen[value]
	return
}

// Reset forgets all recorded values.
func (ct *CycleTracker) Reset() {
	clear(ct.seen)
}

// Observation is the result of RunUntil.
type Observation struct {
	Fired     bool      // Set if the halter stopped the run.
	Value     int       // Observed value that stopped the run.
	Trace     []int     // Values observed before Value, oldest first.
	Registers Registers // Registers at the point the run stopped.
	Ticks     int       // Instructions executed.
}

// First returns the first value ever observed.
func (obs Observation) First() (value int, ok bool) {
	switch {
	case len(obs.Trace) > 0:
		return obs.Trace[0], true
	case obs.Fired:
		return obs.Value, true
	}
	return
}

// Last returns the last value observed before the one that stopped the run.
// When the halter fired on the very first observation, that value is returned.
func (obs Observation) Last() (value int, ok bool) {
	switch {
	case len(obs.Trace) > 0:
		return obs.Trace[len(obs.Trace)-1], true
	case obs.Fired:
		return obs.Value, true
	}
	return
}

// CycleStart returns the index in Trace where Value was first observed,
// or -1 if the run did not stop on a repeated value.
func (obs Observation) CycleStart() int {
	if !obs.Fired {
		return -1
	}
	return slices.Index(obs.Trace, obs.Value)
}
