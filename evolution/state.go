package evolution

import "fmt"

// State is the phase an Engine is in.
type State int

// States in the order an iteration visits them.
const (
	Idle State = iota
	InitializingIteration
	ComputingSpeed
	ComputingTimeStep
	ApplyingUpdate
	Reinitializing
	Done
)

var stateNames = [...]string{
	Idle:                  "idle",
	InitializingIteration: "initializing",
	ComputingSpeed:        "computing-speed",
	ComputingTimeStep:     "computing-dt",
	ApplyingUpdate:        "applying-update",
	Reinitializing:        "reinitializing",
	Done:                  "done",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}

	return fmt.Sprintf("State(%d)", int(s))
}
