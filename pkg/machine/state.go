package machine

import "fmt"

// State is the execution state of a machine.
type State uint8

const (
	Running   State = iota // Can execute the next instruction
	Suspended              // Waiting on input; pc still points at the input instruction
	Halted                 // Terminal
)

var stateNames = [...]string{
	Running:   "RUNNING",
	Suspended: "SUSPENDED",
	Halted:    "HALTED",
}

// String returns the human-readable name of a state.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("STATE(%d)", uint8(s))
}

// Done reports whether no further progress is possible without outside help,
// i.e. the machine is halted or waiting for input.
func (s State) Done() bool {
	return s == Halted || s == Suspended
}
