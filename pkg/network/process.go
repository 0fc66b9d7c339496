package network

import (
	"errors"

	"github.com/tliron/commonlog"

	"github.com/chazu/vcpu/pkg/machine"
)

var log = commonlog.GetLogger("vcpu.network")

var (
	// ErrRoundLimit is returned when a scheduler runs out of rounds before
	// reaching an answer.
	ErrRoundLimit = errors.New("network: round limit reached")

	// ErrDeadlock is returned when every process is waiting for input that
	// nothing will produce.
	ErrDeadlock = errors.New("network: deadlock")

	// ErrNoOutput is returned when a chain finished without a signal.
	ErrNoOutput = errors.New("network: no output")
)

// Process is a machine that can be driven by a scheduler.
// *intcode.Computer and *regmachine.Machine both implement it.
type Process interface {
	// Exec runs until the process halts or needs input.
	Exec() (machine.State, error)
	// IO returns the process's input and output queues.
	IO() *machine.IO
}

// Cloner is a Process that can copy itself. P is the concrete type, so
// Clone keeps the result usable as a P.
type Cloner[P any] interface {
	Process
	Clone() P
}

// Clones returns n independent copies of proto.
func Clones[P Cloner[P]](proto P, n int) []Process {
	procs := make([]Process, n)
	for i := range procs {
		procs[i] = proto.Clone()
	}
	return procs
}

// transfer moves all pending output of from into the input of to and
// returns how many values moved.
func transfer(from, to Process) int {
	vals := from.IO().DrainOutput()
	to.IO().PushInput(vals...)
	return len(vals)
}
