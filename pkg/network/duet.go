package network

import (
	"fmt"

	"github.com/chazu/vcpu/pkg/machine"
)

// DuetResult reports how a duet ended.
type DuetResult struct {
	SentA, SentB int // Values each side sent to the other
	Deadlock     bool // Both sides were left waiting for input
	Rounds       int
}

// Duet runs a and b alternately, feeding each one's output to the other's
// input. It stops when both have halted, or when neither can make progress:
// each side is either halted or suspended with nothing left to read. Values
// sent to a side that has already halted are never read and do not count as
// pending. A deadlock is a normal outcome and is reported in the result, not
// as an error.
func Duet(a, b Process) (DuetResult, error) {
	var res DuetResult
	for {
		res.Rounds++

		sa, err := a.Exec()
		if err != nil {
			return res, fmt.Errorf("network: duet a: %w", err)
		}
		na := transfer(a, b)
		res.SentA += na

		sb, err := b.Exec()
		if err != nil {
			return res, fmt.Errorf("network: duet b: %w", err)
		}
		nb := transfer(b, a)
		res.SentB += nb

		if sa == machine.Halted && sb == machine.Halted {
			return res, nil
		}
		idleA := sa == machine.Halted || a.IO().PendingInput() == 0
		idleB := sb == machine.Halted || b.IO().PendingInput() == 0
		if nb == 0 && idleA && idleB {
			res.Deadlock = sa != machine.Halted || sb != machine.Halted
			return res, nil
		}
	}
}
