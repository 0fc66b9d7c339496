package intcode

import "github.com/chazu/vcpu/pkg/machine"

// Snapshot is the complete state of a Computer. The CBOR keys are stable so
// stored snapshots stay readable across versions.
type Snapshot struct {
	Memory       []int64       `cbor:"1,keyasint"`
	PC           int           `cbor:"2,keyasint"`
	RelativeBase int64         `cbor:"3,keyasint"`
	State        machine.State `cbor:"4,keyasint"`
	Input        []int64       `cbor:"5,keyasint,omitempty"`
	Output       []int64       `cbor:"6,keyasint,omitempty"`
	Steps        uint64        `cbor:"7,keyasint"`
}

// Snapshot captures the computer's state. The computer is not modified.
func (c *Computer) Snapshot() *Snapshot {
	return &Snapshot{
		Memory:       c.mem.Slice(),
		PC:           c.pc,
		RelativeBase: c.base,
		State:        c.state,
		Input:        c.io.Input(),
		Output:       c.io.Output(),
		Steps:        c.steps,
	}
}

// Restore creates a computer from a snapshot.
func Restore(s *Snapshot) *Computer {
	io := machine.NewIO(s.Input...)
	for _, v := range s.Output {
		io.PushOutput(v)
	}
	return &Computer{
		mem:   NewMemory(s.Memory),
		pc:    s.PC,
		base:  s.RelativeBase,
		state: s.State,
		io:    io,
		steps: s.Steps,
	}
}
