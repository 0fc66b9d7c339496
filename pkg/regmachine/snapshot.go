package regmachine

import "github.com/chazu/vcpu/pkg/machine"

// Snapshot is the complete state of a Machine, including the program as
// modified by tgl.
type Snapshot struct {
	Program   []Instruction    `cbor:"1,keyasint"`
	PC        int              `cbor:"2,keyasint"`
	Registers map[string]int64 `cbor:"3,keyasint"`
	State     machine.State    `cbor:"4,keyasint"`
	Input     []int64          `cbor:"5,keyasint,omitempty"`
	Output    []int64          `cbor:"6,keyasint,omitempty"`
	Steps     uint64           `cbor:"7,keyasint"`
}

// Snapshot captures the machine's state. Per-opcode counters are not kept.
func (m *Machine) Snapshot() *Snapshot {
	return &Snapshot{
		Program:   m.Program(),
		PC:        m.pc,
		Registers: m.regs.Map(),
		State:     m.state,
		Input:     m.io.Input(),
		Output:    m.io.Output(),
		Steps:     m.steps,
	}
}

// Restore creates a machine from a snapshot.
func Restore(s *Snapshot) *Machine {
	m := New(s.Program)
	for name, v := range s.Registers {
		if len(name) == 1 {
			m.regs.Set(name[0], v)
		}
	}
	m.io.PushInput(s.Input...)
	for _, v := range s.Output {
		m.io.PushOutput(v)
	}
	m.pc = s.PC
	m.state = s.State
	m.steps = s.Steps
	return m
}
