package regmachine

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/chazu/vcpu/pkg/machine"
)

var log = commonlog.GetLogger("vcpu.regmachine")

// Machine executes a register-machine program. It owns a private copy of the
// program so tgl never alters the caller's slice.
type Machine struct {
	program []Instruction
	pc      int
	regs    *Registers
	io      *machine.IO
	state   machine.State
	steps   uint64
	counts  [numOpcodes]uint64

	// Trace logs every executed instruction at debug level.
	Trace bool
}

// New creates a machine for program with all registers at 0.
func New(program []Instruction) *Machine {
	m := &Machine{
		program: append([]Instruction(nil), program...),
		regs:    NewRegisters(),
		io:      machine.NewIO(),
	}
	if len(m.program) == 0 {
		m.state = machine.Halted
	}
	return m
}

// Load parses program text and creates a machine for it.
func Load(text string) (*Machine, error) {
	program, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return New(program), nil
}

// Registers returns the live register set; set initial values through it
// before running.
func (m *Machine) Registers() *Registers { return m.regs }

// IO returns the machine's input and output queues.
func (m *Machine) IO() *machine.IO { return m.io }

// PC returns the index of the next instruction.
func (m *Machine) PC() int { return m.pc }

// State returns the current execution state.
func (m *Machine) State() machine.State { return m.state }

// Steps returns the number of instructions executed, skipped ones included.
func (m *Machine) Steps() uint64 { return m.steps }

// Count returns how many times instructions with opcode op have executed.
func (m *Machine) Count(op Opcode) uint64 {
	if op >= numOpcodes {
		return 0
	}
	return m.counts[op]
}

// Program returns a copy of the current program, including any changes
// made by tgl.
func (m *Machine) Program() []Instruction {
	return append([]Instruction(nil), m.program...)
}

// Clone returns an independent copy of the machine.
func (m *Machine) Clone() *Machine {
	c := *m
	c.program = m.Program()
	c.regs = m.regs.Clone()
	c.io = m.io.Clone()
	return &c
}

func (m *Machine) fault(ins Instruction, err error) (machine.State, error) {
	m.state = machine.Halted
	log.Errorf("halted at pc=%d (%s): %v", m.pc, ins, err)
	return m.state, fmt.Errorf("regmachine: pc=%d %s: %w", m.pc, ins, err)
}

// Step executes a single instruction and returns the resulting state.
//
// A jump or advance that leaves the program halts the machine. rcv with no
// pending input returns machine.Suspended without advancing.
func (m *Machine) Step() (machine.State, error) {
	if m.state == machine.Halted {
		return m.state, nil
	}
	if m.pc < 0 || m.pc >= len(m.program) {
		m.state = machine.Halted
		return m.state, nil
	}

	ins := m.program[m.pc]
	if _, ok := ins.Op.Info(); !ok {
		m.state = machine.Halted
		return m.state, &machine.DecodeError{PC: m.pc, Value: int64(ins.Op), Err: machine.ErrUnknownOpcode}
	}

	if m.Trace && log.AllowLevel(commonlog.Debug) {
		log.Debugf("[%03d] %-12s %s", m.pc, ins, m.regs)
	}

	x, y := ins.Args[0], ins.Args[1]
	next := m.pc + 1

	if !ins.Valid() {
		// Produced by tgl; cannot execute, skip it.
		m.advance(next)
		return m.state, nil
	}

	var err error
	switch ins.Op {
	case OpNop:

	case OpCpy:
		err = y.Store(m.regs, x.Resolve(m.regs))
	case OpSet:
		err = x.Store(m.regs, y.Resolve(m.regs))
	case OpInc:
		err = x.Store(m.regs, x.Resolve(m.regs)+1)
	case OpDec:
		err = x.Store(m.regs, x.Resolve(m.regs)-1)
	case OpAdd:
		err = x.Store(m.regs, x.Resolve(m.regs)+y.Resolve(m.regs))
	case OpSub:
		err = x.Store(m.regs, x.Resolve(m.regs)-y.Resolve(m.regs))
	case OpMul:
		err = x.Store(m.regs, x.Resolve(m.regs)*y.Resolve(m.regs))
	case OpDiv, OpMod:
		d := y.Resolve(m.regs)
		if d == 0 {
			return m.fault(ins, machine.ErrDivideByZero)
		}
		if ins.Op == OpDiv {
			err = x.Store(m.regs, x.Resolve(m.regs)/d)
		} else {
			err = x.Store(m.regs, x.Resolve(m.regs)%d)
		}
	case OpHlf:
		err = x.Store(m.regs, x.Resolve(m.regs)/2)
	case OpTpl:
		err = x.Store(m.regs, x.Resolve(m.regs)*3)

	case OpJmp:
		next = m.pc + int(x.Resolve(m.regs))
	case OpJnz:
		if x.Resolve(m.regs) != 0 {
			next = m.pc + int(y.Resolve(m.regs))
		}
	case OpJgz:
		if x.Resolve(m.regs) > 0 {
			next = m.pc + int(y.Resolve(m.regs))
		}
	case OpJie:
		if x.Resolve(m.regs)%2 == 0 {
			next = m.pc + int(y.Resolve(m.regs))
		}
	case OpJio:
		if x.Resolve(m.regs) == 1 {
			next = m.pc + int(y.Resolve(m.regs))
		}

	case OpTgl:
		target := m.pc + int(x.Resolve(m.regs))
		if target >= 0 && target < len(m.program) {
			m.program[target] = Toggle(m.program[target])
		}

	case OpSnd, OpOut:
		m.io.PushOutput(x.Resolve(m.regs))
	case OpRcv:
		v, ok := m.io.PopInput()
		if !ok {
			m.state = machine.Suspended
			return m.state, nil
		}
		err = x.Store(m.regs, v)
	}

	if err != nil {
		return m.fault(ins, err)
	}

	m.counts[ins.Op]++
	m.advance(next)
	return m.state, nil
}

// advance moves to next, halting when it falls outside the program.
func (m *Machine) advance(next int) {
	m.steps++
	m.pc = next
	if next < 0 || next >= len(m.program) {
		m.state = machine.Halted
		return
	}
	m.state = machine.Running
}

// Exec runs until the machine halts or suspends waiting for input.
func (m *Machine) Exec() (machine.State, error) {
	for {
		st, err := m.Step()
		if err != nil || st != machine.Running {
			return st, err
		}
	}
}

// ExecN is Exec with a budget of at most limit steps, for programs that
// never terminate on their own. It returns machine.Running when the budget
// runs out.
func (m *Machine) ExecN(limit int) (machine.State, error) {
	for i := 0; i < limit; i++ {
		st, err := m.Step()
		if err != nil || st != machine.Running {
			return st, err
		}
	}
	return m.state, nil
}
