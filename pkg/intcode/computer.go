package intcode

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/chazu/vcpu/pkg/machine"
)

var log = commonlog.GetLogger("vcpu.intcode")

// ErrNoOutput is returned by Run when the program produced nothing.
var ErrNoOutput = errors.New("intcode: no output")

// Computer executes Intcode programs.
type Computer struct {
	mem   *Memory
	pc    int
	base  int64 // Relative base
	state machine.State
	io    *machine.IO
	steps uint64

	// Trace logs every executed instruction at debug level.
	Trace bool
}

// New creates a computer running a copy of program.
func New(program []int64) *Computer {
	return &Computer{
		mem: NewMemory(program),
		io:  machine.NewIO(),
	}
}

// Load parses comma-separated program text and creates a computer for it.
func Load(text string) (*Computer, error) {
	program, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return New(program), nil
}

// IO returns the computer's input and output queues.
func (c *Computer) IO() *machine.IO { return c.io }

// Memory returns the live memory. Writes through it are seen by the next
// instruction fetch.
func (c *Computer) Memory() *Memory { return c.mem }

// PC returns the program counter.
func (c *Computer) PC() int { return c.pc }

// RelativeBase returns the base used by relative-mode parameters.
func (c *Computer) RelativeBase() int64 { return c.base }

// State returns the current execution state.
func (c *Computer) State() machine.State { return c.state }

// Halted reports whether the computer reached a halt or a fault.
func (c *Computer) Halted() bool { return c.state == machine.Halted }

// Steps returns the number of instructions executed so far.
func (c *Computer) Steps() uint64 { return c.steps }

// Peek reads memory at addr.
func (c *Computer) Peek(addr int) int64 { return c.mem.Get(addr) }

// Poke writes memory at addr, e.g. to patch a program's noun and verb before
// running it.
func (c *Computer) Poke(addr int, v int64) { c.mem.Set(addr, v) }

// Clone returns an independent copy of the computer, including memory,
// program counter, relative base and both IO queues.
func (c *Computer) Clone() *Computer {
	return &Computer{
		mem:   c.mem.Clone(),
		pc:    c.pc,
		base:  c.base,
		state: c.state,
		io:    c.io.Clone(),
		steps: c.steps,
		Trace: c.Trace,
	}
}

// fault halts the computer and returns err.
func (c *Computer) fault(err error) (machine.State, error) {
	c.state = machine.Halted
	log.Errorf("halted at pc=%d: %v", c.pc, err)
	return c.state, err
}

// Step executes a single instruction and returns the resulting state.
//
// On a halted computer Step does nothing. An INPUT with no pending input
// returns machine.Suspended and leaves the program counter unchanged.
func (c *Computer) Step() (machine.State, error) {
	if c.state == machine.Halted {
		return c.state, nil
	}

	ins, err := Decode(c.mem, c.pc)
	if err != nil {
		return c.fault(err)
	}

	if c.Trace && log.AllowLevel(commonlog.Debug) {
		log.Debugf("[%04d] %-24s rb=%d", c.pc, ins, c.base)
	}

	next := c.pc + ins.Width()
	p := ins.Params

	switch ins.Op {
	case OpAdd, OpMul, OpLessThan, OpEquals:
		a, err := p[0].Resolve(c.mem, c.base)
		if err != nil {
			return c.runtimeFault(ins, err)
		}
		b, err := p[1].Resolve(c.mem, c.base)
		if err != nil {
			return c.runtimeFault(ins, err)
		}
		var v int64
		switch ins.Op {
		case OpAdd:
			v = a + b
		case OpMul:
			v = a * b
		case OpLessThan:
			v = boolInt(a < b)
		case OpEquals:
			v = boolInt(a == b)
		}
		if err := p[2].Store(c.mem, c.base, v); err != nil {
			return c.runtimeFault(ins, err)
		}

	case OpInput:
		v, ok := c.io.PopInput()
		if !ok {
			c.state = machine.Suspended
			return c.state, nil
		}
		if err := p[0].Store(c.mem, c.base, v); err != nil {
			return c.runtimeFault(ins, err)
		}

	case OpOutput:
		v, err := p[0].Resolve(c.mem, c.base)
		if err != nil {
			return c.runtimeFault(ins, err)
		}
		c.io.PushOutput(v)

	case OpJumpIfTrue, OpJumpIfFalse:
		a, err := p[0].Resolve(c.mem, c.base)
		if err != nil {
			return c.runtimeFault(ins, err)
		}
		if (a != 0) == (ins.Op == OpJumpIfTrue) {
			target, err := p[1].Resolve(c.mem, c.base)
			if err != nil {
				return c.runtimeFault(ins, err)
			}
			if target < 0 {
				return c.runtimeFault(ins, fmt.Errorf("%w: jump to %d", machine.ErrAddressOutOfRange, target))
			}
			next = int(target)
		}

	case OpAdjustBase:
		a, err := p[0].Resolve(c.mem, c.base)
		if err != nil {
			return c.runtimeFault(ins, err)
		}
		c.base += a

	case OpHalt:
		c.steps++
		c.state = machine.Halted
		return c.state, nil
	}

	c.pc = next
	c.steps++
	c.state = machine.Running
	return c.state, nil
}

func (c *Computer) runtimeFault(ins Instruction, err error) (machine.State, error) {
	return c.fault(fmt.Errorf("intcode: pc=%d %s: %w", c.pc, ins.Op, err))
}

// Exec runs until the computer halts or suspends waiting for input and
// returns which of the two happened. A fault halts the computer and is
// returned as the error.
func (c *Computer) Exec() (machine.State, error) {
	for {
		st, err := c.Step()
		if err != nil || st != machine.Running {
			return st, err
		}
	}
}

// Run pushes one input value, executes, and returns the last output value.
func (c *Computer) Run(input int64) (int64, error) {
	c.io.PushInput(input)
	if _, err := c.Exec(); err != nil {
		return 0, err
	}
	v, ok := c.io.LastOutput()
	if !ok {
		return 0, ErrNoOutput
	}
	return v, nil
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
