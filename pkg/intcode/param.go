package intcode

import (
	"fmt"

	"github.com/chazu/vcpu/pkg/machine"
)

// Mode is a parameter addressing mode.
type Mode uint8

const (
	Position  Mode = 0 // value is mem[v]
	Immediate Mode = 1 // value is v
	Relative  Mode = 2 // value is mem[base+v]
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// Param is one decoded instruction parameter: the raw cell value and the
// mode it is interpreted with.
type Param struct {
	Mode  Mode
	Value int64
}

// Address returns the memory address a Position or Relative parameter refers
// to. Immediate parameters have no address.
func (p Param) Address(base int64) (int, error) {
	var addr int64
	switch p.Mode {
	case Position:
		addr = p.Value
	case Relative:
		addr = base + p.Value
	case Immediate:
		return 0, machine.ErrImmediateWrite
	default:
		return 0, machine.ErrInvalidMode
	}
	if addr < 0 {
		return 0, fmt.Errorf("%w: %d", machine.ErrAddressOutOfRange, addr)
	}
	return int(addr), nil
}

// Resolve returns the parameter's value against mem.
func (p Param) Resolve(mem machine.Storage[int], base int64) (int64, error) {
	if p.Mode == Immediate {
		return p.Value, nil
	}
	addr, err := p.Address(base)
	if err != nil {
		return 0, err
	}
	return mem.Get(addr), nil
}

// Store writes v through the parameter. Immediate parameters are rejected at
// decode time, so reaching Store with one is a bug in the caller.
func (p Param) Store(mem machine.Storage[int], base int64, v int64) error {
	addr, err := p.Address(base)
	if err != nil {
		return err
	}
	mem.Set(addr, v)
	return nil
}

func (p Param) String() string {
	switch p.Mode {
	case Immediate:
		return fmt.Sprintf("%d", p.Value)
	case Relative:
		return fmt.Sprintf("[rb%+d]", p.Value)
	}
	return fmt.Sprintf("[%d]", p.Value)
}
