package regmachine

import (
	"fmt"
	"strconv"

	"github.com/chazu/vcpu/pkg/machine"
)

// Operand is either an immediate integer or a register reference.
// A zero Reg marks an immediate.
type Operand struct {
	Reg   byte  `cbor:"1,keyasint,omitempty"`
	Value int64 `cbor:"2,keyasint,omitempty"`
}

// Imm returns an immediate operand.
func Imm(v int64) Operand { return Operand{Value: v} }

// Reg returns a register operand.
func Reg(name byte) Operand { return Operand{Reg: name} }

// IsRegister reports whether the operand names a register.
func (o Operand) IsRegister() bool { return o.Reg != 0 }

// Resolve returns the operand's value: the literal for an immediate, the
// register contents otherwise.
func (o Operand) Resolve(regs machine.Storage[byte]) int64 {
	if o.Reg == 0 {
		return o.Value
	}
	return regs.Get(o.Reg)
}

// Store writes v to the register the operand names.
func (o Operand) Store(regs machine.Storage[byte], v int64) error {
	if o.Reg == 0 {
		return machine.ErrImmediateWrite
	}
	regs.Set(o.Reg, v)
	return nil
}

func (o Operand) String() string {
	if o.Reg != 0 {
		return string(o.Reg)
	}
	return strconv.FormatInt(o.Value, 10)
}

// ParseOperand reads an integer (optionally signed, "+2" accepted) or a
// single lowercase register letter.
func ParseOperand(s string) (Operand, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Imm(v), nil
	}
	if len(s) == 1 && s[0] >= 'a' && s[0] <= 'z' {
		return Reg(s[0]), nil
	}
	return Operand{}, fmt.Errorf("%w %q", machine.ErrBadOperand, s)
}
