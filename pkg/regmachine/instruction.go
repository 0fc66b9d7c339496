package regmachine

import (
	"strings"

	"github.com/chazu/vcpu/pkg/machine"
)

// Instruction is one register-machine instruction. Only the first
// Op.Arity() entries of Args are meaningful.
type Instruction struct {
	Op   Opcode     `cbor:"1,keyasint"`
	Args [2]Operand `cbor:"2,keyasint"`
}

// NewInstruction builds an instruction and checks it can execute.
// A register argument given as an immediate fails with
// machine.ErrImmediateWrite.
func NewInstruction(op Opcode, args ...Operand) (Instruction, error) {
	info, ok := op.Info()
	if !ok {
		return Instruction{}, machine.ErrUnknownOpcode
	}
	if len(args) != len(info.Args) {
		return Instruction{}, machine.ErrArity
	}
	ins := Instruction{Op: op}
	copy(ins.Args[:], args)
	if !ins.Valid() {
		return Instruction{}, machine.ErrImmediateWrite
	}
	return ins, nil
}

// Valid reports whether every register argument is actually a register.
// Instructions created by Parse are always valid; Toggle may produce invalid
// ones, which the machine skips.
func (ins Instruction) Valid() bool {
	info, ok := ins.Op.Info()
	if !ok {
		return false
	}
	for i, kind := range info.Args {
		if kind == ArgRegister && !ins.Args[i].IsRegister() {
			return false
		}
	}
	return true
}

// Toggle returns the instruction tgl turns ins into: the opcode is
// substituted via Opcode.Toggled and the arguments are kept.
func Toggle(ins Instruction) Instruction {
	return Instruction{Op: ins.Op.Toggled(), Args: ins.Args}
}

// String renders the instruction in the text form Parse reads.
func (ins Instruction) String() string {
	var sb strings.Builder
	sb.WriteString(ins.Op.String())
	for i := 0; i < ins.Op.Arity(); i++ {
		sb.WriteByte(' ')
		sb.WriteString(ins.Args[i].String())
	}
	return sb.String()
}

// FormatProgram renders a program one instruction per line.
func FormatProgram(program []Instruction) string {
	var sb strings.Builder
	for _, ins := range program {
		sb.WriteString(ins.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
