package intcode

import (
	"fmt"
	"strings"

	"github.com/chazu/vcpu/pkg/machine"
)

// cellReader is the read half of machine.Storage[int]. Decoding through it
// lets the disassembler read a frozen slice without growing anything.
type cellReader interface {
	Get(addr int) int64
}

// Instruction is one decoded Intcode instruction.
type Instruction struct {
	Op     Opcode
	Raw    int64 // Undecoded instruction value
	Params [3]Param
}

// Args returns the parameters used by the instruction's opcode.
func (ins Instruction) Args() []Param {
	return ins.Params[:opcodeInfoTable[ins.Op].ParamCount]
}

// Width returns the number of memory cells the instruction occupies.
func (ins Instruction) Width() int {
	return ins.Op.Width()
}

func (ins Instruction) String() string {
	args := ins.Args()
	if len(args) == 0 {
		return ins.Op.String()
	}
	parts := make([]string, len(args))
	for i, p := range args {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%-4s %s", ins.Op, strings.Join(parts, ", "))
}

// splitOpcode extracts the opcode and the three parameter mode digits from
// an instruction value.
func splitOpcode(v int64) (Opcode, [3]int64) {
	rest := v / 100
	var modes [3]int64
	for i := range modes {
		modes[i] = rest % 10
		rest /= 10
	}
	return Opcode(v % 100), modes
}

// Decode reads the instruction starting at pc. It validates the opcode, each
// parameter's mode, and that no destination parameter is in immediate mode.
func Decode(mem cellReader, pc int) (Instruction, error) {
	raw := mem.Get(pc)
	op, modes := splitOpcode(raw)
	info, ok := opcodeInfoTable[op]
	if !ok {
		return Instruction{}, &machine.DecodeError{PC: pc, Value: raw, Err: machine.ErrUnknownOpcode}
	}

	ins := Instruction{Op: op, Raw: raw}
	for i := 0; i < info.ParamCount; i++ {
		m := modes[i]
		if m < 0 || m > int64(Relative) {
			return Instruction{}, &machine.DecodeError{
				PC: pc, Value: raw,
				Err: fmt.Errorf("%w %d for parameter %d", machine.ErrInvalidMode, m, i+1),
			}
		}
		if i == info.WriteParam && Mode(m) == Immediate {
			return Instruction{}, &machine.DecodeError{
				PC: pc, Value: raw,
				Err: fmt.Errorf("%w: parameter %d of %s", machine.ErrImmediateWrite, i+1, op),
			}
		}
		ins.Params[i] = Param{Mode: Mode(m), Value: mem.Get(pc + 1 + i)}
	}
	return ins, nil
}
