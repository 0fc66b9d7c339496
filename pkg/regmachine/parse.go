package regmachine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chazu/vcpu/pkg/machine"
)

// ParseInstruction reads one instruction. Commas between operands are
// accepted ("jio a, +2").
func ParseInstruction(line string) (Instruction, error) {
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(fields) == 0 {
		return Instruction{}, machine.ErrUnknownMnemonic
	}

	op, ok := LookupMnemonic(fields[0])
	if !ok {
		return Instruction{}, fmt.Errorf("%w %q", machine.ErrUnknownMnemonic, fields[0])
	}
	info, _ := op.Info()
	if len(fields)-1 != len(info.Args) {
		return Instruction{}, fmt.Errorf("%w: %s takes %d, got %d",
			machine.ErrArity, op, len(info.Args), len(fields)-1)
	}

	args := make([]Operand, len(info.Args))
	for i, f := range fields[1:] {
		arg, err := ParseOperand(f)
		if err != nil {
			return Instruction{}, err
		}
		if info.Args[i] == ArgRegister && !arg.IsRegister() {
			return Instruction{}, fmt.Errorf("%w: %s argument %d is %s",
				machine.ErrImmediateWrite, op, i+1, arg)
		}
		args[i] = arg
	}

	ins, err := NewInstruction(op, args...)
	if err != nil {
		return Instruction{}, err
	}
	return ins, nil
}

// Parse reads a program, one instruction per line. Blank lines are skipped.
// The first malformed line aborts parsing with a *machine.ParseError.
func Parse(text string) ([]Instruction, error) {
	var program []Instruction
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ins, err := ParseInstruction(line)
		if err != nil {
			return nil, &machine.ParseError{Line: i + 1, Text: line, Err: err}
		}
		program = append(program, ins)
	}
	if len(program) == 0 {
		return nil, &machine.ParseError{Line: 1, Err: errors.New("empty program")}
	}
	return program, nil
}
