package regmachine

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrNoCForm is returned by EmitC for instructions with no static C
	// translation: tgl rewrites the program and snd, out and rcv need a
	// partner.
	ErrNoCForm = errors.New("instruction has no C form")

	// ErrDynamicJump is returned by EmitC for a jump whose offset is a
	// register.
	ErrDynamicJump = errors.New("jump offset is not an immediate")
)

// Patch replaces the instructions From through To, inclusive, with
// hand-written C statements. Jumps into the middle of a patch land after it.
type Patch struct {
	From, To int
	Code     string
}

// EmitC translates program into a standalone C program that starts with the
// given registers, runs to completion and prints each register in outputs on
// its own line. initial may be nil. Every register is a long long; a jump
// that leaves the program goes to the end of main.
func EmitC(program []Instruction, initial *Registers, outputs []byte, patches ...Patch) (string, error) {
	patches, err := checkPatches(patches, len(program))
	if err != nil {
		return "", err
	}
	patchAt := make(map[int]Patch, len(patches))
	patched := make([]bool, len(program))
	for _, p := range patches {
		patchAt[p.From] = p
		for i := p.From; i <= p.To; i++ {
			patched[i] = true
		}
	}

	labels := make(map[int]bool)
	for i, ins := range program {
		if !ins.Valid() {
			return "", fmt.Errorf("regmachine: emit C: pc=%d %s: invalid instruction", i, ins)
		}
		if patched[i] {
			continue
		}
		switch ins.Op {
		case OpTgl, OpSnd, OpOut, OpRcv:
			return "", fmt.Errorf("regmachine: emit C: pc=%d %s: %w", i, ins, ErrNoCForm)
		}
		if !ins.Op.IsJump() {
			continue
		}
		off := ins.Args[1]
		if ins.Op == OpJmp {
			off = ins.Args[0]
		}
		if off.IsRegister() {
			return "", fmt.Errorf("regmachine: emit C: pc=%d %s: %w", i, ins, ErrDynamicJump)
		}
		labels[jumpTarget(i, off.Value, len(program))] = true
	}

	var sb strings.Builder
	sb.WriteString("#include <stdio.h>\n\nint main(void) {\n")
	for _, r := range cRegisters(program, initial, outputs) {
		var v int64
		if initial != nil {
			v = initial.Get(r)
		}
		fmt.Fprintf(&sb, "\tlong long %c = %d;\n", r, v)
	}
	sb.WriteString("\n")

	for i, ins := range program {
		prefix := ""
		if labels[i] {
			prefix = label(i) + ":"
		}
		if p, ok := patchAt[i]; ok {
			for _, line := range strings.Split(strings.TrimRight(p.Code, "\n"), "\n") {
				sb.WriteString(prefix + "\t" + line + "\n")
				prefix = ""
			}
			continue
		}
		if patched[i] {
			continue
		}
		sb.WriteString(prefix + "\t" + cStatement(i, ins, len(program)) + ";\n")
	}
	if labels[len(program)] {
		sb.WriteString(label(len(program)) + ":\t;\n")
	}

	for _, r := range outputs {
		fmt.Fprintf(&sb, "\tprintf(\"%%lld\\n\", %c);\n", r)
	}
	sb.WriteString("\treturn 0;\n}\n")
	return sb.String(), nil
}

// checkPatches sorts patches and rejects empty, out of range or overlapping
// ones.
func checkPatches(patches []Patch, n int) ([]Patch, error) {
	patches = slices.Clone(patches)
	slices.SortFunc(patches, func(a, b Patch) int { return a.From - b.From })
	last := -1
	for _, p := range patches {
		if p.From < 0 || p.To >= n || p.From > p.To {
			return nil, fmt.Errorf("regmachine: emit C: patch %d..%d outside program of %d instructions", p.From, p.To, n)
		}
		if p.From <= last {
			return nil, fmt.Errorf("regmachine: emit C: patch %d..%d overlaps another", p.From, p.To)
		}
		last = p.To
	}
	return patches, nil
}

// jumpTarget clamps targets outside the program to n, the end label.
func jumpTarget(pc int, off int64, n int) int {
	t := int64(pc) + off
	if t < 0 || t > int64(n) {
		return n
	}
	return int(t)
}

func label(i int) string { return "L" + strconv.Itoa(i) }

// cRegisters returns every register the output program touches, sorted.
func cRegisters(program []Instruction, initial *Registers, outputs []byte) []byte {
	var names []byte
	for _, ins := range program {
		for _, a := range ins.Args[:ins.Op.Arity()] {
			if a.IsRegister() {
				names = append(names, a.Reg)
			}
		}
	}
	if initial != nil {
		names = append(names, initial.Names()...)
	}
	names = append(names, outputs...)
	slices.Sort(names)
	return slices.Compact(names)
}

func cStatement(pc int, ins Instruction, n int) string {
	x, y := ins.Args[0], ins.Args[1]
	jump := func(cond string, off Operand) string {
		return fmt.Sprintf("if (%s) goto %s", cond, label(jumpTarget(pc, off.Value, n)))
	}
	switch ins.Op {
	case OpCpy:
		return fmt.Sprintf("%s = %s", y, x)
	case OpSet:
		return fmt.Sprintf("%s = %s", x, y)
	case OpInc:
		return fmt.Sprintf("%s += 1", x)
	case OpDec:
		return fmt.Sprintf("%s -= 1", x)
	case OpAdd:
		return fmt.Sprintf("%s += %s", x, y)
	case OpSub:
		return fmt.Sprintf("%s -= %s", x, y)
	case OpMul:
		return fmt.Sprintf("%s *= %s", x, y)
	case OpDiv:
		return fmt.Sprintf("%s /= %s", x, y)
	case OpMod:
		return fmt.Sprintf("%s %%= %s", x, y)
	case OpHlf:
		return fmt.Sprintf("%s /= 2", x)
	case OpTpl:
		return fmt.Sprintf("%s *= 3", x)
	case OpJmp:
		return "goto " + label(jumpTarget(pc, x.Value, n))
	case OpJnz:
		return jump(x.String()+" != 0", y)
	case OpJgz:
		return jump(x.String()+" > 0", y)
	case OpJie:
		return jump(x.String()+" % 2 == 0", y)
	case OpJio:
		return jump(x.String()+" == 1", y)
	}
	return ""
}
