package intcode

import (
	"fmt"
	"strings"
)

// frozen reads a slice without growing it; cells past the end read as 0.
type frozen []int64

func (f frozen) Get(addr int) int64 {
	if addr < 0 || addr >= len(f) {
		return 0
	}
	return f[addr]
}

// Disassemble returns a linear listing of mem. Cells that do not decode are
// printed as DATA and skipped one at a time, so data embedded after a HALT
// still shows up.
func Disassemble(mem []int64) string {
	var sb strings.Builder
	cells := frozen(mem)

	for pc := 0; pc < len(mem); {
		ins, err := Decode(cells, pc)
		if err != nil || pc+ins.Width() > len(mem) {
			sb.WriteString(fmt.Sprintf("%04d: DATA %d\n", pc, mem[pc]))
			pc++
			continue
		}
		sb.WriteString(fmt.Sprintf("%04d: %s\n", pc, ins))
		pc += ins.Width()
	}
	return sb.String()
}
