package intcode

import (
	"strconv"
	"strings"
)

// Memory is the Intcode address space: a 0-indexed sequence of int64 that
// grows on demand. Accessing an address at or beyond Len extends the
// sequence to addr+1 cells, zero filling the gap.
type Memory struct {
	cells []int64
}

// NewMemory returns memory initialised with a copy of program.
func NewMemory(program []int64) *Memory {
	cells := make([]int64, len(program))
	copy(cells, program)
	return &Memory{cells: cells}
}

func (m *Memory) ensure(addr int) {
	if addr < len(m.cells) {
		return
	}
	if addr < cap(m.cells) {
		n := len(m.cells)
		m.cells = m.cells[:addr+1]
		clear(m.cells[n:])
		return
	}
	grown := make([]int64, addr+1, max(addr+1, 2*cap(m.cells)))
	copy(grown, m.cells)
	m.cells = grown
}

// Get returns the value at addr, growing memory if needed.
func (m *Memory) Get(addr int) int64 {
	m.ensure(addr)
	return m.cells[addr]
}

// Set stores v at addr, growing memory if needed.
func (m *Memory) Set(addr int, v int64) {
	m.ensure(addr)
	m.cells[addr] = v
}

// Len returns the current number of cells.
func (m *Memory) Len() int {
	return len(m.cells)
}

// Slice returns a copy of the memory contents.
func (m *Memory) Slice() []int64 {
	out := make([]int64, len(m.cells))
	copy(out, m.cells)
	return out
}

// Clone returns an independent copy.
func (m *Memory) Clone() *Memory {
	return NewMemory(m.cells)
}

// String returns the contents comma-joined, the same format programs are
// written in.
func (m *Memory) String() string {
	var sb strings.Builder
	for i, v := range m.cells {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	return sb.String()
}
