package regmachine

import (
	"slices"
	"strconv"
	"strings"
)

// Registers maps single-letter register names to values. Registers that
// were never set read as 0.
type Registers struct {
	regs map[byte]int64
}

// NewRegisters creates an empty register set.
func NewRegisters() *Registers {
	return &Registers{regs: make(map[byte]int64)}
}

// Get returns the value of the named register.
func (r *Registers) Get(name byte) int64 {
	return r.regs[name]
}

// Set assigns the named register.
func (r *Registers) Set(name byte, v int64) {
	r.regs[name] = v
}

// Names returns the names of registers that have been set, sorted.
func (r *Registers) Names() []byte {
	names := make([]byte, 0, len(r.regs))
	for n := range r.regs {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Clone returns an independent copy.
func (r *Registers) Clone() *Registers {
	c := NewRegisters()
	for n, v := range r.regs {
		c.regs[n] = v
	}
	return c
}

// Map returns the registers keyed by name as strings.
func (r *Registers) Map() map[string]int64 {
	out := make(map[string]int64, len(r.regs))
	for n, v := range r.regs {
		out[string(n)] = v
	}
	return out
}

// String returns "a=1 b=2 ..." in name order.
func (r *Registers) String() string {
	var sb strings.Builder
	for i, n := range r.Names() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(n)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatInt(r.regs[n], 10))
	}
	return sb.String()
}
