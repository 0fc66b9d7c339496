package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/vcpu/pkg/machine"
	"github.com/chazu/vcpu/pkg/regmachine"
)

// registerFlag collects repeated -set name=value flags.
type registerFlag map[byte]int64

func (r registerFlag) String() string {
	var parts []string
	for n, v := range r {
		parts = append(parts, fmt.Sprintf("%c=%d", n, v))
	}
	return strings.Join(parts, ",")
}

func (r registerFlag) Set(s string) error {
	for _, assign := range strings.Split(s, ",") {
		name, val, ok := strings.Cut(assign, "=")
		if !ok || len(name) != 1 || name[0] < 'a' || name[0] > 'z' {
			return fmt.Errorf("want r=value, got %q", assign)
		}
		v, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("bad value in %q", assign)
		}
		r[name[0]] = v
	}
	return nil
}

// cmdAsm handles `vcpu asm`.
//
//	vcpu asm prog.txt               # print all registers at halt
//	vcpu asm -set a=7 -print a prog.txt
//	vcpu asm -c -print h prog.txt   # print an equivalent C program instead
func cmdAsm(c *cli, args []string) error {
	fs := flag.NewFlagSet("asm", flag.ContinueOnError)
	set := registerFlag{}
	fs.Var(set, "set", "Initial register value r=v (repeatable)")
	show := fs.String("print", "", "Registers to print, e.g. a,b (default: all)")
	limit := fs.Int("limit", 0, "Stop after this many steps (0: no limit)")
	input := fs.String("input", "", "Comma-separated input values for rcv")
	trace := fs.Bool("trace", false, "Log every instruction (needs -v)")
	emitC := fs.Bool("c", false, "Print the program translated to C instead of running it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := c.loadMachine(fs.Args())
	if err != nil {
		return err
	}
	m.Trace = m.Trace || *trace
	for name, v := range set {
		m.Registers().Set(name, v)
	}
	if *emitC {
		outputs, err := registerNames(*show)
		if err != nil {
			return err
		}
		src, err := regmachine.EmitC(m.Program(), m.Registers(), outputs)
		if err != nil {
			return err
		}
		fmt.Fprint(c.stdout, src)
		return nil
	}
	vals, err := parseInts(*input)
	if err != nil {
		return err
	}
	m.IO().PushInput(c.cfg.InitialInput()...)
	m.IO().PushInput(vals...)

	var st machine.State
	if *limit > 0 {
		st, err = m.ExecN(*limit)
	} else {
		st, err = m.Exec()
	}
	if err != nil {
		return err
	}

	if *show == "" {
		fmt.Fprintln(c.stdout, m.Registers())
	} else {
		names, err := registerNames(*show)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintf(c.stdout, "%c=%d\n", name, m.Registers().Get(name))
		}
	}
	if out := m.IO().DrainOutput(); len(out) > 0 {
		fmt.Fprintf(c.stdout, "output: %s\n", joinInts(out))
	}
	if st != machine.Halted {
		fmt.Fprintf(c.stdout, "stopped: %s at pc=%d after %d steps\n", st, m.PC(), m.Steps())
	}
	return nil
}

// registerNames splits a comma-separated list of register letters.
func registerNames(s string) ([]byte, error) {
	var names []byte
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if len(name) != 1 {
			return nil, fmt.Errorf("bad register name %q", name)
		}
		names = append(names, name[0])
	}
	return names, nil
}
