package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"

	"github.com/chazu/vcpu/pkg/intcode"
	"github.com/chazu/vcpu/pkg/machine"
)

// cmdRun handles `vcpu run`.
//
//	vcpu run prog.txt                # run, print output as 1,2,3
//	vcpu run -input 5 prog.txt       # queue input first
//	vcpu run -stdin prog.txt < in    # queue integers from stdin
//	vcpu run -ascii prog.txt         # interactive text session on stdin
func cmdRun(c *cli, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	ascii := fs.Bool("ascii", false, "Decode output as text and feed stdin lines as input")
	trace := fs.Bool("trace", false, "Log every instruction (needs -v)")
	input := fs.String("input", "", "Comma-separated input values")
	fromStdin := fs.Bool("stdin", false, "Queue whitespace-separated integers read from stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	comp, err := c.loadComputer(fs.Args())
	if err != nil {
		return err
	}
	comp.Trace = comp.Trace || *trace

	vals, err := parseInts(*input)
	if err != nil {
		return err
	}
	comp.IO().PushInput(c.cfg.InitialInput()...)
	comp.IO().PushInput(vals...)
	if *fromStdin && !*ascii {
		vals, err := readInts(c.stdin)
		if err != nil {
			return err
		}
		comp.IO().PushInput(vals...)
	}

	if *ascii {
		return runASCII(c, comp)
	}

	st, err := comp.Exec()
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, joinInts(comp.IO().DrainOutput()))
	if st == machine.Suspended {
		return fmt.Errorf("program is waiting for input at pc=%d", comp.PC())
	}
	return nil
}

// readInts reads whitespace- or comma-separated integers until EOF.
func readInts(r io.Reader) ([]int64, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	var vals []int64
	for sc.Scan() {
		more, err := parseInts(sc.Text())
		if err != nil {
			return nil, err
		}
		vals = append(vals, more...)
	}
	return vals, sc.Err()
}

// runASCII alternates between running comp and reading one line of stdin
// each time it suspends.
func runASCII(c *cli, comp *intcode.Computer) error {
	lines := bufio.NewScanner(c.stdin)
	for {
		st, err := comp.Exec()
		text, extra := intcode.ReadText(comp.IO())
		fmt.Fprint(c.stdout, text)
		for _, v := range extra {
			fmt.Fprintln(c.stdout, v)
		}
		if err != nil || st == machine.Halted {
			return err
		}
		if !lines.Scan() {
			return lines.Err()
		}
		intcode.SendLine(comp.IO(), lines.Text())
	}
}
