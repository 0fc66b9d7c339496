package main

import (
	"flag"
	"fmt"

	"github.com/chazu/vcpu/manifest"
	"github.com/chazu/vcpu/pkg/intcode"
	"github.com/chazu/vcpu/pkg/regmachine"
)

// cmdDisasm handles `vcpu disasm`. Register programs are printed in
// canonical form.
func cmdDisasm(c *cli, args []string) error {
	fs := flag.NewFlagSet("disasm", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	text, err := c.programText(fs.Args())
	if err != nil {
		return err
	}

	if c.cfg.Machine.Kind == manifest.KindRegister {
		program, err := regmachine.Parse(text)
		if err != nil {
			return err
		}
		fmt.Fprint(c.stdout, regmachine.FormatProgram(program))
		return nil
	}

	program, err := intcode.Parse(text)
	if err != nil {
		return err
	}
	fmt.Fprint(c.stdout, intcode.Disassemble(program))
	return nil
}
