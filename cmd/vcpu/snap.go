package main

import (
	"flag"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/chazu/vcpu/manifest"
	"github.com/chazu/vcpu/pkg/machine"
	"github.com/chazu/vcpu/pkg/network"
	"github.com/chazu/vcpu/pkg/regmachine"
	"github.com/chazu/vcpu/pkg/snapshot"
)

// cmdSnap handles `vcpu snap`.
//
//	vcpu snap save [-limit N] [-input 1,2] name [program]
//	vcpu snap load [-input 1,2] id-or-name
//	vcpu snap list
//	vcpu snap rm id
func cmdSnap(c *cli, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("snap needs save, load, list or rm")
	}
	sub, args := args[0], args[1:]

	store, err := snapshot.Open(c.cfg.SnapshotDBPath())
	if err != nil {
		return err
	}
	defer store.Close()

	switch sub {
	case "save":
		return snapSave(c, store, args)
	case "load":
		return snapLoad(c, store, args)
	case "list", "ls":
		return snapList(c, store)
	case "rm":
		if len(args) != 1 {
			return fmt.Errorf("snap rm needs a snapshot ID")
		}
		return store.Delete(args[0])
	}
	return fmt.Errorf("unknown snap command %q", sub)
}

func snapSave(c *cli, store *snapshot.Store, args []string) error {
	fs := flag.NewFlagSet("snap save", flag.ContinueOnError)
	input := fs.String("input", "", "Comma-separated input values")
	limit := fs.Int("limit", 0, "Register machines: stop after this many steps")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("snap save needs a name")
	}
	name, rest := fs.Arg(0), fs.Args()[1:]

	vals, err := parseInts(*input)
	if err != nil {
		return err
	}

	var env *snapshot.Envelope
	var st machine.State
	if c.cfg.Machine.Kind == manifest.KindRegister {
		m, err := c.loadMachine(rest)
		if err != nil {
			return err
		}
		m.IO().PushInput(c.cfg.InitialInput()...)
		m.IO().PushInput(vals...)
		if *limit > 0 {
			st, err = m.ExecN(*limit)
		} else {
			st, err = m.Exec()
		}
		if err != nil {
			return err
		}
		env = snapshot.FromMachine(m)
	} else {
		comp, err := c.loadComputer(rest)
		if err != nil {
			return err
		}
		comp.IO().PushInput(c.cfg.InitialInput()...)
		comp.IO().PushInput(vals...)
		if st, err = comp.Exec(); err != nil {
			return err
		}
		env = snapshot.FromComputer(comp)
	}

	id, err := store.Save(name, env)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "%s %s %s\n", id, env.Kind, st)
	return nil
}

func snapLoad(c *cli, store *snapshot.Store, args []string) error {
	fs := flag.NewFlagSet("snap load", flag.ContinueOnError)
	input := fs.String("input", "", "Comma-separated input values to resume with")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("snap load needs a snapshot ID or name")
	}
	vals, err := parseInts(*input)
	if err != nil {
		return err
	}

	env, err := store.Load(fs.Arg(0))
	if err != nil {
		return err
	}

	var p network.Process
	var regs fmt.Stringer
	switch env.Kind {
	case snapshot.KindIntcode:
		p, err = env.Computer()
	default:
		var m *regmachine.Machine
		if m, err = env.Machine(); err == nil {
			p, regs = m, m.Registers()
		}
	}
	if err != nil {
		return err
	}

	p.IO().PushInput(vals...)
	st, err := p.Exec()
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, joinInts(p.IO().DrainOutput()))
	if regs != nil {
		fmt.Fprintln(c.stdout, regs)
	}
	fmt.Fprintln(c.stdout, st)
	return nil
}

func snapList(c *cli, store *snapshot.Store) error {
	list, err := store.List()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKIND\tSTEPS\tCREATED")
	for _, info := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			info.ID, info.Name, info.Kind, info.Steps, info.Created.Format(time.DateTime))
	}
	return w.Flush()
}
