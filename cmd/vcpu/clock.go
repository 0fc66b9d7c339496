package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/chazu/vcpu/pkg/regmachine"
	"github.com/chazu/vcpu/pkg/search"
)

// cmdClock handles `vcpu clock`: find the lowest initial a for which the
// register program transmits 0,1,0,1,...
func cmdClock(c *cli, args []string) error {
	fs := flag.NewFlagSet("clock", flag.ContinueOnError)
	limit := fs.Int("limit", 100_000, "Step budget per candidate")
	signals := fs.Int("signals", 32, "Clock values that must match")
	maxA := fs.Int64("max", 1<<20, "Search a in [0, max)")
	workers := fs.Int("workers", 0, "Parallel workers (0: GOMAXPROCS)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	proto, err := c.loadMachine(fs.Args())
	if err != nil {
		return err
	}
	proto.Trace = false

	a, err := search.Lowest(context.Background(), 0, *maxA, *workers, func(n int64) (bool, error) {
		m := proto.Clone()
		m.Registers().Set('a', n)
		return regmachine.IsClockSignal(m, *signals, *limit), nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, a)
	return nil
}
