package main

import (
	"flag"
	"fmt"

	"github.com/chazu/vcpu/pkg/network"
)

// cmdAmp handles `vcpu amp`: try every phase ordering on a chain of
// amplifiers and print the best signal.
func cmdAmp(c *cli, args []string) error {
	fs := flag.NewFlagSet("amp", flag.ContinueOnError)
	feedback := fs.Bool("feedback", false, "Feed the last amplifier back into the first")
	phases := fs.String("phases", "", "Phase settings to permute (default 0-4, or 5-9 with -feedback)")
	seed := fs.Int64("seed", 0, "Input signal for the first amplifier")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings, err := parseInts(*phases)
	if err != nil {
		return err
	}
	if settings == nil {
		settings = []int64{0, 1, 2, 3, 4}
		if *feedback {
			settings = []int64{5, 6, 7, 8, 9}
		}
	}

	comp, err := c.loadComputer(fs.Args())
	if err != nil {
		return err
	}

	signal, order, err := network.BestChain(comp, settings, *seed, *feedback)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "%d (phases %s)\n", signal, joinInts(order))
	return nil
}
