package main

import (
	"flag"
	"fmt"

	"github.com/chazu/vcpu/pkg/network"
)

// cmdNet handles `vcpu net`: clone the program into a packet network and
// report the first Y sent to the NAT, or with -nat the first Y the NAT
// delivers twice in a row.
func cmdNet(c *cli, args []string) error {
	fs := flag.NewFlagSet("net", flag.ContinueOnError)
	size := fs.Int("size", c.cfg.Network.Size, "Number of nodes")
	nat := fs.Bool("nat", false, "Report the first repeated NAT delivery")
	if err := fs.Parse(args); err != nil {
		return err
	}

	comp, err := c.loadComputer(fs.Args())
	if err != nil {
		return err
	}

	n := network.New(network.Clones(comp, *size))
	n.NATAddress = c.cfg.Network.NATAddress
	n.MaxRounds = c.cfg.Network.MaxRounds

	if *nat {
		y, err := n.RepeatedNATDelivery()
		if err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, y)
	} else {
		p, err := n.FirstNATPacket()
		if err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, p.Y)
	}
	log.Infof("%d rounds, %d packets", n.Rounds(), n.Packets())
	return nil
}
