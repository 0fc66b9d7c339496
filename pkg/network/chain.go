package network

import (
	"fmt"

	"github.com/chazu/vcpu/pkg/machine"
	"github.com/chazu/vcpu/pkg/search"
)

// Chain wires one clone of proto per phase in series. Each amplifier first
// receives its phase setting; the first also receives seed. Every output of
// amplifier i becomes input of amplifier i+1. With feedback the last
// amplifier's output is routed back to the first and the chain runs until
// the last amplifier halts.
//
// Chain returns the last value the final amplifier produced.
func Chain[P Cloner[P]](proto P, phases []int64, seed int64, feedback bool) (int64, error) {
	if len(phases) == 0 {
		return 0, fmt.Errorf("network: chain needs at least one phase")
	}
	amps := Clones(proto, len(phases))
	for i, phase := range phases {
		amps[i].IO().PushInput(phase)
	}
	amps[0].IO().PushInput(seed)

	end := len(amps) - 1
	var signal int64
	haveSignal := false

	for {
		moved := 0
		var st machine.State
		for i, amp := range amps {
			var err error
			if st, err = amp.Exec(); err != nil {
				return 0, fmt.Errorf("network: amplifier %d: %w", i, err)
			}
			if i < end {
				moved += transfer(amp, amps[i+1])
				continue
			}
			out := amp.IO().DrainOutput()
			if len(out) > 0 {
				signal, haveSignal = out[len(out)-1], true
			}
			if feedback {
				amps[0].IO().PushInput(out...)
				moved += len(out)
			}
		}

		if !feedback || st == machine.Halted {
			break
		}
		if moved == 0 {
			return 0, ErrDeadlock
		}
	}

	if !haveSignal {
		return 0, ErrNoOutput
	}
	return signal, nil
}

// BestChain tries every ordering of phases and returns the highest signal
// together with the ordering that produced it.
func BestChain[P Cloner[P]](proto P, phases []int64, seed int64, feedback bool) (int64, []int64, error) {
	var best int64
	var order []int64
	for _, perm := range search.Permutations(phases) {
		signal, err := Chain(proto, perm, seed, feedback)
		if err != nil {
			return 0, nil, fmt.Errorf("phases %v: %w", perm, err)
		}
		if order == nil || signal > best {
			best, order = signal, perm
		}
	}
	return best, order, nil
}
