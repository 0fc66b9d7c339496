// Package network connects machines through their IO queues.
//
// Everything here is scheduled cooperatively on the calling goroutine: a
// scheduler executes one process until it halts or suspends for input, moves
// whatever it produced to the right input queues, and moves on to the next.
// Any type with Exec and IO methods can take part, so Intcode computers and
// register machines can be mixed.
//
// Three topologies are provided:
//
//   - Network: N nodes exchanging (dest, x, y) packets, with a NAT monitor
//     at address 255 that wakes node 0 whenever the network goes idle.
//   - Chain: amplifiers wired in series, optionally with the last one
//     feeding back into the first.
//   - Duet: two processes whose outputs are each other's inputs.
package network
