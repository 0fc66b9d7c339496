// Package machine holds the vocabulary shared by the virtual machines in this
// module: the execution State, the Storage capability, the IO queues and the
// error taxonomy.
//
// # Execution model
//
// A machine is a plain state machine driven by its caller. Step executes one
// instruction; Exec steps until the machine halts or suspends. Nothing here
// starts goroutines or blocks a native thread:
//
//   - Running: the machine can make progress
//   - Suspended: an input instruction found the input queue empty. The
//     program counter was not advanced, so calling Exec again after
//     IO.PushInput retries the same instruction from scratch
//   - Halted: terminal. Further Step calls are no-ops
//
// Many machines can share one control flow. A scheduler (see package network)
// moves values from one machine's output queue into another's input queue
// between Exec calls.
//
// # Storage
//
// Two storage models implement Storage: a small set of named registers and a
// growable flat memory. Reading a cell that was never written yields zero.
package machine
