// Package intcode implements the Intcode computer: a virtual machine whose
// growable flat memory holds both the program and its data.
//
// An instruction is an integer V followed by its parameters. The opcode is
// V % 100; the parameter modes are the decimal digits of V / 100, read
// least-significant first, one digit per parameter:
//
//	 1002,4,3,4
//	  ||└┴─ opcode 02 (MUL)
//	  |└─── param 1 mode 0 (position)
//	  └──── param 2 mode 1 (immediate); param 3 has no digit, mode 0
//
// Instructions are decoded from live memory at every fetch, never ahead of
// time, so a program that overwrites its own upcoming instructions sees the
// new values (self-modifying code).
//
// The computer never blocks. An INPUT instruction with an empty input queue
// leaves the program counter where it is and returns machine.Suspended from
// Exec; push more input and call Exec again to resume.
package intcode
