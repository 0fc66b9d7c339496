// Package regmachine implements a register machine: a program of mnemonic
// instructions operating on single-letter registers.
//
// The instruction set is the union of the dialects used by several puzzle
// years (cpy/inc/dec/jnz/tgl/out, set/add/mul/mod/snd/rcv/jgz, hlf/tpl/jmp/
// jie/jio). Jump offsets are relative to the jumping instruction. Running off
// either end of the program halts the machine.
//
// The tgl instruction rewrites another instruction of the running program
// according to a fixed substitution table (see Opcode.Toggled). A toggle can
// produce an instruction that cannot execute, such as "cpy 1 2"; it stays in
// the program and is skipped when reached.
//
// snd and out append to the machine's output queue; rcv consumes from the
// input queue and suspends the machine when it is empty, which is what lets
// two machines run as a duet (see package network).
package regmachine
