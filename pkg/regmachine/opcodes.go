package regmachine

import "fmt"

// Opcode identifies a register-machine instruction. The zero value is not a
// valid opcode.
type Opcode uint8

const (
	OpNop Opcode = iota + 1 // nop
	OpCpy                   // cpy x r: r = x
	OpSet                   // set r x: r = x
	OpInc                   // inc r: r++
	OpDec                   // dec r: r--
	OpAdd                   // add r x: r += x
	OpSub                   // sub r x: r -= x
	OpMul                   // mul r x: r *= x
	OpDiv                   // div r x: r /= x
	OpMod                   // mod r x: r %= x
	OpHlf                   // hlf r: r /= 2
	OpTpl                   // tpl r: r *= 3
	OpJmp                   // jmp o: pc += o
	OpJnz                   // jnz x o: if x != 0, pc += o
	OpJgz                   // jgz x o: if x > 0, pc += o
	OpJie                   // jie x o: if x is even, pc += o
	OpJio                   // jio x o: if x == 1, pc += o
	OpTgl                   // tgl x: toggle instruction at pc + x
	OpSnd                   // snd x: emit x
	OpOut                   // out x: emit x
	OpRcv                   // rcv r: r = next input, or suspend

	numOpcodes
)

// ArgKind describes what an instruction argument may be.
type ArgKind uint8

const (
	ArgValue    ArgKind = iota // Immediate or register, read only
	ArgRegister                // Must be a register, written
)

// OpcodeInfo provides metadata about each opcode.
type OpcodeInfo struct {
	Mnemonic string
	Args     []ArgKind
}

var opcodeInfoTable = map[Opcode]OpcodeInfo{
	OpNop: {"nop", nil},
	OpCpy: {"cpy", []ArgKind{ArgValue, ArgRegister}},
	OpSet: {"set", []ArgKind{ArgRegister, ArgValue}},
	OpInc: {"inc", []ArgKind{ArgRegister}},
	OpDec: {"dec", []ArgKind{ArgRegister}},
	OpAdd: {"add", []ArgKind{ArgRegister, ArgValue}},
	OpSub: {"sub", []ArgKind{ArgRegister, ArgValue}},
	OpMul: {"mul", []ArgKind{ArgRegister, ArgValue}},
	OpDiv: {"div", []ArgKind{ArgRegister, ArgValue}},
	OpMod: {"mod", []ArgKind{ArgRegister, ArgValue}},
	OpHlf: {"hlf", []ArgKind{ArgRegister}},
	OpTpl: {"tpl", []ArgKind{ArgRegister}},
	OpJmp: {"jmp", []ArgKind{ArgValue}},
	OpJnz: {"jnz", []ArgKind{ArgValue, ArgValue}},
	OpJgz: {"jgz", []ArgKind{ArgValue, ArgValue}},
	OpJie: {"jie", []ArgKind{ArgValue, ArgValue}},
	OpJio: {"jio", []ArgKind{ArgValue, ArgValue}},
	OpTgl: {"tgl", []ArgKind{ArgValue}},
	OpSnd: {"snd", []ArgKind{ArgValue}},
	OpOut: {"out", []ArgKind{ArgValue}},
	OpRcv: {"rcv", []ArgKind{ArgRegister}},
}

// mnemonics is the reverse of opcodeInfoTable.
var mnemonics = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeInfoTable))
	for op, info := range opcodeInfoTable {
		m[info.Mnemonic] = op
	}
	return m
}()

// toggleTable is the tgl substitution table. Opcodes not listed fall back by
// arity: one-argument instructions become inc, two-argument ones become jnz.
var toggleTable = map[Opcode]Opcode{
	OpInc: OpDec,
	OpDec: OpInc,
	OpTgl: OpInc,
	OpJnz: OpCpy,
	OpCpy: OpJnz,
	OpAdd: OpSub,
	OpSub: OpAdd,
}

// LookupMnemonic returns the opcode for a mnemonic.
func LookupMnemonic(name string) (Opcode, bool) {
	op, ok := mnemonics[name]
	return op, ok
}

// Info returns the opcode's metadata and whether it is defined.
func (op Opcode) Info() (OpcodeInfo, bool) {
	info, ok := opcodeInfoTable[op]
	return info, ok
}

// Arity returns the number of arguments the opcode takes.
func (op Opcode) Arity() int {
	return len(opcodeInfoTable[op].Args)
}

func (op Opcode) String() string {
	if info, ok := opcodeInfoTable[op]; ok {
		return info.Mnemonic
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// IsJump returns true if the opcode may move the program counter somewhere
// other than the next instruction.
func (op Opcode) IsJump() bool {
	return op >= OpJmp && op <= OpJio
}

// Toggled returns the opcode tgl turns op into. The result always has the
// same arity as op.
func (op Opcode) Toggled() Opcode {
	if t, ok := toggleTable[op]; ok {
		return t
	}
	switch op.Arity() {
	case 1:
		return OpInc
	case 2:
		return OpJnz
	}
	return op
}
