package intcode

import "fmt"

// Opcode is the operation identifier of an Intcode instruction (V % 100).
type Opcode int64

const (
	OpAdd         Opcode = 1  // p3 = p1 + p2
	OpMul         Opcode = 2  // p3 = p1 * p2
	OpInput       Opcode = 3  // p1 = next input, or suspend
	OpOutput      Opcode = 4  // emit p1
	OpJumpIfTrue  Opcode = 5  // if p1 != 0: pc = p2
	OpJumpIfFalse Opcode = 6  // if p1 == 0: pc = p2
	OpLessThan    Opcode = 7  // p3 = p1 < p2 ? 1 : 0
	OpEquals      Opcode = 8  // p3 = p1 == p2 ? 1 : 0
	OpAdjustBase  Opcode = 9  // relative base += p1
	OpHalt        Opcode = 99 // stop
)

// OpcodeInfo provides metadata about each opcode for decoding and
// disassembly.
type OpcodeInfo struct {
	Name       string // Human-readable name
	ParamCount int    // Number of parameters following the opcode
	WriteParam int    // 0-based index of the destination parameter, -1 if none
}

var opcodeInfoTable = map[Opcode]OpcodeInfo{
	OpAdd:         {"ADD", 3, 2},
	OpMul:         {"MUL", 3, 2},
	OpInput:       {"IN", 1, 0},
	OpOutput:      {"OUT", 1, -1},
	OpJumpIfTrue:  {"JT", 2, -1},
	OpJumpIfFalse: {"JF", 2, -1},
	OpLessThan:    {"LT", 3, 2},
	OpEquals:      {"EQ", 3, 2},
	OpAdjustBase:  {"ARB", 1, -1},
	OpHalt:        {"HALT", 0, -1},
}

// LookupOpcode returns the metadata for op and whether op is defined.
func LookupOpcode(op Opcode) (OpcodeInfo, bool) {
	info, ok := opcodeInfoTable[op]
	return info, ok
}

// String returns the human-readable name of an opcode.
func (op Opcode) String() string {
	if info, ok := opcodeInfoTable[op]; ok {
		return info.Name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int64(op))
}

// Width returns the number of memory cells the instruction occupies.
// Unknown opcodes have width 1.
func (op Opcode) Width() int {
	return 1 + opcodeInfoTable[op].ParamCount
}

// IsJump returns true if this opcode may assign the program counter.
func (op Opcode) IsJump() bool {
	return op == OpJumpIfTrue || op == OpJumpIfFalse
}
