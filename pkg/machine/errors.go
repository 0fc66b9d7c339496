package machine

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOpcode is returned when an instruction has no mapping in the
	// machine's opcode table.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrImmediateWrite is returned when an instruction would write through an
	// immediate operand.
	ErrImmediateWrite = errors.New("write to immediate operand")

	// ErrInvalidMode is returned for an Intcode parameter mode digit other
	// than 0, 1 or 2.
	ErrInvalidMode = errors.New("invalid parameter mode")

	// ErrAddressOutOfRange is returned when an effective address is negative.
	ErrAddressOutOfRange = errors.New("address out of range")

	// ErrDivideByZero is returned by division and modulo instructions.
	ErrDivideByZero = errors.New("division by zero")

	// ErrUnknownMnemonic is returned by parsers for an unrecognised
	// instruction name.
	ErrUnknownMnemonic = errors.New("unknown mnemonic")

	// ErrBadOperand is returned by parsers for an operand that is neither an
	// integer nor a register name.
	ErrBadOperand = errors.New("bad operand")

	// ErrArity is returned by parsers when an instruction has the wrong
	// number of operands.
	ErrArity = errors.New("wrong number of operands")
)

// ParseError reports malformed program text. Line is 1-based; for
// comma-separated Intcode it is the 1-based position of the value.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d (%q): %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DecodeError reports an instruction that cannot be executed. The machine
// that produced it is halted.
type DecodeError struct {
	PC    int
	Value int64 // Raw instruction value (Intcode) or opcode (register model)
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error at pc=%d (value %d): %v", e.PC, e.Value, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecodeError checks if an error is a DecodeError and returns it.
func IsDecodeError(err error) (*DecodeError, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsParseError checks if an error is a ParseError and returns it.
func IsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
