// Package snapshot serializes machine state and keeps it in a SQLite store.
package snapshot

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/vcpu/pkg/intcode"
	"github.com/chazu/vcpu/pkg/regmachine"
)

// Kind names the machine model a snapshot belongs to.
type Kind string

const (
	KindIntcode  Kind = "intcode"
	KindRegister Kind = "register"
)

// ErrKind is returned when an envelope does not hold the expected model.
var ErrKind = errors.New("snapshot: wrong machine kind")

// cborEncMode uses canonical encoding so equal states produce equal bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("snapshot: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Envelope holds the snapshot of exactly one machine.
type Envelope struct {
	Kind     Kind                 `cbor:"1,keyasint"`
	Intcode  *intcode.Snapshot    `cbor:"2,keyasint,omitempty"`
	Register *regmachine.Snapshot `cbor:"3,keyasint,omitempty"`
}

// FromComputer captures an Intcode computer.
func FromComputer(c *intcode.Computer) *Envelope {
	return &Envelope{Kind: KindIntcode, Intcode: c.Snapshot()}
}

// FromMachine captures a register machine.
func FromMachine(m *regmachine.Machine) *Envelope {
	return &Envelope{Kind: KindRegister, Register: m.Snapshot()}
}

// Computer restores the Intcode computer held by e.
func (e *Envelope) Computer() (*intcode.Computer, error) {
	if e.Kind != KindIntcode || e.Intcode == nil {
		return nil, fmt.Errorf("%w: have %s, want %s", ErrKind, e.Kind, KindIntcode)
	}
	return intcode.Restore(e.Intcode), nil
}

// Machine restores the register machine held by e.
func (e *Envelope) Machine() (*regmachine.Machine, error) {
	if e.Kind != KindRegister || e.Register == nil {
		return nil, fmt.Errorf("%w: have %s, want %s", ErrKind, e.Kind, KindRegister)
	}
	return regmachine.Restore(e.Register), nil
}

// Steps returns the step counter of the captured machine.
func (e *Envelope) Steps() uint64 {
	switch {
	case e.Intcode != nil:
		return e.Intcode.Steps
	case e.Register != nil:
		return e.Register.Steps
	}
	return 0
}

// Marshal serializes an Envelope to CBOR bytes.
func Marshal(e *Envelope) ([]byte, error) {
	return cborEncMode.Marshal(e)
}

// Unmarshal deserializes an Envelope from CBOR bytes.
func Unmarshal(data []byte) (*Envelope, error) {
	var e Envelope
	if err := cbor.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("snapshot: unmarshal envelope: %w", err)
	}
	switch e.Kind {
	case KindIntcode, KindRegister:
	default:
		return nil, fmt.Errorf("%w %q", ErrKind, e.Kind)
	}
	return &e, nil
}
