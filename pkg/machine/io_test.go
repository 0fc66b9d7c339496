package machine

import (
	"errors"
	"fmt"
	"testing"
)

func TestIOInputFIFO(t *testing.T) {
	io := NewIO(1, 2)
	io.PushInput(3)

	for _, want := range []int64{1, 2, 3} {
		got, ok := io.PopInput()
		if !ok {
			t.Fatalf("PopInput: queue empty, want %d", want)
		}
		if got != want {
			t.Errorf("PopInput = %d, want %d", got, want)
		}
	}
	if _, ok := io.PopInput(); ok {
		t.Error("PopInput on empty queue should report false")
	}
	if io.PendingInput() != 0 {
		t.Errorf("PendingInput = %d, want 0", io.PendingInput())
	}
}

func TestIOLongQueueCompacts(t *testing.T) {
	io := NewIO()
	for i := 0; i < 1000; i++ {
		io.PushInput(int64(i))
	}
	for i := 0; i < 1000; i++ {
		got, ok := io.PopInput()
		if !ok || got != int64(i) {
			t.Fatalf("PopInput #%d = %d, %v", i, got, ok)
		}
		if i%7 == 0 {
			io.PushInput(int64(1000 + i))
		}
	}
	want := int64(1000)
	for io.PendingInput() > 0 {
		got, _ := io.PopInput()
		if got != want {
			t.Fatalf("tail value = %d, want %d", got, want)
		}
		want += 7
	}
}

func TestIODrainOutput(t *testing.T) {
	io := NewIO()
	io.PushOutput(10)
	io.PushOutput(20)
	io.PushOutput(30)

	if v, ok := io.PopOutput(); !ok || v != 10 {
		t.Fatalf("PopOutput = %d, %v; want 10", v, ok)
	}
	if v, ok := io.LastOutput(); !ok || v != 30 {
		t.Errorf("LastOutput = %d, %v; want 30", v, ok)
	}

	got := io.DrainOutput()
	if fmt.Sprint(got) != "[20 30]" {
		t.Errorf("DrainOutput = %v, want [20 30]", got)
	}
	if len(io.DrainOutput()) != 0 {
		t.Error("second DrainOutput should be empty")
	}
	if _, ok := io.LastOutput(); ok {
		t.Error("LastOutput after drain should report false")
	}
}

func TestIOClone(t *testing.T) {
	io := NewIO(1, 2)
	io.PushOutput(9)

	c := io.Clone()
	c.PushInput(3)
	c.PopOutput()

	if io.PendingInput() != 2 {
		t.Errorf("original input changed: %v", io.Input())
	}
	if io.PendingOutput() != 1 {
		t.Errorf("original output changed: %v", io.Output())
	}
	if fmt.Sprint(c.Input()) != "[1 2 3]" {
		t.Errorf("clone input = %v", c.Input())
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{Running, "RUNNING"},
		{Suspended, "SUSPENDED"},
		{Halted, "HALTED"},
		{State(9), "STATE(9)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
	if Running.Done() || !Suspended.Done() || !Halted.Done() {
		t.Error("Done() reports wrong terminal states")
	}
}

func TestErrorWrapping(t *testing.T) {
	err := fmt.Errorf("loading: %w", &DecodeError{PC: 4, Value: 42, Err: ErrUnknownOpcode})
	if !errors.Is(err, ErrUnknownOpcode) {
		t.Error("errors.Is should see ErrUnknownOpcode through DecodeError")
	}
	de, ok := IsDecodeError(err)
	if !ok || de.PC != 4 {
		t.Errorf("IsDecodeError = %v, %v", de, ok)
	}
	if _, ok := IsParseError(err); ok {
		t.Error("DecodeError should not match IsParseError")
	}

	pe := &ParseError{Line: 2, Text: "foo a", Err: ErrUnknownMnemonic}
	if !errors.Is(pe, ErrUnknownMnemonic) {
		t.Error("errors.Is should see ErrUnknownMnemonic through ParseError")
	}
}
