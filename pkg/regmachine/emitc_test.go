package regmachine

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, text string) []Instruction {
	t.Helper()
	prog, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return prog
}

func TestEmitC(t *testing.T) {
	prog := mustParse(t, "cpy 41 a\ninc a\ninc a\ndec a\njnz a 2\ndec a")

	got, err := EmitC(prog, nil, []byte{'a'})
	if err != nil {
		t.Fatalf("EmitC failed: %v", err)
	}
	want := `#include <stdio.h>

int main(void) {
	long long a = 0;

	a = 41;
	a += 1;
	a += 1;
	a -= 1;
	if (a != 0) goto L6;
	a -= 1;
L6:	;
	printf("%lld\n", a);
	return 0;
}
`
	if got != want {
		t.Errorf("EmitC =\n%s\nwant\n%s", got, want)
	}
}

func TestEmitCInitialRegisters(t *testing.T) {
	prog := mustParse(t, "jio a, +2\ntpl a\ninc b\njmp -3")
	regs := NewRegisters()
	regs.Set('a', 1)

	got, err := EmitC(prog, regs, []byte{'b'})
	if err != nil {
		t.Fatalf("EmitC failed: %v", err)
	}
	want := `#include <stdio.h>

int main(void) {
	long long a = 1;
	long long b = 0;

L0:	if (a == 1) goto L2;
	a *= 3;
L2:	b += 1;
	goto L0;
	printf("%lld\n", b);
	return 0;
}
`
	if got != want {
		t.Errorf("EmitC =\n%s\nwant\n%s", got, want)
	}
}

func TestEmitCPatch(t *testing.T) {
	prog := mustParse(t, "cpy 5 a\ninc b\ndec a\njnz a -2")

	got, err := EmitC(prog, nil, []byte{'b'}, Patch{From: 1, To: 3, Code: "b += a;\na = 0;\n"})
	if err != nil {
		t.Fatalf("EmitC failed: %v", err)
	}
	want := `#include <stdio.h>

int main(void) {
	long long a = 0;
	long long b = 0;

	a = 5;
	b += a;
	a = 0;
	printf("%lld\n", b);
	return 0;
}
`
	if got != want {
		t.Errorf("EmitC =\n%s\nwant\n%s", got, want)
	}
}

func TestEmitCErrors(t *testing.T) {
	tests := []struct {
		name    string
		program string
		patches []Patch
		want    error
	}{
		{"toggle", "tgl a", nil, ErrNoCForm},
		{"send", "set a 1\nsnd a", nil, ErrNoCForm},
		{"receive", "rcv a", nil, ErrNoCForm},
		{"register offset", "cpy 2 b\njnz a b", nil, ErrDynamicJump},
		{"patch out of range", "inc a", []Patch{{From: 0, To: 1}}, nil},
		{"overlapping patches", "inc a\ninc a\ninc a", []Patch{{From: 0, To: 1}, {From: 1, To: 2}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EmitC(mustParse(t, tt.program), nil, nil, tt.patches...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEmitCPatchHidesUnsupported(t *testing.T) {
	prog := mustParse(t, "inc a\nrcv b\ninc a")
	if _, err := EmitC(prog, nil, []byte{'a'}, Patch{From: 1, To: 1, Code: "b = 0;"}); err != nil {
		t.Errorf("EmitC failed: %v", err)
	}
}
