package intcode

import (
	"errors"
	"strconv"
	"strings"

	"github.com/chazu/vcpu/pkg/machine"
)

var errEmptyProgram = errors.New("empty program")

// Parse reads comma-separated signed integers. Whitespace around values and
// a trailing comma or newline are accepted.
func Parse(text string) ([]int64, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, ",")
	if text == "" {
		return nil, &machine.ParseError{Line: 1, Err: errEmptyProgram}
	}

	fields := strings.Split(text, ",")
	program := make([]int64, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, &machine.ParseError{Line: i + 1, Text: f, Err: machine.ErrBadOperand}
		}
		program[i] = v
	}
	return program, nil
}
