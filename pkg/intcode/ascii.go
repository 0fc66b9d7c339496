package intcode

import (
	"strings"

	"github.com/chazu/vcpu/pkg/machine"
)

// Newline is the character code ASCII-capable programs use to end a line.
const Newline = 10

// SendLine queues the character codes of text followed by Newline.
func SendLine(io *machine.IO, text string) {
	for i := 0; i < len(text); i++ {
		io.PushInput(int64(text[i]))
	}
	io.PushInput(Newline)
}

// ReadText drains io's output, returning the ASCII part as text. Values
// outside 0..127 cannot be characters; they are returned separately in the
// order produced. Programs use them to report a final numeric answer.
func ReadText(io *machine.IO) (string, []int64) {
	var sb strings.Builder
	var extra []int64
	for _, v := range io.DrainOutput() {
		if v < 0 || v > 127 {
			extra = append(extra, v)
			continue
		}
		sb.WriteByte(byte(v))
	}
	return sb.String(), extra
}
