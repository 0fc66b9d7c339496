package machine

// queue is an unbounded FIFO of int64 backed by a slice with a moving head.
// The consumed prefix is dropped once it outweighs the live tail.
type queue struct {
	buf  []int64
	head int
}

func (q *queue) push(vals ...int64) {
	q.buf = append(q.buf, vals...)
}

func (q *queue) pop() (int64, bool) {
	if q.head >= len(q.buf) {
		return 0, false
	}
	v := q.buf[q.head]
	q.head++
	if q.head == len(q.buf) {
		q.buf = q.buf[:0]
		q.head = 0
	} else if q.head > 32 && q.head*2 > len(q.buf) {
		n := copy(q.buf, q.buf[q.head:])
		q.buf = q.buf[:n]
		q.head = 0
	}
	return v, true
}

func (q *queue) len() int {
	return len(q.buf) - q.head
}

func (q *queue) items() []int64 {
	out := make([]int64, q.len())
	copy(out, q.buf[q.head:])
	return out
}

func (q *queue) drain() []int64 {
	out := q.items()
	q.buf = q.buf[:0]
	q.head = 0
	return out
}

func (q *queue) clone() queue {
	return queue{buf: q.items()}
}

// IO is a machine's channel to the outside world: a queue of pending input
// values and a queue of produced output values. Both are unbounded and
// consumed strictly in FIFO order.
//
// IO never blocks. An empty input queue makes PopInput report false, which
// the owning machine turns into the Suspended state.
type IO struct {
	input  queue
	output queue
}

// NewIO creates an IO whose input queue is pre-seeded with vals.
func NewIO(vals ...int64) *IO {
	io := &IO{}
	io.input.push(vals...)
	return io
}

// PushInput appends values to the tail of the input queue.
func (io *IO) PushInput(vals ...int64) {
	io.input.push(vals...)
}

// PopInput removes and returns the oldest pending input value.
// Returns false when no input is pending.
func (io *IO) PopInput() (int64, bool) {
	return io.input.pop()
}

// PendingInput returns the number of unconsumed input values.
func (io *IO) PendingInput() int {
	return io.input.len()
}

// Input returns a copy of the pending input values, oldest first.
func (io *IO) Input() []int64 {
	return io.input.items()
}

// PushOutput appends a value to the output queue.
func (io *IO) PushOutput(v int64) {
	io.output.push(v)
}

// PopOutput removes and returns the oldest produced output value.
func (io *IO) PopOutput() (int64, bool) {
	return io.output.pop()
}

// PendingOutput returns the number of output values not yet consumed.
func (io *IO) PendingOutput() int {
	return io.output.len()
}

// Output returns a copy of the unconsumed output values without consuming
// them.
func (io *IO) Output() []int64 {
	return io.output.items()
}

// LastOutput returns the most recently produced value still in the queue.
func (io *IO) LastOutput() (int64, bool) {
	if io.output.len() == 0 {
		return 0, false
	}
	return io.output.buf[len(io.output.buf)-1], true
}

// DrainOutput consumes and returns everything produced so far, in order.
func (io *IO) DrainOutput() []int64 {
	return io.output.drain()
}

// Clone returns an independent copy of both queues.
func (io *IO) Clone() *IO {
	return &IO{input: io.input.clone(), output: io.output.clone()}
}
