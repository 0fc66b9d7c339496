package network

import (
	"errors"
	"slices"
	"testing"

	"github.com/chazu/vcpu/pkg/intcode"
	"github.com/chazu/vcpu/pkg/machine"
	"github.com/chazu/vcpu/pkg/regmachine"
)

// nicProgram reads its address, announces itself to the NAT with
// (255, addr, addr+100), and from then on forwards every packet it
// receives to the NAT unchanged. A -1 read is ignored.
const nicProgram = "3,33,104,255,4,33,1001,33,100,36,4,36," +
	"3,34,1008,34,-1,36,1005,36,12," +
	"3,35,104,255,4,34,4,35,1105,1,12,99,0,0,0,0"

func mustComputer(t *testing.T, text string) *intcode.Computer {
	t.Helper()
	c, err := intcode.Load(text)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return c
}

func mustMachine(t *testing.T, text string) *regmachine.Machine {
	t.Helper()
	m, err := regmachine.Load(text)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return m
}

// relay is a scripted node: on each Exec it consumes its input and emits
// whatever react returns.
type relay struct {
	io    *machine.IO
	react func(in []int64) []int64
	seen  [][]int64
}

func newRelay(react func(in []int64) []int64) *relay {
	return &relay{io: machine.NewIO(), react: react}
}

func (r *relay) IO() *machine.IO { return r.io }

func (r *relay) Exec() (machine.State, error) {
	var in []int64
	for {
		v, ok := r.io.PopInput()
		if !ok {
			break
		}
		in = append(in, v)
	}
	r.seen = append(r.seen, in)
	for _, v := range r.react(in) {
		r.io.PushOutput(v)
	}
	return machine.Suspended, nil
}

// ============ NAT network ============

func TestFirstNATPacket(t *testing.T) {
	n := New(Clones(mustComputer(t, nicProgram), 4))
	p, err := n.FirstNATPacket()
	if err != nil {
		t.Fatalf("FirstNATPacket failed: %v", err)
	}
	if p != (Packet{Dest: 255, X: 0, Y: 100}) {
		t.Errorf("first NAT packet = %s, want 255<-(0,100)", p)
	}
	if n.Rounds() != 1 {
		t.Errorf("Rounds = %d, want 1", n.Rounds())
	}
}

func TestRepeatedNATDelivery(t *testing.T) {
	n := New(Clones(mustComputer(t, nicProgram), 4))
	y, err := n.RepeatedNATDelivery()
	if err != nil {
		t.Fatalf("RepeatedNATDelivery failed: %v", err)
	}
	if y != 103 {
		t.Errorf("repeated Y = %d, want 103", y)
	}
	if n.Packets() != 5 {
		t.Errorf("Packets = %d, want 5", n.Packets())
	}
	if p, ok := n.NAT(); !ok || p.X != 3 {
		t.Errorf("NAT holds %v, %v", p, ok)
	}
}

func TestNetworkDeliversBetweenNodes(t *testing.T) {
	var nodes []Process
	// Node 0 sends one packet to node 2 at boot.
	nodes = append(nodes, newRelay(func(in []int64) []int64 {
		if slices.Equal(in, []int64{0}) {
			return []int64{2, 7, 8}
		}
		return nil
	}))
	nodes = append(nodes, newRelay(func([]int64) []int64 { return nil }))
	// Node 2 forwards packets to the NAT and half-sends to a bad address.
	nodes = append(nodes, newRelay(func(in []int64) []int64 {
		if len(in) == 3 {
			return []int64{255, in[1], in[2], 99, 1, 1, 1}
		}
		return nil
	}))

	n := New(nodes)
	p, err := n.FirstNATPacket()
	if err != nil {
		t.Fatalf("FirstNATPacket failed: %v", err)
	}
	if p.X != 7 || p.Y != 8 {
		t.Errorf("NAT packet = %s, want (7,8)", p)
	}

	// The packet from node 0 lands before node 2's first turn.
	if seen := nodes[2].(*relay).seen; !slices.Equal(seen[0], []int64{2, 7, 8}) {
		t.Errorf("node 2 saw %v", seen)
	}

	if _, err := n.Round(); err != nil {
		t.Fatalf("Round failed: %v", err)
	}
	if !slices.Equal(nodes[1].(*relay).seen[1], []int64{NoPacket}) {
		t.Errorf("idle node 1 saw %v, want -1", nodes[1].(*relay).seen[1])
	}
	if got := nodes[2].IO().PendingOutput(); got != 1 {
		t.Errorf("incomplete packet left %d values, want 1", got)
	}
}

func TestNetworkRoundLimit(t *testing.T) {
	n := New(Clones(mustComputer(t, "3,5,1105,1,0,0"), 2))
	n.MaxRounds = 10
	if _, err := n.FirstNATPacket(); !errors.Is(err, ErrRoundLimit) {
		t.Errorf("FirstNATPacket error = %v, want ErrRoundLimit", err)
	}
	if _, err := n.RepeatedNATDelivery(); !errors.Is(err, ErrRoundLimit) {
		t.Errorf("RepeatedNATDelivery error = %v, want ErrRoundLimit", err)
	}
}

func TestNetworkNodeFault(t *testing.T) {
	n := New(Clones(mustComputer(t, "3,0,77"), 2))
	if _, err := n.Round(); !errors.Is(err, machine.ErrUnknownOpcode) {
		t.Errorf("Round error = %v, want ErrUnknownOpcode", err)
	}
}

// ============ Amplifier chains ============

func TestChain(t *testing.T) {
	tests := []struct {
		program  string
		phases   []int64
		feedback bool
		want     int64
	}{
		{"3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0", []int64{4, 3, 2, 1, 0}, false, 43210},
		{"3,23,3,24,1002,24,10,24,1002,23,-1,23,101,5,23,23,1,24,23,23,4,23,99,0,0",
			[]int64{0, 1, 2, 3, 4}, false, 54321},
		{"3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5",
			[]int64{9, 8, 7, 6, 5}, true, 139629729},
	}

	for _, tt := range tests {
		got, err := Chain(mustComputer(t, tt.program), tt.phases, 0, tt.feedback)
		if err != nil {
			t.Fatalf("Chain(%v) failed: %v", tt.phases, err)
		}
		if got != tt.want {
			t.Errorf("Chain(%v) = %d, want %d", tt.phases, got, tt.want)
		}
	}
}

func TestBestChain(t *testing.T) {
	proto := mustComputer(t, "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0")
	signal, order, err := BestChain(proto, []int64{0, 1, 2, 3, 4}, 0, false)
	if err != nil {
		t.Fatalf("BestChain failed: %v", err)
	}
	if signal != 43210 || !slices.Equal(order, []int64{4, 3, 2, 1, 0}) {
		t.Errorf("BestChain = %d %v, want 43210 [4 3 2 1 0]", signal, order)
	}
	if proto.Steps() != 0 {
		t.Error("BestChain ran the prototype")
	}
}

func TestChainErrors(t *testing.T) {
	if _, err := Chain(mustComputer(t, "99"), []int64{1}, 0, false); !errors.Is(err, ErrNoOutput) {
		t.Errorf("Chain without output = %v, want ErrNoOutput", err)
	}
	// Reads forever without ever writing.
	if _, err := Chain(mustComputer(t, "3,0,3,0,3,0,99"), []int64{1, 2}, 0, true); !errors.Is(err, ErrDeadlock) {
		t.Errorf("starved feedback chain = %v, want ErrDeadlock", err)
	}
	if _, err := Chain(mustComputer(t, "99"), nil, 0, false); err == nil {
		t.Error("empty chain should fail")
	}
}

// ============ Duet ============

func TestDuet(t *testing.T) {
	const program = "snd 1\nsnd 2\nsnd p\nrcv a\nrcv b\nrcv c\nrcv d"
	a := mustMachine(t, program)
	b := mustMachine(t, program)
	b.Registers().Set('p', 1)

	res, err := Duet(a, b)
	if err != nil {
		t.Fatalf("Duet failed: %v", err)
	}
	if res.SentA != 3 || res.SentB != 3 {
		t.Errorf("sent %d / %d, want 3 / 3", res.SentA, res.SentB)
	}
	if !res.Deadlock {
		t.Error("expected deadlock")
	}
	if a.Registers().Get('c') != 1 || b.Registers().Get('c') != 0 {
		t.Errorf("c = %d / %d, want 1 / 0", a.Registers().Get('c'), b.Registers().Get('c'))
	}
}

func TestDuetBothHalt(t *testing.T) {
	a := mustMachine(t, "snd 5\nrcv x")
	b := mustMachine(t, "rcv x\nsnd x\nsnd x")

	res, err := Duet(a, b)
	if err != nil {
		t.Fatalf("Duet failed: %v", err)
	}
	if res.Deadlock {
		t.Error("unexpected deadlock")
	}
	if res.SentA != 1 || res.SentB != 2 {
		t.Errorf("sent %d / %d, want 1 / 2", res.SentA, res.SentB)
	}
	if a.State() != machine.Halted || b.State() != machine.Halted {
		t.Errorf("states %s / %s", a.State(), b.State())
	}
}

func TestDuetPartnerHaltsWithUnreadInput(t *testing.T) {
	// a halts right away; what b sends back is never read.
	a := mustMachine(t, "snd 1")
	b := mustMachine(t, "rcv x\nsnd x\nrcv y")

	res, err := Duet(a, b)
	if err != nil {
		t.Fatalf("Duet failed: %v", err)
	}
	if !res.Deadlock {
		t.Error("expected deadlock")
	}
	if res.SentA != 1 || res.SentB != 1 {
		t.Errorf("sent %d / %d, want 1 / 1", res.SentA, res.SentB)
	}
	if a.State() != machine.Halted || b.State() != machine.Suspended {
		t.Errorf("states %s / %s, want halted / suspended", a.State(), b.State())
	}
	if a.IO().PendingInput() != 1 {
		t.Errorf("a pending input = %d, want 1", a.IO().PendingInput())
	}
}

func TestMixedProcesses(t *testing.T) {
	// An Intcode doubler talking to a register machine.
	doubler := mustComputer(t, "3,9,1002,9,2,9,4,9,99,0")
	m := mustMachine(t, "snd 21\nrcv a")

	res, err := Duet(m, doubler)
	if err != nil {
		t.Fatalf("Duet failed: %v", err)
	}
	if res.Deadlock || m.Registers().Get('a') != 42 {
		t.Errorf("a = %d, deadlock=%v", m.Registers().Get('a'), res.Deadlock)
	}
}
