package network

import (
	"fmt"
)

const (
	// DefaultNATAddress is the address the NAT monitor listens on.
	DefaultNATAddress = 255

	// DefaultMaxRounds bounds FirstNATPacket and RepeatedNATDelivery.
	DefaultMaxRounds = 100_000

	// NoPacket is the input a node receives when its queue is empty.
	NoPacket int64 = -1
)

// Packet is one message on the network.
type Packet struct {
	Dest int
	X, Y int64
}

func (p Packet) String() string {
	return fmt.Sprintf("%d<-(%d,%d)", p.Dest, p.X, p.Y)
}

// Network is a set of nodes that exchange packets through their output
// queues. A node emits a packet as three consecutive output values: the
// destination address, X and Y.
type Network struct {
	nodes []Process

	// NATAddress receives packets for the NAT monitor.
	NATAddress int
	// MaxRounds caps how many scheduling rounds a query may run.
	MaxRounds int

	nat     *Packet // last packet seen by the NAT
	onNAT   func(Packet)
	rounds  int
	packets int
}

// New creates a network from nodes. Node i is given its address i as the
// first input.
func New(nodes []Process) *Network {
	for i, n := range nodes {
		n.IO().PushInput(int64(i))
	}
	return &Network{
		nodes:      nodes,
		NATAddress: DefaultNATAddress,
		MaxRounds:  DefaultMaxRounds,
	}
}

// Size returns the number of nodes.
func (n *Network) Size() int { return len(n.nodes) }

// Node returns the node at addr.
func (n *Network) Node(addr int) Process { return n.nodes[addr] }

// Rounds returns how many rounds have been run.
func (n *Network) Rounds() int { return n.rounds }

// Packets returns how many packets have been sent, NAT traffic included.
func (n *Network) Packets() int { return n.packets }

// NAT returns the last packet the NAT monitor received.
func (n *Network) NAT() (Packet, bool) {
	if n.nat == nil {
		return Packet{}, false
	}
	return *n.nat, true
}

// Round gives every node one turn and returns the number of packets sent.
// A node with nothing queued receives NoPacket before it runs. Incomplete
// packets stay in the sender's output until the rest arrives.
func (n *Network) Round() (int, error) {
	n.rounds++
	sent := 0
	for addr, node := range n.nodes {
		io := node.IO()
		if io.PendingInput() == 0 {
			io.PushInput(NoPacket)
		}
		if _, err := node.Exec(); err != nil {
			return sent, fmt.Errorf("network: node %d: %w", addr, err)
		}
		for io.PendingOutput() >= 3 {
			dest, _ := io.PopOutput()
			x, _ := io.PopOutput()
			y, _ := io.PopOutput()
			n.deliver(addr, Packet{Dest: int(dest), X: x, Y: y})
			sent++
		}
	}
	n.packets += sent
	return sent, nil
}

func (n *Network) deliver(from int, p Packet) {
	switch {
	case p.Dest == n.NATAddress:
		n.nat = &p
		if n.onNAT != nil {
			n.onNAT(p)
		}
	case p.Dest >= 0 && p.Dest < len(n.nodes):
		n.nodes[p.Dest].IO().PushInput(p.X, p.Y)
	default:
		log.Warningf("node %d sent %s to unknown address, dropped", from, p)
	}
}

// idle reports whether no node has anything queued.
func (n *Network) idle() bool {
	for _, node := range n.nodes {
		if node.IO().PendingInput() > 0 {
			return false
		}
	}
	return true
}

// FirstNATPacket runs the network until some node sends a packet to the
// NAT address and returns that packet.
func (n *Network) FirstNATPacket() (Packet, error) {
	var first *Packet
	n.onNAT = func(p Packet) {
		if first == nil {
			first = &p
		}
	}
	defer func() { n.onNAT = nil }()

	for i := 0; i < n.MaxRounds; i++ {
		if _, err := n.Round(); err != nil {
			return Packet{}, err
		}
		if first != nil {
			return *first, nil
		}
	}
	return Packet{}, ErrRoundLimit
}

// RepeatedNATDelivery runs the network, letting the NAT wake node 0 with the
// last packet it received whenever a round sends nothing and every queue is
// empty. It returns the first Y value the NAT delivers twice in a row.
func (n *Network) RepeatedNATDelivery() (int64, error) {
	var last int64
	delivered := false

	for i := 0; i < n.MaxRounds; i++ {
		sent, err := n.Round()
		if err != nil {
			return 0, err
		}
		if sent > 0 || !n.idle() || n.nat == nil {
			continue
		}

		p := *n.nat
		if delivered && p.Y == last {
			return p.Y, nil
		}
		log.Debugf("round %d: idle, NAT delivers (%d,%d) to 0", n.rounds, p.X, p.Y)
		n.nodes[0].IO().PushInput(p.X, p.Y)
		last, delivered = p.Y, true
	}
	return 0, ErrRoundLimit
}
