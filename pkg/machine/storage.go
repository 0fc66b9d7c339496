package machine

// Storage is the addressable state of a machine. K is the cell identifier:
// a register name for the register model, an address for flat memory.
//
// Get on a cell that was never Set returns 0.
type Storage[K comparable] interface {
	Get(id K) int64
	Set(id K, value int64)
}
