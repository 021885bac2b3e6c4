package ring

import "fmt"

// Kind tags a message so that concurrent collectives between the same pair of
// ranks never consume each other's traffic.
type Kind uint8

const (
	// KindBroadcast carries the scalar of Broadcast.
	KindBroadcast Kind = iota + 1
	// KindScatter carries the blocks of Scatter.
	KindScatter
	// KindGather carries the blocks of Gather.
	KindGather
	// KindRotate carries the column bands shifted between product steps.
	KindRotate
)

// Valid reports whether k is one of the defined kinds. The zero Kind is invalid.
func (k Kind) Valid() bool {
	return k >= KindBroadcast && k <= KindRotate
}

// String returns the lower-case kind name, used as a metric and span attribute.
func (k Kind) String() string {
	switch k {
	case KindBroadcast:
		return "broadcast"
	case KindScatter:
		return "scatter"
	case KindGather:
		return "gather"
	case KindRotate:
		return "rotate"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}
