// internal/poller/types.go
package poller

import "time"

// Sample is one all-or-nothing read of the relay electronics.
type Sample struct {
	At time.Time

	Active        bool
	FaultRegister uint8
	Enables       uint8
	States        uint8

	Err error // non-nil means the sample cycle failed
}

// Edge is a relay transition seen between two good samples.
type Edge uint8

const (
	EdgeNone Edge = iota
	// EdgeActive: interlock became active (rising).
	EdgeActive
	// EdgeFault: fault latch asserted, the relay opened.
	EdgeFault
)

func (e Edge) String() string {
	switch e {
	case EdgeActive:
		return "active"
	case EdgeFault:
		return "fault"
	default:
		return "none"
	}
}
