// internal/interlock/hardware.go
package interlock

// Hardware is the relay electronics as seen by the core.
// Per-channel registers use bit 0 for channel 1 and are already
// polarity-corrected (1 = enabled / 1 = ok).
// Implementations must be safe for concurrent use.
type Hardware interface {
	ReadFaultRegister() (uint8, error)
	ReadEnables() (uint8, error)
	ReadInstantaneousState() (uint8, error)
	IsInterlockActive() (bool, error)

	// PulseReset and PulseDisable drive the actuator high, settle, low,
	// settle, then release the line.
	PulseReset() error
	PulseDisable() error
}

// FaultReader is the only read the classifier performs.
type FaultReader interface {
	ReadFaultRegister() (uint8, error)
}

// Replier sends one reply line to the supervising computer.
type Replier interface {
	WriteLine(line string) error
}

// LineReader yields inbound lines with the terminator stripped.
type LineReader interface {
	ReadLine() (string, error)
}

// InterruptMask holds back edge handling while an actuation is in flight.
type InterruptMask interface {
	Suppress() (restore func())
}
