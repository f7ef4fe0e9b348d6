// internal/status/snapshot.go
package status

// Snapshot represents exactly what the status mirror is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health         uint16
	Active         bool
	FaultRegister  uint8
	StatusWord     uint16
	LastAction     uint16
	SecondsTripped uint16
}
