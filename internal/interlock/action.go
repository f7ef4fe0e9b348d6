// internal/interlock/action.go
package interlock

// Action is the tag stored in the pending-action register.
// Commands originate from the line transport, events from the relay hardware.
type Action uint8

const (
	// ActionNone is the empty register.
	ActionNone Action = iota

	CmdReset
	CmdStatus
	CmdFaultRegister
	CmdDisable
	CmdModel

	EventManualReset
	EventManualDisable
	EventFault

	actionLimit
)

// IsCommand reports whether a came from the supervising computer.
func (a Action) IsCommand() bool {
	return a >= CmdReset && a <= CmdModel
}

// IsEvent reports whether a came from a hardware edge.
func (a Action) IsEvent() bool {
	return a >= EventManualReset && a <= EventFault
}

// Valid reports whether a is a known, non-empty action.
func (a Action) Valid() bool {
	return a > ActionNone && a < actionLimit
}

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case CmdReset:
		return "reset"
	case CmdStatus:
		return "status"
	case CmdFaultRegister:
		return "fault_register"
	case CmdDisable:
		return "disable"
	case CmdModel:
		return "model"
	case EventManualReset:
		return "manual_reset"
	case EventManualDisable:
		return "manual_disable"
	case EventFault:
		return "fault"
	default:
		return "unknown"
	}
}
