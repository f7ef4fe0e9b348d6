// internal/interlock/parser.go
package interlock

// ParseCommand maps one line (terminator already stripped) to a command.
// Anything that is not an exact literal yields ActionNone.
func ParseCommand(line string) Action {
	switch line {
	case LineReset:
		return CmdReset
	case LineStatus:
		return CmdStatus
	case LineFaultRegister:
		return CmdFaultRegister
	case LineDisable:
		return CmdDisable
	case LineModel:
		return CmdModel
	default:
		return ActionNone
	}
}
