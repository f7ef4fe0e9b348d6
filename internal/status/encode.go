// internal/status/encode.go
package status

// Encode converts a Snapshot into the live part of a status block.
// Layout is protocol-locked.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, SlotsPerDevice)

	regs[SlotHealthCode] = s.Health
	if s.Active {
		regs[SlotActive] = 1
	}
	regs[SlotFaultRegister] = uint16(s.FaultRegister)
	regs[SlotStatusWord] = s.StatusWord
	regs[SlotLastAction] = s.LastAction
	regs[SlotSecondsTripped] = s.SecondsTripped

	return regs
}
