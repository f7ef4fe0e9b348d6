// internal/writer/types.go
package writer

// StatusPlan is where one device's status block lives.
type StatusPlan struct {
	Endpoint   string
	UnitID     uint8
	BaseSlot   uint16
	DeviceName string
}

// endpointClient is the exact contract the status writer uses.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}
