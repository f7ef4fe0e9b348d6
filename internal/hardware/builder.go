// internal/hardware/builder.go
package hardware

import (
	"fmt"
	"time"

	cfg "github.com/tamzrod/octolok/internal/config"
	hmodbus "github.com/tamzrod/octolok/internal/hardware/modbus"
)

// Driver is what every relay backend provides.
type Driver interface {
	ReadFaultRegister() (uint8, error)
	ReadEnables() (uint8, error)
	ReadInstantaneousState() (uint8, error)
	IsInterlockActive() (bool, error)
	PulseReset() error
	PulseDisable() error
}

// Build constructs the configured relay backend and its closer.
// Connection failures are fatal at startup.
func Build(h cfg.HardwareConfig) (Driver, func() error, error) {
	settle := time.Duration(h.SettleMs) * time.Millisecond

	switch h.Driver {
	case cfg.DriverSim:
		return NewSim(settle), func() error { return nil }, nil

	case cfg.DriverModbus:
		m := h.Modbus
		if m == nil {
			return nil, nil, fmt.Errorf("hardware: modbus block required")
		}
		p, err := hmodbus.New(hmodbus.Config{
			Mode:     m.Mode,
			Endpoint: m.Endpoint,
			BaudRate: m.BaudRate,
			SlaveID:  m.SlaveID,
			Timeout:  time.Duration(m.TimeoutMs) * time.Millisecond,
			Settle:   settle,
			Map: hmodbus.Map{
				FaultAddr:   m.FaultAddr,
				EnableAddr:  m.EnableAddr,
				StateAddr:   m.StateAddr,
				ActiveAddr:  m.ActiveAddr,
				ResetCoil:   m.ResetCoil,
				DisableCoil: m.DisableCoil,
			},
		})
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil

	default:
		return nil, nil, fmt.Errorf("hardware: unknown driver %q", h.Driver)
	}
}
