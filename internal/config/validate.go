// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}

	// ------------------------------------------------------------
	// LINE TRANSPORT
	// ------------------------------------------------------------

	if cfg.Serial.Port == "" {
		return fmt.Errorf("serial: port required")
	}
	if cfg.Serial.BaudRate < 0 {
		return fmt.Errorf("serial: baud_rate must be >= 0")
	}
	switch cfg.Serial.Parity {
	case "", "N", "E", "O":
	default:
		return fmt.Errorf("serial: parity %q must be N, E or O", cfg.Serial.Parity)
	}

	// ------------------------------------------------------------
	// RELAY ELECTRONICS
	// ------------------------------------------------------------

	if cfg.Hardware.SettleMs < 0 {
		return fmt.Errorf("hardware: settle_ms must be >= 0")
	}

	switch cfg.Hardware.Driver {
	case DriverSim:
	case DriverModbus:
		m := cfg.Hardware.Modbus
		if m == nil {
			return fmt.Errorf("hardware: driver %q requires a modbus block", DriverModbus)
		}
		if m.Endpoint == "" {
			return fmt.Errorf("hardware.modbus: endpoint required")
		}
		switch m.Mode {
		case "", ModbusModeTCP, ModbusModeRTU:
		default:
			return fmt.Errorf("hardware.modbus: mode %q must be tcp or rtu", m.Mode)
		}
		if err := validateInputs(m); err != nil {
			return err
		}
		if m.ResetCoil == m.DisableCoil {
			return fmt.Errorf("hardware.modbus: reset_coil and disable_coil share address %d", m.ResetCoil)
		}
	default:
		return fmt.Errorf("hardware: unknown driver %q", cfg.Hardware.Driver)
	}

	// ------------------------------------------------------------
	// EDGE POLL
	// ------------------------------------------------------------

	if cfg.Poll.IntervalMs < 0 {
		return fmt.Errorf("poll: interval_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// STATUS MIRROR (OPT-IN)
	// ------------------------------------------------------------

	if m := cfg.Mirror; m != nil {
		if m.Endpoint == "" {
			return fmt.Errorf("mirror: endpoint required")
		}
		for i := 0; i < len(m.DeviceName); i++ {
			if m.DeviceName[i] > 0x7F {
				return fmt.Errorf("mirror: device_name must contain ASCII characters only")
			}
		}
	}

	// ------------------------------------------------------------
	// MQTT (OPT-IN)
	// ------------------------------------------------------------

	if q := cfg.MQTT; q != nil {
		if q.Broker == "" {
			return fmt.Errorf("mqtt: broker required")
		}
		if q.QoS > 2 {
			return fmt.Errorf("mqtt: qos %d must be 0, 1 or 2", q.QoS)
		}
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log: unknown level %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("log: unknown format %q", cfg.Log.Format)
	}

	switch cfg.Log.Output {
	case "", "stdout":
	case "file", "both":
		if cfg.Log.File.Path == "" {
			return fmt.Errorf("log: file.path required for output %q", cfg.Log.Output)
		}
	default:
		return fmt.Errorf("log: unknown output %q", cfg.Log.Output)
	}

	return nil
}

// validateInputs rejects overlapping discrete input blocks.
func validateInputs(m *ModbusConfig) error {
	type span struct {
		name  string
		start uint16
		end   uint16
	}

	for _, in := range []struct {
		name string
		addr uint16
	}{
		{"fault_addr", m.FaultAddr},
		{"enable_addr", m.EnableAddr},
		{"state_addr", m.StateAddr},
	} {
		if in.addr > 0xFFFF-7 {
			return fmt.Errorf("hardware.modbus: %s=%d leaves no room for 8 inputs", in.name, in.addr)
		}
	}

	spans := []span{
		{"fault_addr", m.FaultAddr, m.FaultAddr + 7},
		{"enable_addr", m.EnableAddr, m.EnableAddr + 7},
		{"state_addr", m.StateAddr, m.StateAddr + 7},
		{"active_addr", m.ActiveAddr, m.ActiveAddr},
	}

	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			a, b := spans[i], spans[j]
			// overlap check (inclusive)
			if !(a.end < b.start || a.start > b.end) {
				return fmt.Errorf(
					"hardware.modbus: %s range=%d-%d overlaps %s range=%d-%d",
					a.name, a.start, a.end,
					b.name, b.start, b.end,
				)
			}
		}
	}
	return nil
}
