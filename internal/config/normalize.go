// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultBaudRate   = 9600
	DefaultDataBits   = 8
	DefaultStopBits   = 1
	DefaultParity     = "N"
	DefaultTimeoutMs  = 100
	DefaultIntervalMs = 20
	DefaultSettleMs   = 5
	DefaultTopic      = "octolok"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	s := &cfg.Serial
	if s.BaudRate == 0 {
		s.BaudRate = DefaultBaudRate
	}
	if s.DataBits == 0 {
		s.DataBits = DefaultDataBits
	}
	if s.StopBits == 0 {
		s.StopBits = DefaultStopBits
	}
	if s.Parity == "" {
		s.Parity = DefaultParity
	}
	if s.TimeoutMs == 0 {
		s.TimeoutMs = DefaultTimeoutMs
	}

	if cfg.Hardware.SettleMs == 0 {
		cfg.Hardware.SettleMs = DefaultSettleMs
	}
	if m := cfg.Hardware.Modbus; m != nil {
		if m.Mode == "" {
			m.Mode = ModbusModeTCP
		}
		if m.TimeoutMs == 0 {
			m.TimeoutMs = DefaultTimeoutMs
		}
		if m.Mode == ModbusModeRTU && m.BaudRate == 0 {
			m.BaudRate = DefaultBaudRate
		}
	}

	if cfg.Poll.IntervalMs == 0 {
		cfg.Poll.IntervalMs = DefaultIntervalMs
	}

	// ------------------------------------------------------------
	// STATUS MIRROR (OPT-IN)
	// ------------------------------------------------------------

	if m := cfg.Mirror; m != nil {
		// ASCII already validated; truncate to 16 characters
		if len(m.DeviceName) > 16 {
			m.DeviceName = m.DeviceName[:16]
		}
		if m.TimeoutMs == 0 {
			m.TimeoutMs = DefaultTimeoutMs
		}
	}

	if q := cfg.MQTT; q != nil && q.TopicPrefix == "" {
		q.TopicPrefix = DefaultTopic
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Log.File.Filename == "" {
		cfg.Log.File.Filename = "octolok.log"
	}
}
