// internal/config/config.go
package config

type Config struct {
	Serial   SerialConfig   `yaml:"serial"`
	Hardware HardwareConfig `yaml:"hardware"`
	Poll     PollConfig     `yaml:"poll"`
	Mirror   *MirrorConfig  `yaml:"mirror"` // optional
	MQTT     *MQTTConfig    `yaml:"mqtt"`   // optional
	Log      LogConfig      `yaml:"log"`
}

// ---- LINE TRANSPORT ----

type SerialConfig struct {
	Port      string `yaml:"port"`
	BaudRate  int    `yaml:"baud_rate"`
	DataBits  int    `yaml:"data_bits"`
	StopBits  int    `yaml:"stop_bits"`
	Parity    string `yaml:"parity"` // N, E, O
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- RELAY ELECTRONICS ----

const (
	DriverSim    = "sim"
	DriverModbus = "modbus"
)

type HardwareConfig struct {
	Driver   string        `yaml:"driver"`
	SettleMs int           `yaml:"settle_ms"`
	Modbus   *ModbusConfig `yaml:"modbus"`
}

const (
	ModbusModeTCP = "tcp"
	ModbusModeRTU = "rtu"
)

type ModbusConfig struct {
	Mode      string `yaml:"mode"`     // tcp | rtu
	Endpoint  string `yaml:"endpoint"` // host:port or device path
	BaudRate  int    `yaml:"baud_rate"`
	SlaveID   uint8  `yaml:"slave_id"`
	TimeoutMs int    `yaml:"timeout_ms"`

	// discrete inputs, 8 each (1 for active)
	FaultAddr  uint16 `yaml:"fault_addr"`
	EnableAddr uint16 `yaml:"enable_addr"`
	StateAddr  uint16 `yaml:"state_addr"`
	ActiveAddr uint16 `yaml:"active_addr"`

	// coils
	ResetCoil   uint16 `yaml:"reset_coil"`
	DisableCoil uint16 `yaml:"disable_coil"`
}

// ---- EDGE POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- STATUS MIRROR ----

type MirrorConfig struct {
	Endpoint   string `yaml:"endpoint"`
	UnitID     uint8  `yaml:"unit_id"`
	BaseSlot   uint16 `yaml:"base_slot"`
	DeviceName string `yaml:"device_name"`
	TimeoutMs  int    `yaml:"timeout_ms"`
}

// ---- MQTT ----

type MQTTConfig struct {
	Broker      string `yaml:"broker"`
	ClientID    string `yaml:"client_id"`
	TopicPrefix string `yaml:"topic_prefix"`
	QoS         byte   `yaml:"qos"`
}

// ---- LOG ----

type LogConfig struct {
	Level  string        `yaml:"level"`  // debug, info, warn, error
	Format string        `yaml:"format"` // console, json
	Output string        `yaml:"output"` // stdout, file, both
	File   LogFileConfig `yaml:"file"`
}

type LogFileConfig struct {
	Path       string `yaml:"path"`
	Filename   string `yaml:"filename"`
	MaxSize    int    `yaml:"max_size"` // MB
	MaxAge     int    `yaml:"max_age"`  // days
	MaxBackups int    `yaml:"max_backups"`
	Compress   bool   `yaml:"compress"`
}
