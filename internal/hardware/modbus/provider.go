// internal/hardware/modbus/provider.go
package modbus

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// Provider drives the relay electronics through a Modbus field I/O module.
// Channel registers are 8 discrete inputs each; the actuators are coils.
// Bus transactions are serialized: the handler's SlaveId and the actuator
// lines are shared state.
type Provider struct {
	mu     sync.Mutex
	bus    Bus
	closer io.Closer

	m      Map
	settle time.Duration
}

// Bus is the subset of modbus.Client the provider uses.
type Bus interface {
	ReadDiscreteInputs(address, quantity uint16) ([]byte, error)
	WriteSingleCoil(address, value uint16) ([]byte, error)
}

// Map is the I/O module wiring.
type Map struct {
	FaultAddr   uint16
	EnableAddr  uint16
	StateAddr   uint16
	ActiveAddr  uint16
	ResetCoil   uint16
	DisableCoil uint16
}

// Config is minimal transport config.
type Config struct {
	Mode     string // tcp | rtu
	Endpoint string
	BaudRate int
	SlaveID  uint8
	Timeout  time.Duration
	Settle   time.Duration
	Map      Map
}

const (
	coilOn  uint16 = 0xFF00
	coilOff uint16 = 0x0000
)

// New connects to the I/O module.
func New(cfg Config) (*Provider, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("hardware modbus: endpoint required")
	}

	switch cfg.Mode {
	case "", "tcp":
		h := modbus.NewTCPClientHandler(cfg.Endpoint)
		h.Timeout = cfg.Timeout
		h.SlaveId = cfg.SlaveID
		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("hardware modbus: connect %s: %w", cfg.Endpoint, err)
		}
		return NewWithBus(modbus.NewClient(h), h, cfg.Map, cfg.Settle), nil

	case "rtu":
		h := modbus.NewRTUClientHandler(cfg.Endpoint)
		h.BaudRate = cfg.BaudRate
		h.DataBits = 8
		h.Parity = "N"
		h.StopBits = 1
		h.Timeout = cfg.Timeout
		h.SlaveId = cfg.SlaveID
		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("hardware modbus: open %s: %w", cfg.Endpoint, err)
		}
		return NewWithBus(modbus.NewClient(h), h, cfg.Map, cfg.Settle), nil

	default:
		return nil, fmt.Errorf("hardware modbus: unknown mode %q", cfg.Mode)
	}
}

// NewWithBus wraps an already connected bus. closer may be nil.
func NewWithBus(bus Bus, closer io.Closer, m Map, settle time.Duration) *Provider {
	return &Provider{bus: bus, closer: closer, m: m, settle: settle}
}

// Close closes the bus connection.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

// ---- interlock.Hardware ----

func (p *Provider) ReadFaultRegister() (uint8, error) {
	return p.readByte(p.m.FaultAddr)
}

// ReadEnables inverts the raw inputs: the enable switch pulls low.
func (p *Provider) ReadEnables() (uint8, error) {
	v, err := p.readByte(p.m.EnableAddr)
	if err != nil {
		return 0, err
	}
	return ^v, nil
}

// ReadInstantaneousState inverts the raw inputs: a healthy channel pulls low.
func (p *Provider) ReadInstantaneousState() (uint8, error) {
	v, err := p.readByte(p.m.StateAddr)
	if err != nil {
		return 0, err
	}
	return ^v, nil
}

func (p *Provider) IsInterlockActive() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, err := p.bus.ReadDiscreteInputs(p.m.ActiveAddr, 1)
	if err != nil {
		return false, fmt.Errorf("hardware modbus: read active: %w", err)
	}
	if len(b) < 1 {
		return false, errors.New("hardware modbus: short active payload")
	}
	return b[0]&0x01 != 0, nil
}

func (p *Provider) PulseReset() error {
	return p.pulse(p.m.ResetCoil)
}

func (p *Provider) PulseDisable() error {
	return p.pulse(p.m.DisableCoil)
}

// ---- internal bus helpers ----

// readByte reads 8 discrete inputs; input addr+i lands in bit i.
func (p *Provider) readByte(addr uint16) (uint8, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, err := p.bus.ReadDiscreteInputs(addr, 8)
	if err != nil {
		return 0, fmt.Errorf("hardware modbus: read inputs addr=%d: %w", addr, err)
	}
	if len(b) < 1 {
		return 0, fmt.Errorf("hardware modbus: short inputs payload addr=%d", addr)
	}
	return b[0], nil
}

// pulse drives a coil on, settles, drives it off and settles again.
// The coil ends off, which is the actuator's non-driving state.
func (p *Provider) pulse(coil uint16) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.bus.WriteSingleCoil(coil, coilOn); err != nil {
		// best effort: never leave the actuator asserted
		_, _ = p.bus.WriteSingleCoil(coil, coilOff)
		return fmt.Errorf("hardware modbus: assert coil=%d: %w", coil, err)
	}
	time.Sleep(p.settle)

	if _, err := p.bus.WriteSingleCoil(coil, coilOff); err != nil {
		return fmt.Errorf("hardware modbus: release coil=%d: %w", coil, err)
	}
	time.Sleep(p.settle)
	return nil
}
