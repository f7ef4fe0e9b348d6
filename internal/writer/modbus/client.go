// internal/writer/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// registerBus is the part of modbus.Client the mirror needs.
type registerBus interface {
	WriteMultipleRegisters(address, quantity uint16, value []byte) ([]byte, error)
}

// EndpointClient is one TCP connection to the status mirror endpoint.
// Requests are serialized; the unit id is handler state.
// After a failed write the connection is dropped and the handler dials
// again on the next request.
type EndpointClient struct {
	mu      sync.Mutex
	bus     registerBus
	conn    io.Closer
	setUnit func(uint8)
}

type Config struct {
	Endpoint string
	Timeout  time.Duration
}

func NewEndpointClient(cfg Config) (*EndpointClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("writer modbus: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("writer modbus: connect %s: %w", cfg.Endpoint, err)
	}

	return &EndpointClient{
		bus:     modbus.NewClient(h),
		conn:    h,
		setUnit: func(id uint8) { h.SlaveId = id },
	}, nil
}

func (c *EndpointClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

// WriteRegisters writes holding registers (FC16).
func (c *EndpointClient) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	if len(regs) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.setUnit(unitID)

	if _, err := c.bus.WriteMultipleRegisters(addr, uint16(len(regs)), packRegisters(regs)); err != nil {
		_ = c.conn.Close()
		return fmt.Errorf("writer modbus: write %d regs at %d: %w", len(regs), addr, err)
	}
	return nil
}

// Modbus register memory order (BIG-ENDIAN)
func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
