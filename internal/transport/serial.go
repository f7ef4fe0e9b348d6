// internal/transport/serial.go
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goburrow/serial"
)

// SerialConfig is the line transport port setup. Baud is fixed at open.
type SerialConfig struct {
	Address  string
	BaudRate int
	DataBits int
	StopBits int
	Parity   string
	Timeout  time.Duration
}

// Port is a serial port whose reads outlive the driver's read timeout.
// Timeouts are retried until ctx is done, so a bufio reader on top never
// sees them.
type Port struct {
	ctx  context.Context
	port io.ReadWriteCloser
}

// OpenSerial opens the serial line to the supervising computer.
func OpenSerial(ctx context.Context, cfg SerialConfig) (*Port, error) {
	if cfg.Address == "" {
		return nil, errors.New("transport: serial address required")
	}

	p, err := serial.Open(&serial.Config{
		Address:  cfg.Address,
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		StopBits: cfg.StopBits,
		Parity:   cfg.Parity,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("transport: open %s: %w", cfg.Address, err)
	}
	return &Port{ctx: ctx, port: p}, nil
}

// Read blocks until data arrives, the port fails or ctx is done.
func (p *Port) Read(b []byte) (int, error) {
	for {
		n, err := p.port.Read(b)
		if errors.Is(err, serial.ErrTimeout) || (err == nil && n == 0) {
			if cerr := p.ctx.Err(); cerr != nil {
				return 0, cerr
			}
			continue
		}
		return n, err
	}
}

func (p *Port) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

func (p *Port) Close() error {
	return p.port.Close()
}
