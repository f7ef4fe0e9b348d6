// internal/interlock/receiver.go
package interlock

import (
	"context"

	"go.uber.org/zap"
)

// Receiver stages commands read from the line transport.
type Receiver struct {
	in  LineReader
	reg *PendingRegister
	log *zap.Logger
}

// NewReceiver creates a receiver.
func NewReceiver(in LineReader, reg *PendingRegister, log *zap.Logger) *Receiver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Receiver{in: in, reg: reg, log: log}
}

// Run reads lines until ctx is done or the reader fails.
// Unrecognized lines are dropped without a reply.
func (r *Receiver) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := r.in.ReadLine()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		r.Handle(line)
	}
}

// Handle parses one line and stages it when recognized.
func (r *Receiver) Handle(line string) Action {
	a := ParseCommand(line)
	if a == ActionNone {
		r.log.Debug("line dropped", zap.String("line", line))
		return ActionNone
	}
	if !r.reg.TryStage(a) {
		r.log.Warn("pending action overwritten", zap.Stringer("by", a))
	}
	return a
}
