// internal/interlock/dispatcher.go
package interlock

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/tamzrod/octolok/internal/status"
)

// State is the dispatcher state.
type State uint32

const (
	StateIdle State = iota
	StateProcessingCommand
	StateProcessingEvent
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProcessingCommand:
		return "processing_command"
	case StateProcessingEvent:
		return "processing_event"
	default:
		return "unknown"
	}
}

// ErrUnhandledAction is returned for a tag the dispatcher does not know.
var ErrUnhandledAction = errors.New("interlock: unhandled action")

// Observer is told about every completed action and the reply sent for it.
// reply is empty when nothing was sent.
type Observer func(a Action, reply string)

// Config wires a dispatcher.
type Config struct {
	Hardware Hardware
	Register *PendingRegister
	Mask     InterruptMask
	Out      Replier
	Observer Observer
	Logger   *zap.Logger
}

// Dispatcher drains the pending register and executes one action at a time.
// Nothing is retained between actions except the shared register.
type Dispatcher struct {
	hw   Hardware
	reg  *PendingRegister
	mask InterruptMask
	out  Replier
	obs  Observer
	log  *zap.Logger

	state atomic.Uint32
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(cfg Config) (*Dispatcher, error) {
	if cfg.Hardware == nil {
		return nil, errors.New("interlock: hardware required")
	}
	if cfg.Register == nil {
		return nil, errors.New("interlock: register required")
	}
	if cfg.Mask == nil {
		return nil, errors.New("interlock: interrupt mask required")
	}
	if cfg.Out == nil {
		return nil, errors.New("interlock: replier required")
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		hw:   cfg.Hardware,
		reg:  cfg.Register,
		mask: cfg.Mask,
		out:  cfg.Out,
		obs:  cfg.Observer,
		log:  log,
	}, nil
}

// State returns the current dispatcher state.
func (d *Dispatcher) State() State {
	return State(d.state.Load())
}

// Run drains the register until ctx is done.
// It never halts on an action error.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		// catch anything staged before the doorbell was armed
		for d.Step() {
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.reg.Ready():
		}
	}
}

// Step executes at most one pending action and reports whether one ran.
func (d *Dispatcher) Step() bool {
	a, ok := d.reg.Drain()
	if !ok {
		return false
	}

	if a.IsEvent() {
		d.state.Store(uint32(StateProcessingEvent))
	} else {
		d.state.Store(uint32(StateProcessingCommand))
	}
	defer d.state.Store(uint32(StateIdle))

	reply, err := d.execute(a)
	if err != nil {
		d.log.Error("action failed", zap.Stringer("action", a), zap.Error(err))
	}

	if reply != "" {
		if err := d.out.WriteLine(reply); err != nil {
			d.log.Error("reply write failed",
				zap.Stringer("action", a),
				zap.String("reply", reply),
				zap.Error(err))
		}
	}

	d.log.Debug("action done", zap.Stringer("action", a), zap.String("reply", reply))
	if d.obs != nil {
		d.obs(a, reply)
	}
	return true
}

// execute runs one action against the hardware and returns the reply line.
// An error means no reply is sent.
func (d *Dispatcher) execute(a Action) (string, error) {
	switch a {
	case CmdReset:
		return d.reset()
	case CmdStatus:
		w, err := d.statusWord()
		if err != nil {
			return "", err
		}
		return ReplyStatus + " " + status.FormatWord(w), nil
	case CmdFaultRegister:
		fr, err := d.hw.ReadFaultRegister()
		if err != nil {
			return "", fmt.Errorf("read fault register: %w", err)
		}
		return ReplyFaultRegister + " " + status.FormatByte(fr), nil
	case CmdDisable:
		return d.disable()
	case CmdModel:
		return Model, nil
	case EventManualReset:
		return ReplyManualReset, nil
	case EventManualDisable:
		return ReplyManualDisable, nil
	case EventFault:
		fr, err := d.hw.ReadFaultRegister()
		if err != nil {
			return "", fmt.Errorf("read fault register: %w", err)
		}
		return ReplyFault + " " + status.FormatByte(fr), nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnhandledAction, uint8(a))
	}
}

// reset pulses the reset actuator once unless already armed.
func (d *Dispatcher) reset() (string, error) {
	active, err := d.hw.IsInterlockActive()
	if err != nil {
		return "", fmt.Errorf("read active: %w", err)
	}
	if active {
		return ReplyActive, nil
	}

	if err := d.hw.PulseReset(); err != nil {
		return "", fmt.Errorf("pulse reset: %w", err)
	}

	active, err = d.hw.IsInterlockActive()
	if err != nil {
		return "", fmt.Errorf("read active: %w", err)
	}
	if active {
		return ReplyResetSuccess, nil
	}

	w, err := d.statusWord()
	if err != nil {
		return "", err
	}
	return ReplyResetFail + " " + status.FormatWord(w), nil
}

// disable pulses the disable actuator with edges masked.
// A failed disable sends nothing.
func (d *Dispatcher) disable() (string, error) {
	active, err := d.hw.IsInterlockActive()
	if err != nil {
		return "", fmt.Errorf("read active: %w", err)
	}
	if !active {
		return ReplyDeactive, nil
	}

	restore := d.mask.Suppress()
	err = d.hw.PulseDisable()
	restore()
	if err != nil {
		return "", fmt.Errorf("pulse disable: %w", err)
	}

	active, err = d.hw.IsInterlockActive()
	if err != nil {
		return "", fmt.Errorf("read active: %w", err)
	}
	if active {
		d.log.Warn("disable pulse did not open the interlock")
		return "", nil
	}
	return ReplyDisableSuccess, nil
}

func (d *Dispatcher) statusWord() (uint16, error) {
	en, err := d.hw.ReadEnables()
	if err != nil {
		return 0, fmt.Errorf("read enables: %w", err)
	}
	st, err := d.hw.ReadInstantaneousState()
	if err != nil {
		return 0, fmt.Errorf("read state: %w", err)
	}
	return status.StatusWord(en, st), nil
}
