// internal/hardware/sim.go
package hardware

import (
	"errors"
	"sync"
	"time"
)

// ErrBadChannel is returned for a channel outside 1..8.
var ErrBadChannel = errors.New("hardware: channel out of range")

// Sim is an in-memory relay: eight channels, a latched fault register and
// the armed flag. It follows the electronics closely enough to drive the
// controller without a board attached.
type Sim struct {
	mu sync.Mutex

	enables uint8
	states  uint8
	faults  uint8
	active  bool

	settle time.Duration

	resetPulses   int
	disablePulses int
}

// NewSim returns a relay with every channel enabled and healthy, not yet
// armed (it needs a reset after power-up, like the real board).
func NewSim(settle time.Duration) *Sim {
	return &Sim{
		enables: 0xFF,
		states:  0xFF,
		settle:  settle,
	}
}

// ---- interlock.Hardware ----

func (s *Sim) ReadFaultRegister() (uint8, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.faults, nil
}

func (s *Sim) ReadEnables() (uint8, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enables, nil
}

func (s *Sim) ReadInstantaneousState() (uint8, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states, nil
}

func (s *Sim) IsInterlockActive() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, nil
}

func (s *Sim) PulseReset() error {
	s.pulse()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetPulses++
	s.rearm()
	return nil
}

func (s *Sim) PulseDisable() error {
	s.pulse()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disablePulses++
	s.active = false
	return nil
}

// ---- front panel and field wiring ----

// PressReset is the front-panel reset button.
func (s *Sim) PressReset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rearm()
}

// PressDisable is the front-panel disable button.
func (s *Sim) PressDisable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}

// SetChannel sets one channel's enable switch and input state.
// An enabled channel going bad while armed trips the relay.
func (s *Sim) SetChannel(ch int, enabled, ok bool) error {
	if ch < 1 || ch > 8 {
		return ErrBadChannel
	}
	bit := uint8(1) << uint(ch-1)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.enables = setBit(s.enables, bit, enabled)
	s.states = setBit(s.states, bit, ok)
	s.evaluate()
	return nil
}

// Trip makes an enabled channel report a fault.
func (s *Sim) Trip(ch int) error {
	return s.SetChannel(ch, true, false)
}

// Clear makes a channel healthy again. The latch is not touched.
func (s *Sim) Clear(ch int) error {
	if ch < 1 || ch > 8 {
		return ErrBadChannel
	}
	bit := uint8(1) << uint(ch-1)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.states |= bit
	return nil
}

// Pulses reports how many reset and disable pulses were driven.
func (s *Sim) Pulses() (reset, disable int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetPulses, s.disablePulses
}

// ---- internal ----

func (s *Sim) pulse() {
	if s.settle <= 0 {
		return
	}
	// high, settle, low, settle
	time.Sleep(s.settle)
	time.Sleep(s.settle)
}

// rearm arms the relay and clears the latch only when no enabled channel
// is still faulted.
func (s *Sim) rearm() {
	if s.enables&^s.states != 0 {
		return
	}
	s.active = true
	s.faults = 0
}

func (s *Sim) evaluate() {
	if !s.active {
		return
	}
	bad := s.enables &^ s.states
	if bad == 0 {
		return
	}
	s.faults |= bad
	s.active = false
}

func setBit(v, bit uint8, on bool) uint8 {
	if on {
		return v | bit
	}
	return v &^ bit
}
