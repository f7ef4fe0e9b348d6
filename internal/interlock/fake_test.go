// internal/interlock/fake_test.go
package interlock

import (
	"errors"
	"sync"
)

// ---- fake relay ----

type fakeHardware struct {
	mu sync.Mutex

	faults  uint8
	enables uint8
	states  uint8
	active  bool

	// armed after a reset pulse when set
	resetArms bool
	// opened by a disable pulse when set
	disableOpens bool

	readErr error

	resetPulses   int
	disablePulses int

	// set by the disable pulse: was the mask held while it ran
	maskedDuringDisable bool
	mask                *fakeMask
}

func (f *fakeHardware) ReadFaultRegister() (uint8, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.faults, f.readErr
}

func (f *fakeHardware) ReadEnables() (uint8, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enables, f.readErr
}

func (f *fakeHardware) ReadInstantaneousState() (uint8, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.states, f.readErr
}

func (f *fakeHardware) IsInterlockActive() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active, f.readErr
}

func (f *fakeHardware) PulseReset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetPulses++
	if f.resetArms {
		f.active = true
		f.faults = 0
	}
	return nil
}

func (f *fakeHardware) PulseDisable() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disablePulses++
	if f.mask != nil {
		f.maskedDuringDisable = f.mask.held
	}
	if f.disableOpens {
		f.active = false
	}
	return nil
}

// ---- fake mask ----

type fakeMask struct {
	held     bool
	suppress int
}

func (m *fakeMask) Suppress() func() {
	m.held = true
	m.suppress++
	return func() { m.held = false }
}

// ---- fake line ends ----

type fakeReplier struct {
	mu    sync.Mutex
	lines []string
	err   error
}

func (r *fakeReplier) WriteLine(line string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
	return r.err
}

func (r *fakeReplier) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

var errEndOfLines = errors.New("end of lines")

type fakeLines struct {
	lines []string
}

func (f *fakeLines) ReadLine() (string, error) {
	if len(f.lines) == 0 {
		return "", errEndOfLines
	}
	l := f.lines[0]
	f.lines = f.lines[1:]
	return l, nil
}
