// internal/writer/mirror.go
package writer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/octolok/internal/interlock"
	"github.com/tamzrod/octolok/internal/poller"
	"github.com/tamzrod/octolok/internal/status"
)

// Mirror owns the status snapshot and pushes it to the writer on change.
// Samples come from the edge poller, actions from the dispatcher.
type Mirror struct {
	sw   StatusWriter
	log  *zap.Logger
	snap status.Snapshot
}

// NewMirror creates a mirror in the boot state.
func NewMirror(sw StatusWriter, log *zap.Logger) *Mirror {
	if log == nil {
		log = zap.NewNop()
	}
	return &Mirror{
		sw:   sw,
		log:  log,
		snap: status.Snapshot{Health: status.HealthUnknown},
	}
}

// Snapshot returns the current snapshot.
func (m *Mirror) Snapshot() status.Snapshot {
	return m.snap
}

// Run drives the mirror until ctx is done (runner-owned state + 1Hz ticker).
func (m *Mirror) Run(ctx context.Context, samples <-chan poller.Sample, actions <-chan interlock.Action) {
	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	// Full block write on start (identity re-assert).
	m.write("start")

	for {
		select {
		case <-ctx.Done():
			return

		case s := <-samples:
			if m.ApplySample(s) {
				m.write("sample")
			}

		case a := <-actions:
			if m.ApplyAction(a) {
				m.write("action")
			}

		case <-secTicker.C:
			if m.Tick() {
				m.write("tick")
			}
		}
	}
}

// ApplySample folds a poll sample into the snapshot and reports a change.
func (m *Mirror) ApplySample(s poller.Sample) bool {
	next := m.snap

	if s.Err != nil {
		// keep the last known relay state, flag the link
		next.Health = status.HealthError
	} else {
		next.Health = status.HealthOK
		next.Active = s.Active
		next.FaultRegister = s.FaultRegister
		next.StatusWord = status.StatusWord(s.Enables, s.States)
		if s.Active {
			next.SecondsTripped = 0
		}
	}

	changed := next != m.snap
	m.snap = next
	return changed
}

// ApplyAction records the last dispatched action.
func (m *Mirror) ApplyAction(a interlock.Action) bool {
	code := uint16(a)
	if m.snap.LastAction == code {
		return false
	}
	m.snap.LastAction = code
	return true
}

// Tick counts seconds while the relay is known to be open.
func (m *Mirror) Tick() bool {
	if m.snap.Health != status.HealthOK || m.snap.Active {
		return false
	}
	// HARD INVARIANT: seconds_tripped MUST NOT wrap
	if m.snap.SecondsTripped == 0xFFFF {
		return false
	}
	m.snap.SecondsTripped++
	return true
}

func (m *Mirror) write(reason string) {
	if err := m.sw.WriteStatus(m.snap); err != nil {
		m.log.Warn("status mirror write failed", zap.String("reason", reason), zap.Error(err))
	}
}
