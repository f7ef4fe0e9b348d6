// internal/interlock/mailbox.go
package interlock

import "sync/atomic"

// PendingRegister is the single-slot pending-action register.
// Any producer may write at any time and a write replaces whatever is
// still unconsumed. It is not a queue: under contention only the last
// write is ever observed by the dispatcher.
type PendingRegister struct {
	slot        atomic.Uint32
	overwritten atomic.Uint64
	ready       chan struct{}
}

// NewPendingRegister returns an empty register.
func NewPendingRegister() *PendingRegister {
	return &PendingRegister{ready: make(chan struct{}, 1)}
}

// TryStage writes a into the register. It never blocks.
// It returns false when an unconsumed action was overwritten (and lost).
func (r *PendingRegister) TryStage(a Action) bool {
	prev := Action(r.slot.Swap(uint32(a)))

	// doorbell only; the slot is the source of truth
	select {
	case r.ready <- struct{}{}:
	default:
	}

	if prev != ActionNone {
		r.overwritten.Add(1)
		return false
	}
	return true
}

// Drain takes and clears the pending action, if any.
func (r *PendingRegister) Drain() (Action, bool) {
	a := Action(r.slot.Swap(uint32(ActionNone)))
	return a, a != ActionNone
}

// Peek returns the pending action without consuming it.
func (r *PendingRegister) Peek() Action {
	return Action(r.slot.Load())
}

// Ready signals that the register may hold an action.
func (r *PendingRegister) Ready() <-chan struct{} {
	return r.ready
}

// Overwritten counts actions lost to a later write.
func (r *PendingRegister) Overwritten() uint64 {
	return r.overwritten.Load()
}
