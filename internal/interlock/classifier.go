// internal/interlock/classifier.go
package interlock

import (
	"sync"

	"go.uber.org/zap"
)

// Classifier turns relay edges into events in the pending register.
// Edge handlers run in the edge source's goroutine, the stand-in for
// interrupt context, and never block on the dispatcher.
type Classifier struct {
	hw  FaultReader
	reg *PendingRegister
	log *zap.Logger

	// held while edges are masked
	mask sync.Mutex
}

// NewClassifier wires a classifier to the fault latch and the register.
func NewClassifier(hw FaultReader, reg *PendingRegister, log *zap.Logger) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Classifier{hw: hw, reg: reg, log: log}
}

// ActiveEdge handles "interlock became active".
// It cannot tell a front-panel reset from a successful remote one and
// reports both as a manual reset.
func (c *Classifier) ActiveEdge() {
	c.mask.Lock()
	defer c.mask.Unlock()

	c.stage(EventManualReset)
}

// FaultEdge handles "fault latch asserted".
// An empty fault register means the front-panel disable opened the relay.
func (c *Classifier) FaultEdge() {
	c.mask.Lock()
	defer c.mask.Unlock()

	fr, err := c.hw.ReadFaultRegister()
	if err != nil {
		// the dispatcher re-reads the latch when it reports the fault
		c.log.Error("fault register read failed in edge handler", zap.Error(err))
		c.stage(EventFault)
		return
	}
	if fr == 0 {
		c.stage(EventManualDisable)
		return
	}
	c.stage(EventFault)
}

// Suppress masks edge handling until restore is called.
// Edges raised meanwhile are delivered after restore.
func (c *Classifier) Suppress() (restore func()) {
	c.mask.Lock()
	var once sync.Once
	return func() { once.Do(c.mask.Unlock) }
}

func (c *Classifier) stage(a Action) {
	if !c.reg.TryStage(a) {
		c.log.Warn("pending action overwritten", zap.Stringer("by", a))
		return
	}
	c.log.Debug("event staged", zap.Stringer("event", a))
}
