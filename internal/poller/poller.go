// internal/poller/poller.go
package poller

import (
	"errors"
	"time"
)

// Source abstracts the reads needed by the poller.
type Source interface {
	IsInterlockActive() (bool, error)
	ReadFaultRegister() (uint8, error)
	ReadEnables() (uint8, error)
	ReadInstantaneousState() (uint8, error)
}

// EdgeHandler receives relay edges. Calls come from the poller goroutine
// and may block while edges are masked.
type EdgeHandler interface {
	ActiveEdge()
	FaultEdge()
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Interval time.Duration
}

// Poller is a dumb, clock-driven edge detector.
type Poller struct {
	cfg   Config
	src   Source
	edges EdgeHandler

	// last good active reading; nil until the first good sample
	last *bool
}

// New creates a poller with immutable config.
func New(cfg Config, src Source, edges EdgeHandler) (*Poller, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if src == nil {
		return nil, errors.New("poller: source required")
	}
	if edges == nil {
		return nil, errors.New("poller: edge handler required")
	}
	return &Poller{cfg: cfg, src: src, edges: edges}, nil
}

// PollOnce performs exactly one sample cycle.
// All-or-nothing: any failure aborts the cycle.
func (p *Poller) PollOnce() Sample {
	s := Sample{At: time.Now()}

	active, err := p.src.IsInterlockActive()
	if err != nil {
		s.Err = err
		return s
	}
	fr, err := p.src.ReadFaultRegister()
	if err != nil {
		s.Err = err
		return s
	}
	en, err := p.src.ReadEnables()
	if err != nil {
		s.Err = err
		return s
	}
	st, err := p.src.ReadInstantaneousState()
	if err != nil {
		s.Err = err
		return s
	}

	// Commit only if all reads succeeded
	s.Active = active
	s.FaultRegister = fr
	s.Enables = en
	s.States = st
	return s
}

// Observe compares s with the previous good sample and fires the edge.
// Failed samples are ignored; the first good sample is a baseline.
func (p *Poller) Observe(s Sample) Edge {
	if s.Err != nil {
		return EdgeNone
	}

	prev := p.last
	active := s.Active
	p.last = &active

	if prev == nil || *prev == active {
		return EdgeNone
	}
	if active {
		p.edges.ActiveEdge()
		return EdgeActive
	}
	p.edges.FaultEdge()
	return EdgeFault
}
