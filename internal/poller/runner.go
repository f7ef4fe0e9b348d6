// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run starts the ticker loop, fires edges and emits each Sample on out.
// out may be nil and is fed without blocking. No overlap. No retries.
func (p *Poller) Run(ctx context.Context, out chan<- Sample) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := p.PollOnce()
			p.Observe(s)

			if out == nil {
				continue
			}
			// a slow consumer misses samples, never edges
			select {
			case out <- s:
			default:
			}
		}
	}
}
