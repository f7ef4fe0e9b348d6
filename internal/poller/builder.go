// internal/poller/builder.go
package poller

import (
	"time"

	cfg "github.com/tamzrod/octolok/internal/config"
)

// Build constructs a Poller from the poll section.
// The source is shared with the dispatcher and must be concurrency-safe.
func Build(c cfg.PollConfig, src Source, edges EdgeHandler) (*Poller, error) {
	return New(
		Config{
			Interval: time.Duration(c.IntervalMs) * time.Millisecond,
		},
		src,
		edges,
	)
}
