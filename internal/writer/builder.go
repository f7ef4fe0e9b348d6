// internal/writer/builder.go
package writer

import (
	"time"

	cfg "github.com/tamzrod/octolok/internal/config"
	wmodbus "github.com/tamzrod/octolok/internal/writer/modbus"
)

// BuildPlan converts the mirror section into a StatusPlan.
// Assumes config has already passed validation.
func BuildPlan(m cfg.MirrorConfig) *StatusPlan {
	return &StatusPlan{
		Endpoint:   m.Endpoint,
		UnitID:     m.UnitID,
		BaseSlot:   m.BaseSlot,
		DeviceName: m.DeviceName,
	}
}

// Build connects the mirror endpoint and returns a ready status writer.
func Build(m cfg.MirrorConfig) (StatusWriter, func() error, error) {
	plan := BuildPlan(m)

	c, err := wmodbus.NewEndpointClient(wmodbus.Config{
		Endpoint: plan.Endpoint,
		Timeout:  time.Duration(m.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, err
	}

	sw, err := NewDeviceStatusWriter(plan, c)
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	return sw, c.Close, nil
}
