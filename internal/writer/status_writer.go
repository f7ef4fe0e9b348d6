// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/octolok/internal/status"
)

// StatusWriter is the delivery-only contract for device status.
// It receives a snapshot and writes it verbatim.
// No logic, no state, no interpretation.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// deviceStatusWriter writes the block incrementally and re-asserts it in
// full after any doubt.
type deviceStatusWriter struct {
	plan *StatusPlan
	cli  endpointClient

	needFull bool
	last     []uint16
	nameRegs []uint16
}

// NewDeviceStatusWriter builds a status writer for plan.
func NewDeviceStatusWriter(plan *StatusPlan, cli endpointClient) (*deviceStatusWriter, error) {
	if plan == nil {
		return nil, errors.New("status writer: plan required")
	}
	if cli == nil {
		return nil, fmt.Errorf("status writer: missing client for endpoint %s", plan.Endpoint)
	}
	return &deviceStatusWriter{
		plan:     plan,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
		nameRegs: encodeDeviceNameRegs(plan.DeviceName),
	}, nil
}

// WriteStatus delivers a snapshot into status memory.
// On any write failure, the next call re-asserts the full block.
func (sw *deviceStatusWriter) WriteStatus(s status.Snapshot) error {
	regs := status.Encode(s)
	baseAddr := sw.baseAddr()

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		full := sw.fullBlockRegs(regs)
		if err := sw.cli.WriteRegisters(sw.plan.UnitID, baseAddr, full); err != nil {
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}
		sw.needFull = false
		sw.last = regs
		return nil
	}

	// ------------------------------------------------------------
	// Live slots only, one write per run of changed slots
	// ------------------------------------------------------------
	var errs []string
	for _, run := range changedRuns(sw.last, regs) {
		if err := sw.cli.WriteRegisters(
			sw.plan.UnitID,
			baseAddr+uint16(run.from),
			regs[run.from:run.to+1],
		); err != nil {
			errs = append(errs, fmt.Sprintf("slots %d-%d write failed: %v", run.from, run.to, err))
			continue
		}
		copy(sw.last[run.from:run.to+1], regs[run.from:run.to+1])
	}

	if len(errs) > 0 {
		// partial delivery leaves the block in doubt; re-assert next call
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}
	return nil
}

type slotRun struct{ from, to int }

// changedRuns groups the live slots that differ into contiguous runs.
func changedRuns(last, next []uint16) []slotRun {
	var runs []slotRun
	for slot := status.SlotHealthCode; slot <= status.SlotSecondsTripped; slot++ {
		if last[slot] == next[slot] {
			continue
		}
		if n := len(runs); n > 0 && runs[n-1].to == slot-1 {
			runs[n-1].to = slot
			continue
		}
		runs = append(runs, slotRun{from: slot, to: slot})
	}
	return runs
}

func (sw *deviceStatusWriter) baseAddr() uint16 {
	// Each device owns a fixed SlotsPerDevice block.
	return sw.plan.BaseSlot * status.SlotsPerDevice
}

func (sw *deviceStatusWriter) fullBlockRegs(live []uint16) []uint16 {
	regs := make([]uint16, status.SlotsPerDevice)
	copy(regs, live)

	// reserved slots stay zero; device name lives at the end of the block
	copy(regs[status.SlotDeviceNameStart:status.SlotDeviceNameEnd+1], sw.nameRegs)
	return regs
}

// encodeDeviceNameRegs packs up to 16 ASCII characters into 8 uint16 registers.
// Each register stores two ASCII bytes in big-endian order.
func encodeDeviceNameRegs(name string) []uint16 {
	out := make([]uint16, status.SlotDeviceNameSlots)

	b := []byte(name)
	if len(b) > status.DeviceNameMaxChars {
		b = b[:status.DeviceNameMaxChars]
	}

	for i := 0; i < status.DeviceNameMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = printable(b[i])
		}
		if i+1 < len(b) {
			lo = printable(b[i+1])
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}
	return out
}

func printable(c byte) byte {
	if c < 0x20 || c > 0x7E {
		return '?'
	}
	return c
}
