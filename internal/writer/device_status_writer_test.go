// internal/writer/device_status_writer_test.go
package writer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/octolok/internal/status"
)

// ---- fake endpoint client ----

type fakeEndpointClient struct {
	lastUnit     uint8
	lastRegsAddr uint16
	lastRegs     []uint16
	writes       int

	fail bool
}

func (f *fakeEndpointClient) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	f.writes++
	if f.fail {
		return errors.New("endpoint down")
	}
	f.lastUnit = unitID
	f.lastRegsAddr = addr
	f.lastRegs = append([]uint16(nil), regs...)
	return nil
}

func testPlan() *StatusPlan {
	return &StatusPlan{
		Endpoint:   "status-endpoint",
		UnitID:     1,
		BaseSlot:   2,
		DeviceName: "OCTO-01",
	}
}

// ---- tests ----

func TestDeviceNameWrittenOnFullAssertOnly(t *testing.T) {
	cli := &fakeEndpointClient{}
	sw, err := NewDeviceStatusWriter(testPlan(), cli)
	require.NoError(t, err)

	// ---- first write: FULL ASSERT ----
	require.NoError(t, sw.WriteStatus(status.Snapshot{Health: status.HealthOK, Active: true}))

	require.Len(t, cli.lastRegs, status.SlotsPerDevice)
	assert.Equal(t, uint16(2*status.SlotsPerDevice), cli.lastRegsAddr)
	assert.Equal(t, uint8(1), cli.lastUnit)

	want := encodeDeviceNameRegs("OCTO-01")
	assert.Equal(t, want, cli.lastRegs[status.SlotDeviceNameStart:status.SlotDeviceNameEnd+1])
	assert.Equal(t, uint16('O')<<8|uint16('C'), want[0])

	// ---- second write: INCREMENTAL ONLY ----
	require.NoError(t, sw.WriteStatus(status.Snapshot{Health: status.HealthOK, Active: false, FaultRegister: 0x04}))

	assert.Len(t, cli.lastRegs, 2, "device name must not be rewritten")
	assert.Equal(t, 2, cli.writes, "adjacent slots share one write")
	assert.Equal(t, uint16(2*status.SlotsPerDevice+status.SlotActive), cli.lastRegsAddr)
	assert.Equal(t, []uint16{0, 0x04}, cli.lastRegs)
}

func TestChangedRuns(t *testing.T) {
	last := make([]uint16, status.SlotsPerDevice)
	next := make([]uint16, status.SlotsPerDevice)
	next[status.SlotHealthCode] = 1
	next[status.SlotFaultRegister] = 4
	next[status.SlotStatusWord] = 0xFFFF
	next[status.SlotSecondsTripped] = 9
	next[status.SlotDeviceNameStart] = 1 // outside the live range

	assert.Equal(t, []slotRun{{0, 0}, {2, 3}, {5, 5}}, changedRuns(last, next))
	assert.Nil(t, changedRuns(next, next))
}

func TestUnchangedSnapshotWritesNothing(t *testing.T) {
	cli := &fakeEndpointClient{}
	sw, err := NewDeviceStatusWriter(testPlan(), cli)
	require.NoError(t, err)

	s := status.Snapshot{Health: status.HealthOK, StatusWord: 0xFFFF}
	require.NoError(t, sw.WriteStatus(s))
	require.NoError(t, sw.WriteStatus(s))
	assert.Equal(t, 1, cli.writes)
}

func TestFailureForcesFullReassert(t *testing.T) {
	cli := &fakeEndpointClient{}
	sw, err := NewDeviceStatusWriter(testPlan(), cli)
	require.NoError(t, err)

	require.NoError(t, sw.WriteStatus(status.Snapshot{Health: status.HealthOK}))

	cli.fail = true
	assert.Error(t, sw.WriteStatus(status.Snapshot{Health: status.HealthError}))

	cli.fail = false
	require.NoError(t, sw.WriteStatus(status.Snapshot{Health: status.HealthError}))
	assert.Len(t, cli.lastRegs, status.SlotsPerDevice)
}

func TestNewDeviceStatusWriter_MissingClient(t *testing.T) {
	_, err := NewDeviceStatusWriter(testPlan(), nil)
	assert.Error(t, err)
	_, err = NewDeviceStatusWriter(nil, &fakeEndpointClient{})
	assert.Error(t, err)
}

func TestEncodeDeviceNameRegs_TruncatesAndSanitizes(t *testing.T) {
	regs := encodeDeviceNameRegs("AB\x01D0123456789ABCDEFG")
	require.Len(t, regs, status.SlotDeviceNameSlots)
	assert.Equal(t, uint16('A')<<8|uint16('B'), regs[0])
	assert.Equal(t, uint16('?')<<8|uint16('D'), regs[1])
	assert.Equal(t, uint16('A')<<8|uint16('B'), regs[7])
}
