// internal/status/codec_test.go
package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusWord_PairLayout(t *testing.T) {
	for e := 0; e < 256; e++ {
		for s := 0; s < 256; s += 7 {
			w := StatusWord(uint8(e), uint8(s))
			for ch := 1; ch <= Channels; ch++ {
				bit := uint(ch - 1)
				enabled, ok := ChannelPair(w, ch)
				require.Equal(t, e&(1<<bit) != 0, enabled, "enables=%08b ch=%d", e, ch)
				require.Equal(t, s&(1<<bit) != 0, ok, "states=%08b ch=%d", s, ch)
			}
		}
	}
}

func TestStatusWord_ChannelOrder(t *testing.T) {
	// channel 8 enabled + ok lands in the top pair
	assert.Equal(t, "1100000000000000", FormatWord(StatusWord(0x80, 0x80)))
	// channel 1 enabled, not ok lands in the bottom pair
	assert.Equal(t, "0000000000000010", FormatWord(StatusWord(0x01, 0x00)))
	// disabled channel still reports its raw state
	assert.Equal(t, "0000000000000001", FormatWord(StatusWord(0x00, 0x01)))
}

func TestFormatByte_MSBFirst(t *testing.T) {
	assert.Equal(t, "00000100", FormatByte(0b00000100))
	assert.Equal(t, "10000001", FormatByte(0x81))
	assert.Equal(t, "00000000", FormatByte(0))
}

func TestParseByte_RecoversEveryValue(t *testing.T) {
	for v := 0; v < 256; v++ {
		got, err := ParseByte(FormatByte(uint8(v)))
		require.NoError(t, err)
		require.Equal(t, uint8(v), got)
	}
}

func TestParseWord_Roundtrip(t *testing.T) {
	for _, v := range []uint16{0, 1, 0x8000, 0xAAAA, 0x5555, 0xFFFF, 0x1234} {
		got, err := ParseWord(FormatWord(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestParse_RejectsMalformed(t *testing.T) {
	cases := []string{"", "0101", "000000001", "0000000x", "0000 000"}
	for _, c := range cases {
		_, err := ParseByte(c)
		assert.True(t, errors.Is(err, ErrBadPayload), "input %q", c)
	}
	_, err := ParseWord("00000000")
	assert.ErrorIs(t, err, ErrBadPayload)
}

func TestChannelPair_OutOfRange(t *testing.T) {
	e, ok := ChannelPair(0xFFFF, 0)
	assert.False(t, e)
	assert.False(t, ok)
	e, ok = ChannelPair(0xFFFF, 9)
	assert.False(t, e)
	assert.False(t, ok)
}

func TestEncode_Layout(t *testing.T) {
	regs := Encode(Snapshot{
		Health:         HealthOK,
		Active:         true,
		FaultRegister:  0x04,
		StatusWord:     0xBEEF,
		LastAction:     3,
		SecondsTripped: 9,
	})
	require.Len(t, regs, SlotsPerDevice)
	assert.Equal(t, HealthOK, regs[SlotHealthCode])
	assert.Equal(t, uint16(1), regs[SlotActive])
	assert.Equal(t, uint16(0x04), regs[SlotFaultRegister])
	assert.Equal(t, uint16(0xBEEF), regs[SlotStatusWord])
	assert.Equal(t, uint16(3), regs[SlotLastAction])
	assert.Equal(t, uint16(9), regs[SlotSecondsTripped])
	for i := SlotReservedStart; i <= SlotReservedEnd; i++ {
		assert.Zero(t, regs[i])
	}
}
