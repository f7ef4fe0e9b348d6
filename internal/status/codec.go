// internal/status/codec.go
package status

import (
	"errors"
	"fmt"
)

// ErrBadPayload is returned when an ASCII bit payload cannot be decoded.
var ErrBadPayload = errors.New("status: bad bit payload")

// StatusWord packs live channel registers into the current status word.
// Each channel owns one 2-bit pair (enabled, ok); channel 8 is the most
// significant pair and channel 1 the least.
// The ok bit is the raw state even when the channel is disabled.
func StatusWord(enables, states uint8) uint16 {
	var w uint16
	for ch := Channels; ch >= 1; ch-- {
		bit := uint(ch - 1)
		w <<= 2
		if enables&(1<<bit) != 0 {
			w |= 0b10
		}
		if states&(1<<bit) != 0 {
			w |= 0b01
		}
	}
	return w
}

// ChannelPair reads back the (enabled, ok) pair of channel ch (1..8).
func ChannelPair(word uint16, ch int) (enabled, ok bool) {
	if ch < 1 || ch > Channels {
		return false, false
	}
	shift := uint(2 * (ch - 1))
	pair := (word >> shift) & 0b11
	return pair&0b10 != 0, pair&0b01 != 0
}

// FormatByte renders v as 8 ASCII '0'/'1' characters, MSB first.
func FormatByte(v uint8) string {
	return formatBits(uint64(v), ByteWidth)
}

// FormatWord renders v as 16 ASCII '0'/'1' characters, MSB first.
func FormatWord(v uint16) string {
	return formatBits(uint64(v), WordWidth)
}

// ParseByte is the strict inverse of FormatByte.
func ParseByte(s string) (uint8, error) {
	v, err := parseBits(s, ByteWidth)
	return uint8(v), err
}

// ParseWord is the strict inverse of FormatWord.
func ParseWord(s string) (uint16, error) {
	v, err := parseBits(s, WordWidth)
	return uint16(v), err
}

// ---- helpers (pure geometry) ----

func formatBits(v uint64, width int) string {
	out := make([]byte, width)
	for i := 0; i < width; i++ {
		if v&(1<<uint(width-1-i)) != 0 {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return string(out)
}

func parseBits(s string, width int) (uint64, error) {
	if len(s) != width {
		return 0, fmt.Errorf("%w: want %d chars, got %d", ErrBadPayload, width, len(s))
	}
	var v uint64
	for i := 0; i < width; i++ {
		v <<= 1
		switch s[i] {
		case '0':
		case '1':
			v |= 1
		default:
			return 0, fmt.Errorf("%w: invalid char %q at %d", ErrBadPayload, s[i], i)
		}
	}
	return v, nil
}
