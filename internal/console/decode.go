// internal/console/decode.go
package console

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/tamzrod/octolok/internal/interlock"
	"github.com/tamzrod/octolok/internal/status"
)

// ErrUnknownReply is returned for a line that is not a controller reply.
var ErrUnknownReply = errors.New("console: unknown reply")

// Report is one decoded reply line.
type Report struct {
	Token string

	// STATUS and RESET_FAIL carry a status word
	Word    uint16
	HasWord bool

	// FAULT_REG and FAULT carry a fault register
	Faults    uint8
	HasFaults bool
}

// ChannelRow is one channel of a decoded payload.
type ChannelRow struct {
	Channel int
	Enabled bool
	OK      bool
	Latched bool
}

// Decode parses a reply line and its bit payload, if any.
func Decode(line string) (Report, error) {
	token, payload, _ := strings.Cut(line, " ")

	switch token {
	case interlock.ReplyStatus, interlock.ReplyResetFail:
		w, err := status.ParseWord(payload)
		if err != nil {
			return Report{}, fmt.Errorf("console: %s: %w", token, err)
		}
		return Report{Token: token, Word: w, HasWord: true}, nil

	case interlock.ReplyFaultRegister, interlock.ReplyFault:
		b, err := status.ParseByte(payload)
		if err != nil {
			return Report{}, fmt.Errorf("console: %s: %w", token, err)
		}
		return Report{Token: token, Faults: b, HasFaults: true}, nil

	case interlock.ReplyActive,
		interlock.ReplyResetSuccess,
		interlock.ReplyDeactive,
		interlock.ReplyDisableSuccess,
		interlock.ReplyManualReset,
		interlock.ReplyManualDisable,
		interlock.Model:
		if payload != "" {
			return Report{}, fmt.Errorf("%w: %q", ErrUnknownReply, line)
		}
		return Report{Token: token}, nil

	default:
		return Report{}, fmt.Errorf("%w: %q", ErrUnknownReply, line)
	}
}

// Rows lists channels 1..8 for a report with a payload.
func (r Report) Rows() []ChannelRow {
	if !r.HasWord && !r.HasFaults {
		return nil
	}
	rows := make([]ChannelRow, 0, status.Channels)
	for ch := 1; ch <= status.Channels; ch++ {
		row := ChannelRow{Channel: ch}
		if r.HasWord {
			row.Enabled, row.OK = status.ChannelPair(r.Word, ch)
		}
		if r.HasFaults {
			row.Latched = r.Faults&(1<<uint(ch-1)) != 0
		}
		rows = append(rows, row)
	}
	return rows
}

// Render writes the token and, for payload replies, a per-channel table.
func (r Report) Render(w io.Writer) error {
	if _, err := fmt.Fprintln(w, r.Token); err != nil {
		return err
	}
	rows := r.Rows()
	if rows == nil {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if r.HasWord {
		fmt.Fprintln(tw, "CH\tENABLED\tINPUT")
		for _, row := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", row.Channel, yesNo(row.Enabled), okBad(row.OK))
		}
	} else {
		fmt.Fprintln(tw, "CH\tLATCHED")
		for _, row := range rows {
			fmt.Fprintf(tw, "%d\t%s\n", row.Channel, yesNo(row.Latched))
		}
	}
	return tw.Flush()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func okBad(v bool) string {
	if v {
		return "ok"
	}
	return "FAULT"
}
