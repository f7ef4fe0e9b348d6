// internal/console/session.go
package console

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tamzrod/octolok/internal/interlock"
)

// DefaultReplyTimeout covers the slowest reply (a reset with two pulses).
const DefaultReplyTimeout = 2 * time.Second

// ErrNoReply is returned when the controller stays silent.
// A failed DISABLE? is answered with silence.
var ErrNoReply = errors.New("console: no reply")

// LineIO is the line transport as the console sees it.
type LineIO interface {
	ReadLine() (string, error)
	WriteLine(line string) error
}

// Session sends commands and pairs them with their replies.
// Event lines arriving in between go to OnEvent.
type Session struct {
	Timeout time.Duration
	OnEvent func(line string)

	io    LineIO
	lines chan string
	errc  chan error
}

// NewSession starts reading rw in the background.
func NewSession(rw LineIO) *Session {
	s := &Session{
		Timeout: DefaultReplyTimeout,
		io:      rw,
		lines:   make(chan string, 16),
		errc:    make(chan error, 1),
	}
	go s.readLoop()
	return s
}

// replies maps each command to the tokens that can answer it.
var replies = map[string][]string{
	interlock.LineReset:         {interlock.ReplyActive, interlock.ReplyResetSuccess, interlock.ReplyResetFail},
	interlock.LineStatus:        {interlock.ReplyStatus},
	interlock.LineFaultRegister: {interlock.ReplyFaultRegister},
	interlock.LineDisable:       {interlock.ReplyDeactive, interlock.ReplyDisableSuccess},
	interlock.LineModel:         {interlock.Model},
}

// Expects reports the reply tokens for cmd; nil for an unknown command.
func Expects(cmd string) []string {
	return replies[cmd]
}

// Ask sends cmd and waits for its reply.
// An unknown command is sent anyway and only times out.
// Lines queued before the command is sent are handed to OnEvent, so a
// late reply to an earlier command is never taken as this one's answer.
func (s *Session) Ask(cmd string) (string, error) {
	s.flush()

	if err := s.io.WriteLine(cmd); err != nil {
		return "", err
	}

	want := Expects(cmd)
	timer := time.NewTimer(s.Timeout)
	defer timer.Stop()

	for {
		select {
		case line := <-s.lines:
			if matches(line, want) {
				return line, nil
			}
			s.event(line)
		case err := <-s.errc:
			return "", err
		case <-timer.C:
			return "", ErrNoReply
		}
	}
}

// Watch hands every line to fn until ctx is done or the link fails.
func (s *Session) Watch(ctx context.Context, fn func(line string)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case line := <-s.lines:
			fn(line)
		case err := <-s.errc:
			return err
		}
	}
}

func (s *Session) readLoop() {
	for {
		line, err := s.io.ReadLine()
		if err != nil {
			s.errc <- err
			return
		}
		s.lines <- line
	}
}

func (s *Session) flush() {
	for {
		select {
		case line := <-s.lines:
			s.event(line)
		default:
			return
		}
	}
}

func (s *Session) event(line string) {
	if s.OnEvent != nil {
		s.OnEvent(line)
	}
}

func matches(line string, tokens []string) bool {
	token, _, _ := strings.Cut(line, " ")
	for _, t := range tokens {
		if token == t {
			return true
		}
	}
	return false
}
