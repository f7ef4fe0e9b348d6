// internal/console/console_test.go
package console

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/octolok/internal/status"
)

func TestDecode_StatusWord(t *testing.T) {
	r, err := Decode("RESET_FAIL 1111111111101111")
	require.NoError(t, err)
	assert.Equal(t, "RESET_FAIL", r.Token)
	require.True(t, r.HasWord)

	rows := r.Rows()
	require.Len(t, rows, 8)
	assert.Equal(t, ChannelRow{Channel: 3, Enabled: true, OK: false}, rows[2])
	assert.True(t, rows[0].Enabled && rows[0].OK)
}

func TestDecode_FaultByte(t *testing.T) {
	r, err := Decode("FAULT 00000100")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x04), r.Faults)

	rows := r.Rows()
	assert.True(t, rows[2].Latched)
	assert.False(t, rows[0].Latched)
}

func TestDecode_PlainTokens(t *testing.T) {
	for _, line := range []string{"ACTIVE", "DISABLE_SUCCESS", "MANUAL_RESET", "OCTO-LOK"} {
		r, err := Decode(line)
		require.NoError(t, err, line)
		assert.Equal(t, line, r.Token)
		assert.Nil(t, r.Rows())
	}
}

func TestDecode_Rejects(t *testing.T) {
	_, err := Decode("STATUS 0101")
	assert.ErrorIs(t, err, status.ErrBadPayload)

	_, err = Decode("HELLO")
	assert.ErrorIs(t, err, ErrUnknownReply)

	_, err = Decode("ACTIVE 1")
	assert.ErrorIs(t, err, ErrUnknownReply)
}

func TestRender_Table(t *testing.T) {
	r, err := Decode("STATUS 1111111111111110")
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, r.Render(&b))
	out := b.String()
	assert.True(t, strings.HasPrefix(out, "STATUS\n"))
	assert.Contains(t, out, "ENABLED")
	assert.Contains(t, out, "FAULT")
}

// ---- session ----

type fakeLink struct {
	mu      sync.Mutex
	sent    []string
	answers map[string][]string
	in      chan string
}

func newFakeLink(answers map[string][]string) *fakeLink {
	return &fakeLink{answers: answers, in: make(chan string, 16)}
}

func (f *fakeLink) WriteLine(line string) error {
	f.mu.Lock()
	f.sent = append(f.sent, line)
	answers := f.answers[line]
	f.mu.Unlock()
	for _, a := range answers {
		f.in <- a
	}
	return nil
}

func (f *fakeLink) ReadLine() (string, error) {
	l, ok := <-f.in
	if !ok {
		return "", errors.New("closed")
	}
	return l, nil
}

func TestAsk_SkipsEvents(t *testing.T) {
	link := newFakeLink(map[string][]string{
		"STATUS?": {"MANUAL_RESET", "STATUS 1111111111111111"},
	})
	s := NewSession(link)

	var events []string
	s.OnEvent = func(l string) { events = append(events, l) }

	reply, err := s.Ask("STATUS?")
	require.NoError(t, err)
	assert.Equal(t, "STATUS 1111111111111111", reply)
	assert.Equal(t, []string{"MANUAL_RESET"}, events)
}

func TestAsk_SilentDisable(t *testing.T) {
	s := NewSession(newFakeLink(nil))
	s.Timeout = 20 * time.Millisecond

	_, err := s.Ask("DISABLE?")
	assert.ErrorIs(t, err, ErrNoReply)
}

func TestAsk_LinkFailure(t *testing.T) {
	link := newFakeLink(nil)
	close(link.in)
	s := NewSession(link)

	_, err := s.Ask("RELIALOK?")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoReply)
}

func TestAsk_LateReplyIsNotReused(t *testing.T) {
	link := newFakeLink(nil)
	s := NewSession(link)
	s.Timeout = 20 * time.Millisecond

	var events []string
	s.OnEvent = func(l string) { events = append(events, l) }

	_, err := s.Ask("STATUS?")
	require.ErrorIs(t, err, ErrNoReply)

	// the controller answers after the console gave up
	link.in <- "STATUS 0000000000000000"
	require.Eventually(t, func() bool { return len(s.lines) == 1 }, time.Second, time.Millisecond)

	link.mu.Lock()
	link.answers = map[string][]string{"STATUS?": {"STATUS 1111111111111111"}}
	link.mu.Unlock()
	s.Timeout = time.Second

	reply, err := s.Ask("STATUS?")
	require.NoError(t, err)
	assert.Equal(t, "STATUS 1111111111111111", reply)
	assert.Equal(t, []string{"STATUS 0000000000000000"}, events)
}

func TestWatch_StopsOnCancel(t *testing.T) {
	link := newFakeLink(nil)
	s := NewSession(link)
	link.in <- "FAULT 00000001"

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, func(l string) { got <- l })
	}()

	select {
	case l := <-got:
		assert.Equal(t, "FAULT 00000001", l)
	case <-time.After(time.Second):
		t.Fatal("no event")
	}
	cancel()
	require.NoError(t, <-done)
}

func TestExpects(t *testing.T) {
	assert.Equal(t, []string{"ACTIVE", "RESET_SUCCESS", "RESET_FAIL"}, Expects("RESET?"))
	assert.Nil(t, Expects("reset?"))
}
