// internal/transport/line.go
package transport

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

// Terminator ends every outbound line.
const Terminator = "\n"

// Line frames newline-terminated ASCII lines over a byte stream.
// One reader, any number of writers.
type Line struct {
	r *bufio.Reader

	wmu sync.Mutex
	w   io.Writer
}

// NewLine wraps rw.
func NewLine(rw io.ReadWriter) *Line {
	return &Line{
		r: bufio.NewReader(rw),
		w: rw,
	}
}

// ReadLine returns the next line without its terminator.
// A trailing "\r" is dropped as well so CRLF peers work.
// A partial line at EOF is discarded.
func (l *Line) ReadLine() (string, error) {
	s, err := l.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, nil
}

// WriteLine writes s followed by the terminator in one write.
func (l *Line) WriteLine(s string) error {
	l.wmu.Lock()
	defer l.wmu.Unlock()

	return writeAll(l.w, []byte(s+Terminator))
}

// ---- helpers ----

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}
