// internal/interlock/tee.go
package interlock

import "go.uber.org/zap"

// Tee sends every reply to primary and mirrors it to the others.
// Only the primary's error is returned; mirror failures are logged.
func Tee(log *zap.Logger, primary Replier, mirrors ...Replier) Replier {
	if log == nil {
		log = zap.NewNop()
	}
	return &tee{log: log, primary: primary, mirrors: mirrors}
}

type tee struct {
	log     *zap.Logger
	primary Replier
	mirrors []Replier
}

func (t *tee) WriteLine(line string) error {
	err := t.primary.WriteLine(line)
	for _, m := range t.mirrors {
		if merr := m.WriteLine(line); merr != nil {
			t.log.Warn("reply mirror failed", zap.String("line", line), zap.Error(merr))
		}
	}
	return err
}
