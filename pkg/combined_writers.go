package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans every write out to all its writers, e.g. stdout plus the rotated log file.
// A failing writer does not stop the others; the write only fails when none of them took it.
type CombinedWriter struct {
	writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{}
	for _, w := range writers {
		if w != nil {
			cw.writers = append(cw.writers, w)
		}
	}
	return cw
}

func (cw *CombinedWriter) Len() int {
	return len(cw.writers)
}

func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var (
		errs error
		ok   int
	)
	for _, w := range cw.writers {
		if _, err := w.Write(p); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		ok++
	}

	if ok == 0 && len(cw.writers) > 0 {
		return 0, errs
	}
	return len(p), errs
}
