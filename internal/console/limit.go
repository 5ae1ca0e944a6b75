package console

import "io"

// limitWriter passes through at most max bytes and drops the rest.
// Dropped bytes are reported as written so command bodies keep going.
type limitWriter struct {
	w         io.Writer
	max       int
	written   int
	truncated bool
}

func newLimitWriter(w io.Writer, max int) *limitWriter {
	return &limitWriter{w: w, max: max}
}

func (lw *limitWriter) Write(p []byte) (int, error) {
	if lw.truncated {
		return len(p), nil
	}

	chunk := p
	if remaining := lw.max - lw.written; len(chunk) > remaining {
		chunk = chunk[:remaining]
		lw.truncated = true
	}

	n, err := lw.w.Write(chunk)
	lw.written += n
	if err != nil {
		return n, err
	}
	return len(p), nil
}
