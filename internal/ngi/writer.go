// Package ngi holds a small output helper used by the command-line front
// end.
package ngi

import (
	"io"

	"github.com/pkg/errors"
)

// ErrWriter wraps an io.Writer and latches the first write error. Once Err is
// set, Write keeps returning it without touching the underlying writer again.
type ErrWriter struct {
	w   io.Writer
	Err error
}

func (w *ErrWriter) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}

// NewErrWriter returns a new ErrWriter wrapping w.
func NewErrWriter(w io.Writer) *ErrWriter {
	return &ErrWriter{w: w}
}

// flusher is implemented by *bufio.Writer; Flush lets ErrWriter wrap a
// buffered writer without importing bufio itself.
type flusher interface {
	Flush() error
}

// Flush flushes the underlying writer if it buffers, latching any flush
// error the same way Write does.
func (w *ErrWriter) Flush() {
	if w.Err != nil {
		return
	}
	if f, ok := w.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			w.Err = errors.Wrap(err, "flush failed")
		}
	}
}
