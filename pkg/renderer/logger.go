package renderer

import (
	"fmt"
	"io"

	"github.com/df07/go-raycaster/pkg/core"
)

// WriterLogger implements core.Logger by writing to an io.Writer
type WriterLogger struct {
	w io.Writer
}

func (wl *WriterLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(wl.w, format, args...)
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(w io.Writer) core.Logger {
	return &WriterLogger{w: w}
}

// NopLogger discards all output
type NopLogger struct{}

func (nl *NopLogger) Printf(format string, args ...interface{}) {}

// NewNopLogger creates a logger that discards all output
func NewNopLogger() core.Logger {
	return &NopLogger{}
}
