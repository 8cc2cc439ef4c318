package printer

import (
	"fmt"
	"io"
)

// Out wraps the output stream of one print call. It latches the first write
// error so the traversal and the strategies can print without checking every
// write, the engine reports the latched error when the call finishes.
type Out struct {
	w   io.Writer
	err error
}

func newOut(w io.Writer) *Out {
	return &Out{w: w}
}

// Printf formats to the output stream.
func (o *Out) Printf(format string, args ...any) {
	if o.err != nil {
		return
	}
	_, o.err = fmt.Fprintf(o.w, format, args...)
}

// WriteString writes a string to the output stream.
func (o *Out) WriteString(s string) {
	if o.err != nil {
		return
	}
	_, o.err = io.WriteString(o.w, s)
}

// Newline writes a line break to the output stream.
func (o *Out) Newline() {
	o.WriteString("\n")
}

// Err returns the first write error.
func (o *Out) Err() error {
	return o.err
}
