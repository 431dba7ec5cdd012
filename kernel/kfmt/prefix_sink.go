package kfmt

import "io"

type lineState uint8

const (
	linePending lineState = iota
	lineStarted
	lineEndedLF
)

// PrefixSink is an io.ByteWriter that wraps another io.ByteWriter and injects
// a prefix at the beginning of each line. The prefix is written lazily, right
// before the first byte of a line, so output ending in a line break does not
// leave a dangling prefix behind. A CR that directly follows an LF ("\n\r",
// as written by Println) is kept on the line it terminates.
type PrefixSink struct {
	// A sink where all bytes get sent to.
	Sink io.ByteWriter

	// The prefix injected at the beginning of each line.
	Prefix string

	state lineState
}

// WriteByte writes b to the underlying sink, preceded by the prefix if b is
// the first byte of a new line.
func (w *PrefixSink) WriteByte(b byte) error {
	switch {
	case w.state == lineEndedLF && b == '\r':
		w.state = linePending
		return w.Sink.WriteByte(b)
	case w.state != lineStarted:
		for i := 0; i < len(w.Prefix); i++ {
			if err := w.Sink.WriteByte(w.Prefix[i]); err != nil {
				return err
			}
		}
	}

	if b == '\n' {
		w.state = lineEndedLF
	} else {
		w.state = lineStarted
	}

	return w.Sink.WriteByte(b)
}

// Reset makes the next byte start a fresh, prefixed line.
func (w *PrefixSink) Reset() {
	w.state = linePending
}
