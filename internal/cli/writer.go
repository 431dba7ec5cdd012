package cli

import (
	"os"

	"golang.org/x/sys/unix"
)

// Writer writes to a file descriptor with raw write(2) calls.
type Writer struct {
	fd int
}

// NewWriter creates a Writer for f.
func NewWriter(f *os.File) *Writer {
	return &Writer{fd: int(f.Fd())}
}

// Write writes all of data, retrying short writes and EINTR.
func (w *Writer) Write(data []byte) (int, error) {
	var written int
	for len(data) > 0 {
		n, err := unix.Write(w.fd, data)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return written, err
		}
		written += n
		data = data[n:]
	}
	return written, nil
}
