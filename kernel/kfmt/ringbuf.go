package kfmt

import "io"

// ringBufferSize defines size of the ring buffer that buffers early Printf
// output. It must always be a power of 2.
const ringBufferSize = 2048

// ringBuffer captures the output of Printf before a sink is installed. Once
// full, each new byte overwrites the oldest one.
type ringBuffer struct {
	buffer         [ringBufferSize]byte
	rIndex, wIndex int
}

// WriteByte appends b to the buffer, dropping the oldest byte if the buffer
// is full. It never fails.
func (rb *ringBuffer) WriteByte(b byte) error {
	rb.buffer[rb.wIndex] = b
	rb.wIndex = (rb.wIndex + 1) & (ringBufferSize - 1)
	if rb.rIndex == rb.wIndex {
		rb.rIndex = (rb.rIndex + 1) & (ringBufferSize - 1)
	}

	return nil
}

// ReadByte removes and returns the oldest buffered byte. It returns io.EOF
// when the buffer is empty.
func (rb *ringBuffer) ReadByte() (byte, error) {
	if rb.rIndex == rb.wIndex {
		return 0, io.EOF
	}

	b := rb.buffer[rb.rIndex]
	rb.rIndex = (rb.rIndex + 1) & (ringBufferSize - 1)
	return b, nil
}

// Len returns the number of buffered bytes.
func (rb *ringBuffer) Len() int {
	return (rb.wIndex - rb.rIndex) & (ringBufferSize - 1)
}

// drainTo moves all buffered bytes to w.
func (rb *ringBuffer) drainTo(w io.ByteWriter) {
	for {
		b, err := rb.ReadByte()
		if err == io.EOF {
			return
		}

		w.WriteByte(b)
	}
}
