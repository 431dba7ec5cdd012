package kfmt

import (
	"io"

	"github.com/hegza/xil-custom-sys/kernel/cpu"
	"github.com/hegza/xil-custom-sys/kernel/sync"
)

// Console serializes formatted output to a sink that is shared between the
// main control flow and interrupt handlers. Each call masks IRQs on the
// active CPU and holds a spinlock while formatting, so the bytes of one call
// are never interleaved with another.
type Console struct {
	lock sync.Spinlock
	sink io.ByteWriter
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.ByteWriter) *Console {
	return &Console{sink: w}
}

// Printf formats to the console sink. See Fprintf.
func (c *Console) Printf(format string, args ...Arg) {
	cpsr := cpu.SaveAndDisable()
	c.lock.Acquire()
	Fprintf(c.sink, format, args...)
	c.lock.Release()
	cpu.Restore(cpsr)
}

// Println formats to the console sink and appends "\n\r". See Fprintln.
func (c *Console) Println(format string, args ...Arg) {
	cpsr := cpu.SaveAndDisable()
	c.lock.Acquire()
	Fprintln(c.sink, format, args...)
	c.lock.Release()
	cpu.Restore(cpsr)
}
