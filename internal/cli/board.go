package cli

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/hegza/xil-custom-sys/device/mmio"
	"github.com/hegza/xil-custom-sys/device/uart"
	"github.com/hegza/xil-custom-sys/kernel/cpu"
	"github.com/hegza/xil-custom-sys/kernel/hal"
	"github.com/hegza/xil-custom-sys/kernel/kfmt"
)

var errNoConsole = errors.New("board emulation: no console detected")

// fifoTap forwards the bytes a UART pushes into its TX FIFO register.
type fifoTap struct {
	addr uintptr
	dst  io.ByteWriter
}

func (t *fifoTap) onWrite(addr uintptr, value uint32) {
	if addr == t.addr {
		t.dst.WriteByte(byte(value))
	}
}

// boardConsole probes the board drivers against an in-memory register file
// and returns a Console that prints through the detected UART. Everything
// the UART transmits once probing is done ends up in out. Probe messages are
// logged at debug level.
func boardConsole(out io.ByteWriter, prefix string, logger *log.Logger) (*kfmt.Console, error) {
	var probeLog bytes.Buffer

	tap := &fifoTap{addr: uart.FIFOAddr(uart.UART1Base), dst: &probeLog}
	bus := mmio.NewMemory()
	bus.OnWrite = tap.onWrite

	if cpu.Active == nil {
		cpu.Active = &cpu.SoftStatusRegister{}
	}

	hal.Reset()
	hal.DetectHardware(bus)
	for _, line := range strings.Split(strings.TrimSpace(probeLog.String()), "\n") {
		logger.Debug("probe", "msg", line)
	}

	console := hal.ActiveConsole()
	if console == nil {
		return nil, errNoConsole
	}

	tap.dst = out
	if prefix != "" {
		console = &kfmt.PrefixSink{Sink: console, Prefix: prefix}
	}
	return kfmt.NewConsole(console), nil
}
