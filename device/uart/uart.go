// Package uart drives the Zynq-7000 PS UART (Cadence UART IP). A PS value is
// an io.ByteWriter and is normally installed as the kfmt output sink.
package uart

import (
	"io"

	"github.com/hegza/xil-custom-sys/device"
	"github.com/hegza/xil-custom-sys/device/mmio"
	"github.com/hegza/xil-custom-sys/kernel"
	"github.com/hegza/xil-custom-sys/kernel/kfmt"
)

// Base addresses of the two PS UART controllers.
const (
	UART0Base uintptr = 0xe0000000
	UART1Base uintptr = 0xe0001000
)

// Register offsets.
const (
	regControl       = 0x00
	regMode          = 0x04
	regBaudGen       = 0x18
	regChannelStatus = 0x2c
	regFIFO          = 0x30
	regBaudDiv       = 0x34
)

// Control register bits.
const (
	crRxReset   = 0x01
	crTxReset   = 0x02
	crRxEnable  = 0x04
	crRxDisable = 0x08
	crTxEnable  = 0x10
	crTxDisable = 0x20
)

// Channel status register bits.
const (
	srTxEmpty = 0x08
	srTxFull  = 0x10
)

const (
	// modeNormal8N1 selects normal channel mode, 1 stop bit, no parity and
	// 8 data bits.
	modeNormal8N1 = 0x20

	// Divisors for 115200 baud from the 100MHz reference clock.
	baudGen115200 = 124
	baudDiv115200 = 6

	// maxTxPolls bounds the wait for space in the TX FIFO.
	maxTxPolls = 1 << 20
)

var (
	errTxStuck = &kernel.Error{Module: "uart", Message: "tx fifo did not drain"}
)

// PS is a PS UART controller.
type PS struct {
	bus  mmio.Bus
	base uintptr
}

// New returns a driver for the UART controller at base.
func New(bus mmio.Bus, base uintptr) *PS {
	return &PS{bus: bus, base: base}
}

// FIFOAddr returns the address of the TX/RX FIFO register of the controller
// at base.
func FIFOAddr(base uintptr) uintptr {
	return base + regFIFO
}

// WriteByte queues b in the TX FIFO, waiting for space if the FIFO is full.
// If the FIFO stays full for too long the byte is dropped and an error is
// returned.
func (p *PS) WriteByte(b byte) error {
	for polls := 0; p.bus.Read32(p.base+regChannelStatus)&srTxFull != 0; polls++ {
		if polls == maxTxPolls {
			return errTxStuck
		}
	}

	p.bus.Write32(p.base+regFIFO, uint32(b))
	return nil
}

// Flush waits until the TX FIFO is empty.
func (p *PS) Flush() *kernel.Error {
	for polls := 0; p.bus.Read32(p.base+regChannelStatus)&srTxEmpty == 0; polls++ {
		if polls == maxTxPolls {
			return errTxStuck
		}
	}

	return nil
}

// DriverName returns the name of this driver.
func (p *PS) DriverName() string {
	return "xuartps"
}

// DriverVersion returns the version of this driver.
func (p *PS) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}

// DriverInit resets the controller and configures it for 115200 8N1.
func (p *PS) DriverInit(w io.ByteWriter) *kernel.Error {
	p.bus.Write32(p.base+regControl, crTxDisable|crRxDisable)
	p.bus.Write32(p.base+regBaudGen, baudGen115200)
	p.bus.Write32(p.base+regBaudDiv, baudDiv115200)
	p.bus.Write32(p.base+regMode, modeNormal8N1)
	p.bus.Write32(p.base+regControl, crTxReset|crRxReset)
	p.bus.Write32(p.base+regControl, crTxEnable|crRxEnable)

	kfmt.Fprintf(w, "base 0x%08x, 115200 8N1\n", kfmt.Uint(uint32(p.base)))
	return nil
}

func probeForUART(bus mmio.Bus) device.Driver {
	return New(bus, UART1Base)
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderConsole,
		Probe: probeForUART,
	})
}
