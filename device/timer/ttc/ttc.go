// Package ttc provides accessors for the Zynq-7000 triple timer counter
// (TTC). Each TTC block holds three 16-bit counters; a Timer drives one of
// them.
package ttc

import (
	"io"

	"github.com/hegza/xil-custom-sys/device"
	"github.com/hegza/xil-custom-sys/device/mmio"
	"github.com/hegza/xil-custom-sys/kernel"
	"github.com/hegza/xil-custom-sys/kernel/kfmt"
)

// Base addresses of the two TTC blocks. Counter n of a block has its
// registers at the block base plus 4*n.
const (
	TTC0Base uintptr = 0xf8001000
	TTC1Base uintptr = 0xf8002000
)

// Register offsets.
const (
	regClockControl   = 0x00
	regCounterControl = 0x0c
	regCounterValue   = 0x18
	regInterval       = 0x24
	regISR            = 0x54
	regIER            = 0x60
)

// Counter control register bits.
const (
	CounterDisable   uint32 = 0x01
	CounterInterval  uint32 = 0x02
	CounterDecrement uint32 = 0x04
	CounterMatch     uint32 = 0x08
	CounterReset     uint32 = 0x10
)

// Clock control register fields.
const (
	clockPrescaleEnable = 0x01
	clockPrescaleMask   = 0x1e
	clockPrescaleShift  = 1
)

// Interrupt bits shared by the ISR and IER registers.
const (
	IntInterval uint32 = 0x01
	IntMatch0   uint32 = 0x02
	IntMatch1   uint32 = 0x04
	IntMatch2   uint32 = 0x08
	IntOverflow uint32 = 0x10
	IntAll      uint32 = 0x1f
)

const (
	// PrescalerDisabled is the prescaler value that bypasses the prescaler.
	PrescalerDisabled uint8 = 16

	maxInterval = 0xffff
)

var (
	errBadCounter = &kernel.Error{Module: "ttc", Message: "counter index out of range"}
)

// Timer is one counter of a TTC block.
type Timer struct {
	bus  mmio.Bus
	base uintptr
}

// New returns a Timer for counter (0 to 2) of the TTC block at blockBase.
func New(bus mmio.Bus, blockBase uintptr, counter int) (*Timer, *kernel.Error) {
	if counter < 0 || counter > 2 {
		return nil, errBadCounter
	}

	return &Timer{bus: bus, base: blockBase + uintptr(4*counter)}, nil
}

// InterruptStatus returns the interrupt status register.
func (t *Timer) InterruptStatus() uint32 {
	return t.bus.Read32(t.base + regISR)
}

// ClearInterruptStatus acknowledges the interrupts selected by mask.
func (t *Timer) ClearInterruptStatus(mask uint32) {
	t.bus.Write32(t.base+regISR, mask)
}

// EnableInterrupts enables the interrupts selected by mask, leaving the
// others untouched.
func (t *Timer) EnableInterrupts(mask uint32) {
	mmio.SetBits(t.bus, t.base+regIER, mask)
}

// DisableInterrupts disables the interrupts selected by mask.
func (t *Timer) DisableInterrupts(mask uint32) {
	mmio.ClearBits(t.bus, t.base+regIER, mask)
}

// SetInterval sets the value the counter counts to in interval mode.
func (t *Timer) SetInterval(value uint32) {
	t.bus.Write32(t.base+regInterval, value)
}

// Interval returns the interval register.
func (t *Timer) Interval() uint32 {
	return t.bus.Read32(t.base + regInterval)
}

// CounterValue returns the current counter value.
func (t *Timer) CounterValue() uint32 {
	return t.bus.Read32(t.base + regCounterValue)
}

// SetOptions replaces the counter control bits other than CounterDisable.
func (t *Timer) SetOptions(options uint32) {
	cur := t.bus.Read32(t.base + regCounterControl)
	t.bus.Write32(t.base+regCounterControl, cur&CounterDisable|options&^CounterDisable)
}

// Start starts the counter without resetting the counter value.
func (t *Timer) Start() {
	mmio.ClearBits(t.bus, t.base+regCounterControl, CounterDisable)
}

// Stop stops the counter.
func (t *Timer) Stop() {
	mmio.SetBits(t.bus, t.base+regCounterControl, CounterDisable)
}

// IsStarted reports whether the counter is running.
func (t *Timer) IsStarted() bool {
	return t.bus.Read32(t.base+regCounterControl)&CounterDisable == 0
}

// ResetCounterValue restarts counting from zero.
func (t *Timer) ResetCounterValue() {
	mmio.SetBits(t.bus, t.base+regCounterControl, CounterReset)
}

// SetPrescaler selects a clock divisor of 2^(prescaler+1). PrescalerDisabled
// feeds the counter with the undivided clock.
func (t *Timer) SetPrescaler(prescaler uint8) {
	addr := t.base + regClockControl
	if prescaler >= PrescalerDisabled {
		mmio.ClearBits(t.bus, addr, clockPrescaleEnable)
		return
	}

	v := t.bus.Read32(addr) &^ clockPrescaleMask
	v |= uint32(prescaler)<<clockPrescaleShift | clockPrescaleEnable
	t.bus.Write32(addr, v)
}

// Prescaler returns the configured prescaler or PrescalerDisabled.
func (t *Timer) Prescaler() uint8 {
	v := t.bus.Read32(t.base + regClockControl)
	if v&clockPrescaleEnable == 0 {
		return PrescalerDisabled
	}

	return uint8((v & clockPrescaleMask) >> clockPrescaleShift)
}

// IntervalFromFreq computes the interval and prescaler that make a counter
// fed by inputClockHz fire at freqHz. It returns false if the frequency
// cannot be reached with a 16-bit interval.
func IntervalFromFreq(inputClockHz, freqHz uint32) (interval uint16, prescaler uint8, ok bool) {
	if freqHz == 0 {
		return maxInterval, 0xff, false
	}

	v := inputClockHz / freqHz
	if v < 4 {
		// too close to the input clock to be useful
		return maxInterval, 0xff, false
	}

	if v <= maxInterval {
		return uint16(v), PrescalerDisabled, true
	}

	for prescaler = 0; prescaler < PrescalerDisabled; prescaler++ {
		v = uint32(uint64(inputClockHz) / (uint64(freqHz) << (prescaler + 1)))
		if v <= maxInterval {
			return uint16(v), prescaler, true
		}
	}

	return maxInterval, 0xff, false
}

// DriverName returns the name of this driver.
func (t *Timer) DriverName() string {
	return "xttcps"
}

// DriverVersion returns the version of this driver.
func (t *Timer) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}

// DriverInit stops the counter, masks and acknowledges its interrupts and
// selects interval mode.
func (t *Timer) DriverInit(w io.ByteWriter) *kernel.Error {
	t.bus.Write32(t.base+regCounterControl, CounterDisable|CounterInterval)
	t.bus.Write32(t.base+regIER, 0)
	t.ClearInterruptStatus(IntAll)
	t.SetPrescaler(PrescalerDisabled)

	kfmt.Fprintf(w, "counter at 0x%08x stopped, interval mode\n", kfmt.Uint(uint32(t.base)))
	return nil
}

func probeForTTC(bus mmio.Bus) device.Driver {
	t, err := New(bus, TTC0Base, 0)
	if err != nil {
		return nil
	}

	return t
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderTimers,
		Probe: probeForTTC,
	})
}
