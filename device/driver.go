// Package device defines the driver model shared by all board peripherals.
package device

import (
	"io"

	"github.com/hegza/xil-custom-sys/device/mmio"
	"github.com/hegza/xil-custom-sys/kernel"
)

// Driver is an interface implemented by all drivers.
type Driver interface {
	// DriverName returns the name of the driver.
	DriverName() string

	// DriverVersion returns the driver version.
	DriverVersion() (major uint16, minor uint16, patch uint16)

	// DriverInit initializes the device driver. If the driver init code
	// needs to log some output, it can use the supplied io.ByteWriter in
	// conjunction with a call to kfmt.Fprintf.
	DriverInit(io.ByteWriter) *kernel.Error
}

// ProbeFn is a function that checks for the presence of a particular piece
// of hardware behind bus and returns a driver for it, or nil.
type ProbeFn func(bus mmio.Bus) Driver

// DetectOrder specifies when each driver's probe function will be invoked
// by the hal package. Lower values run first.
type DetectOrder int8

const (
	// DetectOrderEarly specifies that the driver must be probed before
	// anything else.
	DetectOrderEarly DetectOrder = -128

	// DetectOrderConsole is used by serial ports so that the messages of
	// every later driver reach a real sink.
	DetectOrderConsole DetectOrder = -64

	// DetectOrderTimers is used by counter/timer peripherals.
	DetectOrderTimers DetectOrder = 0

	// DetectOrderLast specifies that the driver must be probed last.
	DetectOrderLast DetectOrder = 127
)

// DriverInfo is a driver-defined struct that is passed to calls to
// RegisterDriver.
type DriverInfo struct {
	// Order specifies at which stage of the HW detection step the probe
	// function for this driver should be invoked.
	Order DetectOrder

	// Probe is the driver's probe function.
	Probe ProbeFn
}

// DriverInfoList is a list of registered drivers that implements
// sort.Interface.
type DriverInfoList []*DriverInfo

// Len returns the length of the driver info list.
func (l DriverInfoList) Len() int { return len(l) }

// Swap exchanges 2 elements in the driver info list.
func (l DriverInfoList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

// Less compares 2 elements of the driver info list.
func (l DriverInfoList) Less(i, j int) bool { return l[i].Order < l[j].Order }

var (
	// registeredDrivers holds the drivers registered by init functions.
	registeredDrivers DriverInfoList
)

// RegisterDriver adds the supplied driver info to the list of drivers probed
// by the hal package. Drivers call it from their init functions.
func RegisterDriver(info *DriverInfo) {
	registeredDrivers = append(registeredDrivers, info)
}

// DriverList returns the list of registered drivers.
func DriverList() DriverInfoList {
	return registeredDrivers
}
