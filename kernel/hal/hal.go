// Package hal probes the board peripherals and wires the detected devices
// into the rest of the system.
package hal

import (
	"bytes"
	"io"
	"sort"

	"github.com/hegza/xil-custom-sys/device"
	"github.com/hegza/xil-custom-sys/device/mmio"
	"github.com/hegza/xil-custom-sys/device/timer/ttc"
	_ "github.com/hegza/xil-custom-sys/device/uart" // registers the console UART driver
	"github.com/hegza/xil-custom-sys/kernel/kfmt"
)

// managedDevices contains the devices discovered by the HAL.
type managedDevices struct {
	activeConsole io.ByteWriter
	activeTimer   *ttc.Timer

	// activeDrivers tracks all initialized device drivers.
	activeDrivers []device.Driver
}

var (
	devices managedDevices
	strBuf  bytes.Buffer
)

// ActiveConsole returns the serial device that kfmt output is sent to, or
// nil if none was found.
func ActiveConsole() io.ByteWriter {
	return devices.activeConsole
}

// ActiveTimer returns the first detected counter/timer, or nil.
func ActiveTimer() *ttc.Timer {
	return devices.activeTimer
}

// ActiveDrivers returns the drivers that were initialized successfully, in
// initialization order.
func ActiveDrivers() []device.Driver {
	return devices.activeDrivers
}

// Reset forgets all detected devices and routes kfmt output back to the
// early print buffer so that a fresh bus can be probed.
func Reset() {
	devices = managedDevices{}
	kfmt.SetOutputSink(nil)
}

// DetectHardware probes for hardware devices behind bus and initializes the
// appropriate drivers.
func DetectHardware(bus mmio.Bus) {
	// Get driver list and sort by detection priority
	drivers := device.DriverList()
	sort.Sort(drivers)

	probe(bus, drivers)
}

// probe executes the probe function for each driver and invokes
// onDriverInit for each successfully initialized driver.
func probe(bus mmio.Bus, driverInfoList device.DriverInfoList) {
	var w kfmt.PrefixSink

	for _, info := range driverInfoList {
		drv := info.Probe(bus)
		if drv == nil {
			continue
		}

		strBuf.Reset()
		major, minor, patch := drv.DriverVersion()
		kfmt.Fprintf(&strBuf, "[hal] %s(%d.%d.%d): ", kfmt.Str(drv.DriverName()), kfmt.Uint(uint32(major)), kfmt.Uint(uint32(minor)), kfmt.Uint(uint32(patch)))

		// the sink changes once a console has been initialized
		w.Sink = kfmt.OutputSink()
		w.Prefix = strBuf.String()
		w.Reset()

		if err := drv.DriverInit(&w); err != nil {
			kfmt.Fprintf(&w, "init failed: %s\n", kfmt.Str(err.Message))
			continue
		}

		kfmt.Fprintf(&w, "initialized\n")
		onDriverInit(drv)
		devices.activeDrivers = append(devices.activeDrivers, drv)
	}
}

// onDriverInit is invoked by probe() whenever a piece of hardware is detected
// and successfully initialized. The first byte-oriented device becomes the
// kfmt output sink; anything buffered so far is flushed to it.
func onDriverInit(drv device.Driver) {
	switch drvImpl := drv.(type) {
	case *ttc.Timer:
		if devices.activeTimer == nil {
			devices.activeTimer = drvImpl
		}
	case io.ByteWriter:
		if devices.activeConsole != nil {
			return
		}

		devices.activeConsole = drvImpl
		kfmt.SetOutputSink(drvImpl)
	}
}
