// Package cpu provides access to the interrupt-mask bits of the ARM current
// program status register (CPSR).
package cpu

// Exception mask bits in the CPSR. A set bit masks the exception.
const (
	ExceptionFIQ uint32 = 0x40
	ExceptionIRQ uint32 = 0x80
	ExceptionAll uint32 = ExceptionFIQ | ExceptionIRQ
)

// StatusRegister is implemented by objects that can read and write the CPSR.
// On the target it is backed by mrs/msr instructions; hosted builds and tests
// use a SoftStatusRegister.
type StatusRegister interface {
	ReadCPSR() uint32
	WriteCPSR(uint32)
}

var (
	// Active is the status register of the running CPU. While it is nil
	// all functions in this package are no-ops.
	Active StatusRegister

	// waitForInterruptFn is invoked by Halt on every loop iteration. It is
	// mocked by tests.
	waitForInterruptFn = func() {}
)

// ExceptionEnableMask unmasks the exceptions selected by mask.
func ExceptionEnableMask(mask uint32) {
	if Active == nil {
		return
	}

	Active.WriteCPSR(Active.ReadCPSR() &^ (mask & ExceptionAll))
}

// ExceptionDisableMask masks the exceptions selected by mask.
func ExceptionDisableMask(mask uint32) {
	if Active == nil {
		return
	}

	Active.WriteCPSR(Active.ReadCPSR() | (mask & ExceptionAll))
}

// ExceptionEnable enables IRQ handling.
func ExceptionEnable() {
	ExceptionEnableMask(ExceptionIRQ)
}

// ExceptionDisable disables IRQ handling.
func ExceptionDisable() {
	ExceptionDisableMask(ExceptionIRQ)
}

// SaveAndDisable masks IRQs and returns the CPSR value from before the
// change so that it can later be passed to Restore.
func SaveAndDisable() uint32 {
	if Active == nil {
		return 0
	}

	cpsr := Active.ReadCPSR()
	Active.WriteCPSR(cpsr | ExceptionIRQ)
	return cpsr
}

// Restore puts back the exception mask bits saved by SaveAndDisable. Only
// the mask bits are restored.
func Restore(cpsr uint32) {
	if Active == nil {
		return
	}

	cur := Active.ReadCPSR()
	Active.WriteCPSR(cur&^ExceptionAll | cpsr&ExceptionAll)
}

// Halt masks all exceptions and stops instruction execution. It never
// returns.
func Halt() {
	ExceptionDisableMask(ExceptionAll)
	for {
		waitForInterruptFn()
	}
}

// SoftStatusRegister is a StatusRegister kept in memory.
type SoftStatusRegister struct {
	Value uint32
}

// ReadCPSR returns the stored register value.
func (r *SoftStatusRegister) ReadCPSR() uint32 { return r.Value }

// WriteCPSR replaces the stored register value.
func (r *SoftStatusRegister) WriteCPSR(v uint32) { r.Value = v }
