package mmio

import (
	"sync/atomic"
	"unsafe"
)

// Direct accesses physical registers through pointers. Atomic loads and
// stores keep the compiler from caching or eliding the accesses, which is
// what a volatile read/write needs on the target.
type Direct struct{}

// Read32 loads the register at addr.
//
// addr is a physical register address, not a Go pointer, so the uintptr to
// unsafe.Pointer conversions below are intentional; go vet's unsafeptr
// check reports them and can be ignored for this file only.
//
//go:nocheckptr
func (Direct) Read32(addr uintptr) uint32 {
	return atomic.LoadUint32((*uint32)(unsafe.Pointer(addr)))
}

// Write32 stores value in the register at addr.
//
//go:nocheckptr
func (Direct) Write32(addr uintptr, value uint32) {
	atomic.StoreUint32((*uint32)(unsafe.Pointer(addr)), value)
}
