// Package mmio abstracts 32-bit memory-mapped register access so that
// drivers can run against real hardware or an in-memory register file.
package mmio

// Bus reads and writes 32-bit device registers.
type Bus interface {
	Read32(addr uintptr) uint32
	Write32(addr uintptr, value uint32)
}

// SetBits performs a read-modify-write that sets the bits of mask in the
// register at addr.
func SetBits(bus Bus, addr uintptr, mask uint32) {
	bus.Write32(addr, bus.Read32(addr)|mask)
}

// ClearBits performs a read-modify-write that clears the bits of mask in the
// register at addr.
func ClearBits(bus Bus, addr uintptr, mask uint32) {
	bus.Write32(addr, bus.Read32(addr)&^mask)
}

// Memory is a sparse register file. Registers that were never written read
// as zero. It is used by hosted builds and tests.
type Memory struct {
	regs map[uintptr]uint32

	// OnWrite, if set, is invoked after every write.
	OnWrite func(addr uintptr, value uint32)

	// OnRead, if set, can override the value returned by a read.
	OnRead func(addr uintptr, value uint32) uint32
}

// NewMemory returns an empty register file.
func NewMemory() *Memory {
	return &Memory{regs: make(map[uintptr]uint32)}
}

// Read32 returns the value of the register at addr.
func (m *Memory) Read32(addr uintptr) uint32 {
	v := m.regs[addr]
	if m.OnRead != nil {
		v = m.OnRead(addr, v)
	}
	return v
}

// Write32 stores value in the register at addr.
func (m *Memory) Write32(addr uintptr, value uint32) {
	m.regs[addr] = value
	if m.OnWrite != nil {
		m.OnWrite(addr, value)
	}
}
