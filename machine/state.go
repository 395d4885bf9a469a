package machine

import "github.com/asmod-lang/asmodeus-sub000/encoding"

// MemorySize is the word capacity of the address space.
const MemorySize = 2048

// stackTop is the first address below the stack's empty state; WS is
// pre-decremented on push and post-incremented on pop, so the stack
// holds addresses [WS, stackTop).
const stackTop = MemorySize - 1

// RegisterCount is the number of general-purpose registers available
// to Register/RegisterIndirect/BaseRegister addressing.
const RegisterCount = 8

// Machine is Machine W's full architectural state.
type Machine struct {
	Memory [MemorySize]uint16

	AK uint16 // accumulator
	L  uint16 // instruction counter, masked to 11 bits
	AD uint16 // argument/address latch
	KOD uint16 // decoded opcode latch

	WS        uint16 // stack pointer, grows downward from stackTop
	Registers [RegisterCount]uint16

	Running bool

	InterruptsEnabled bool
	InterruptMask     uint16
	pendingInterrupt  *uint16

	inputQueue []uint16
	outputLog  []uint16

	breakpoints map[uint16]bool

	InteractiveIO bool
	Extended      bool

	Steps    uint64
	MaxSteps uint64 // 0 means unlimited
}

// New creates a Machine with an empty memory image and the stack
// pointer at its reset position.
func New(extended bool) *Machine {
	m := &Machine{Extended: extended, breakpoints: make(map[uint16]bool)}
	m.Reset()
	return m
}

// Reset clears all architectural state, including breakpoints. The
// extended-instruction flag, InteractiveIO and MaxSteps persist across
// a reset. Interrupts start enabled.
func (m *Machine) Reset() {
	m.Memory = [MemorySize]uint16{}
	m.AK, m.L, m.AD, m.KOD = 0, 0, 0, 0
	m.WS = stackTop
	m.Registers = [RegisterCount]uint16{}
	m.Running = false
	m.InterruptsEnabled = true
	m.InterruptMask = 0
	m.pendingInterrupt = nil
	m.inputQueue = nil
	m.outputLog = nil
	m.breakpoints = make(map[uint16]bool)
	m.Steps = 0
}

// LoadProgram copies words into memory starting at address zero and
// sets the instruction counter to entry.
func (m *Machine) LoadProgram(words []encoding.Word, entry uint16) error {
	if len(words) > MemorySize {
		return newError(0, ErrorAddressOutOfBounds, "program exceeds memory capacity")
	}
	if int(entry) >= MemorySize {
		return newError(entry, ErrorAddressOutOfBounds, "entry point out of range")
	}
	for i, w := range words {
		m.Memory[i] = w
	}
	m.L = entry
	m.Running = true
	return nil
}

// Snapshot is an immutable capture of architectural state for
// debugger-style inspection.
type Snapshot struct {
	AK, L, AD, KOD, WS uint16
	Registers          [RegisterCount]uint16
	Running            bool
	InterruptsEnabled  bool
	InterruptMask      uint16
	Steps              uint64
}

// Snapshot captures the machine's current architectural state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		AK: m.AK, L: m.L, AD: m.AD, KOD: m.KOD, WS: m.WS,
		Registers:         m.Registers,
		Running:           m.Running,
		InterruptsEnabled: m.InterruptsEnabled,
		InterruptMask:     m.InterruptMask,
		Steps:             m.Steps,
	}
}

// MemoryRange returns a copy of memory words in [start, end).
func (m *Machine) MemoryRange(start, end uint16) []uint16 {
	if end > MemorySize {
		end = MemorySize
	}
	if start >= end {
		return nil
	}
	out := make([]uint16, end-start)
	copy(out, m.Memory[start:end])
	return out
}

// AddBreakpoint arms a breakpoint at address.
func (m *Machine) AddBreakpoint(address uint16) {
	m.breakpoints[address] = true
}

// RemoveBreakpoint disarms a breakpoint at address.
func (m *Machine) RemoveBreakpoint(address uint16) {
	delete(m.breakpoints, address)
}

// ListBreakpoints returns all armed breakpoint addresses, unordered.
func (m *Machine) ListBreakpoints() []uint16 {
	out := make([]uint16, 0, len(m.breakpoints))
	for addr := range m.breakpoints {
		out = append(out, addr)
	}
	return out
}

// ClearAllBreakpoints disarms every breakpoint.
func (m *Machine) ClearAllBreakpoints() {
	m.breakpoints = make(map[uint16]bool)
}

// SetInputQueue replaces the pending input values consumed by WEJSCIE.
func (m *Machine) SetInputQueue(values []uint16) {
	m.inputQueue = append([]uint16(nil), values...)
}

// OutputLog returns every value written by WYJSCIE so far.
func (m *Machine) OutputLog() []uint16 {
	return m.outputLog
}

// ClearOutputLog discards the accumulated output log.
func (m *Machine) ClearOutputLog() {
	m.outputLog = nil
}

// SetInteractiveIO toggles whether WEJSCIE should be treated as
// soliciting live input rather than draining a pre-seeded queue. Both
// modes are served from the same input queue; no interactive terminal
// is wired up at this layer.
func (m *Machine) SetInteractiveIO(interactive bool) {
	m.InteractiveIO = interactive
}

// TriggerInterrupt marks vector as the pending interrupt. A second
// call before the first is serviced overwrites it.
func (m *Machine) TriggerInterrupt(vector uint16) {
	v := vector
	m.pendingInterrupt = &v
}
