// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package arch

// Tick is a monotonic tick count. The counter wraps after 2^64 ticks; it is
// used for accounting only, never for wall-clock guarantees.
type Tick uint64

// Context identifies a saved execution context slot. The machine state held
// in a slot is opaque to the kernel.
type Context int

// ContextNone marks the absence of a saved context.
const ContextNone = Context(-1)

// Guard is an open critical section. Exit must be called exactly once, in
// reverse order of entry when guards nest.
type Guard interface {
	Exit()
}

// Port is the capability set the kernel requires from a processor core.
//
// SetSwitchHandler and SetFaultHandler must be called before the first task
// is started; the remaining methods are only valid afterwards, except for
// EnterCritical and TicksNow which are valid at any time.
type Port interface {
	// EnterCritical masks all preemption sources until the returned guard
	// is exited. Sections nest; a pending context switch request is held
	// back until the outermost guard exits.
	EnterCritical() Guard

	// InitContext prepares the machine state of a context slot so that its
	// first dispatch enters the given entry point, with the stack pointer
	// at sp.
	InitContext(slot Context, entry func(), sp uint64)

	// StackPointer returns the saved stack pointer of a context slot. For
	// the running context the value is the one saved at its last switch.
	StackPointer(slot Context) uint64

	// StartFirstTask transfers control into the given context. It is the
	// one-shot transition from the configuration phase into the running
	// phase.
	StartFirstTask(slot Context)

	// TriggerContextSwitch requests a context switch. The switch handler
	// runs exactly once, at the lowest interrupt level, after all nested
	// critical sections and interrupt handlers have completed. Requests do
	// not stack; triggering while a request is pending is a no-op.
	TriggerContextSwitch()

	// SwitchContext saves the running machine state into from and restores
	// to. Only the switch handler may call it; switches never nest.
	SwitchContext(from, to Context)

	// ConfigureRegions atomically replaces the active memory-protection
	// region set. Must be called with preemption masked. Fails if the
	// region count exceeds the hardware capacity or a region violates the
	// hardware's alignment rules.
	ConfigureRegions(regions []Region) error

	// TicksNow returns the current tick counter.
	TicksNow() Tick

	// MinRegionSize returns the smallest region size the protection
	// hardware can enforce, in bytes.
	MinRegionSize() uint64

	// RegionCount returns the number of protection regions the hardware
	// supports.
	RegionCount() int

	// SetSwitchHandler registers the kernel's context-switch bottom half.
	SetSwitchHandler(handler func())

	// SetFaultHandler registers the callback invoked when the protection
	// hardware reports a violation.
	SetFaultHandler(handler func(Fault))
}

// Critical runs fn inside a critical section on the port.
func Critical(port Port, fn func()) {
	guard := port.EnterCritical()
	defer guard.Exit()
	fn()
}

// FaultKind is a hardware fault category.
type FaultKind int

//go:generate go tool stringer -linecomment -type=FaultKind
const (
	FAULT_MEMORY_ACCESS = FaultKind(0) // memory access
	FAULT_STACK_LIMIT   = FaultKind(1) // stack limit
)

// Fault reports a hardware-detected violation by the context that was
// executing when the fault was raised.
type Fault struct {
	Kind    FaultKind
	Context Context
	Addr    uint64
}
