// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package sim

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"math/bits"

	"github.com/bern-rtos/bern-rtos/arch"
)

const (
	CORE_REGION_COUNT   = 8   // Protection regions the simulated MPU holds.
	CORE_REGION_GRANULE = 256 // Smallest protectable region size in bytes.
)

// simContext is one saved-context slot of the simulated core.
type simContext struct {
	entry       func()
	initialized bool

	sp  uint64 // Saved stack pointer.
	low uint64 // Lowest stack pointer ever saved (watermark).
}

// Core is a simulated single-core port. It implements arch.Port with the
// same observable state machine as real silicon: context switch requests
// issued inside a critical section or before start are held pending and
// executed once, synchronously, when the outermost guard exits.
type Core struct {
	Verbose bool // Set to enable verbose logging.

	ticks    arch.Tick
	critical int
	pending  bool
	started  bool

	active   arch.Context
	contexts [](*simContext)

	regions []arch.Region

	switchHandler func()
	faultHandler  func(arch.Fault)

	Switches int // Context switch counter.
}

var _ arch.Port = &Core{}

// NewCore creates a stopped simulated core.
func NewCore() (core *Core) {
	core = &Core{
		active: arch.ContextNone,
	}

	return
}

type guard struct {
	core *Core
}

func (g *guard) Exit() {
	g.core.critical--
	if g.core.critical == 0 {
		g.core.runPendingSwitch()
	}
}

// EnterCritical masks the simulated preemption sources. Guards nest.
func (core *Core) EnterCritical() arch.Guard {
	core.critical++
	return &guard{core: core}
}

// runPendingSwitch executes a held-back context switch request. It runs
// before any further simulated interrupt can be delivered, mirroring a
// switch exception that fires the moment it is unmasked.
func (core *Core) runPendingSwitch() {
	if !core.pending || !core.started {
		return
	}
	core.pending = false
	core.switchHandler()
}

// TriggerContextSwitch requests a context switch. Runs the switch handler
// immediately when no critical section is open; otherwise the request
// stays pending until the outermost guard exits.
func (core *Core) TriggerContextSwitch() {
	core.pending = true
	if core.critical == 0 {
		core.runPendingSwitch()
	}
}

// InitContext prepares a context slot with its entry point and initial
// stack pointer.
func (core *Core) InitContext(slot arch.Context, entry func(), sp uint64) {
	for int(slot) >= len(core.contexts) {
		core.contexts = append(core.contexts, &simContext{})
	}
	core.contexts[slot].entry = entry
	core.contexts[slot].initialized = true
	core.contexts[slot].sp = sp
	core.contexts[slot].low = sp
}

// StackPointer returns the saved stack pointer of a context slot.
func (core *Core) StackPointer(slot arch.Context) uint64 {
	if int(slot) >= len(core.contexts) || slot < 0 {
		return 0
	}
	return core.contexts[slot].sp
}

// SetStackPointer records a context's saved stack pointer, as a context
// save on real silicon would. Simulated task bodies use it to model their
// stack consumption.
func (core *Core) SetStackPointer(slot arch.Context, sp uint64) {
	if int(slot) >= len(core.contexts) || slot < 0 {
		return
	}
	core.contexts[slot].sp = sp
	if sp < core.contexts[slot].low {
		core.contexts[slot].low = sp
	}
}

// StackWatermark returns the lowest stack pointer a context ever saved.
func (core *Core) StackWatermark(slot arch.Context) uint64 {
	if int(slot) >= len(core.contexts) || slot < 0 {
		return 0
	}
	return core.contexts[slot].low
}

// StartFirstTask marks the given context active and starts the core. The
// hosted port returns to the simulation loop instead of never returning.
func (core *Core) StartFirstTask(slot arch.Context) {
	core.active = slot
	core.started = true
	if core.Verbose {
		log.Printf("sim: started, context %d", slot)
	}
}

// SwitchContext saves the running context into from and restores to.
func (core *Core) SwitchContext(from, to arch.Context) {
	if from == to {
		return
	}
	core.active = to
	core.Switches++
	if core.Verbose {
		log.Printf("sim: context %d -> %d", from, to)
	}
}

// ConfigureRegions atomically replaces the active protection region set.
func (core *Core) ConfigureRegions(regions []arch.Region) (err error) {
	if len(regions) > CORE_REGION_COUNT {
		return ErrRegionCount
	}
	for _, region := range regions {
		if region.Size < CORE_REGION_GRANULE || bits.OnesCount64(region.Size) != 1 {
			return ErrRegionInvalid
		}
		if region.Addr%region.Size != 0 {
			return ErrRegionInvalid
		}
	}

	core.regions = append(core.regions[:0], regions...)

	return
}

// Regions returns the active protection region set.
func (core *Core) Regions() []arch.Region {
	return core.regions
}

// TicksNow returns the simulated tick counter.
func (core *Core) TicksNow() arch.Tick {
	return core.ticks
}

// MinRegionSize returns the simulated MPU granule.
func (core *Core) MinRegionSize() uint64 {
	return CORE_REGION_GRANULE
}

// RegionCount returns the simulated MPU region count.
func (core *Core) RegionCount() int {
	return CORE_REGION_COUNT
}

// SetSwitchHandler registers the context-switch bottom half.
func (core *Core) SetSwitchHandler(handler func()) {
	core.switchHandler = handler
}

// SetFaultHandler registers the protection fault callback.
func (core *Core) SetFaultHandler(handler func(arch.Fault)) {
	core.faultHandler = handler
}

// AdvanceTick moves the simulated timer forward by one tick. The caller is
// expected to follow up with the kernel's tick entry.
func (core *Core) AdvanceTick() {
	core.ticks++
}

// Active returns the context slot currently executing.
func (core *Core) Active() arch.Context {
	return core.active
}

// Entry returns the entry point of a context slot, or nil.
func (core *Core) Entry(slot arch.Context) func() {
	if int(slot) >= len(core.contexts) || slot < 0 {
		return nil
	}
	return core.contexts[slot].entry
}

// RaiseFault injects a protection fault against a context, as the
// protection hardware would on an illegal access.
func (core *Core) RaiseFault(fault arch.Fault) {
	if core.faultHandler != nil {
		core.faultHandler(fault)
	}
}

// Stats returns an iterator over core statistics.
func (core *Core) Stats() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"core.ticks":    fmt.Sprintf("%d", core.ticks),
		"core.switches": fmt.Sprintf("%d", core.Switches),
		"core.contexts": fmt.Sprintf("%d", len(core.contexts)),
		"core.regions":  fmt.Sprintf("%d", len(core.regions)),
	})
}
