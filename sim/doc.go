// Package sim is the host-side implementation of the architecture
// contract plus a harness that drives a whole system, tick by tick,
// without real interrupts.
//
// The Core models the state machine of a single-core port: a nesting
// critical section that holds pending context switches back until the
// outermost exit, a monotonic tick counter, context slots, and a
// protection unit with a fixed region count and granule. Interrupts are
// modeled as numbered lines with pending counts; the Simulator drains
// them between execution steps, which is where preemption lands in a
// simulation that cannot interrupt running code.
//
// Task bodies are step functions: the Simulator invokes the entry of the
// active context once per step while its task is running. Bodies block by
// calling kernel or primitive operations from inside a step.
package sim
