// Package kernel implements the scheduler and the process-wide kernel
// state of the RTOS core.
//
// The kernel has a strict two-phase lifecycle. During the configuration
// phase processes and tasks are created from static descriptors; nothing
// is preemptible and creation errors are fatal to startup. Start moves the
// kernel into the running phase, dispatches the first task, and from then
// on all scheduling state is mutated only inside critical sections on the
// architecture port.
//
// Scheduling is priority based with a FIFO ready queue per level; the
// smaller the priority number the more important the task. A reserved
// idle task occupies the lowest level and keeps the ready set non-empty.
// With time slicing enabled, equal-priority tasks rotate round-robin on
// slice exhaustion.
//
// Blocking is built on a generic event system: a primitive stages the
// running task on an event's wait queue and requests a context switch;
// waking moves tasks back to their ready queue and preempts immediately
// when a woken task outranks the running one.
package kernel
