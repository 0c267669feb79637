// Package sync provides the blocking coordination primitives of the RTOS
// core: counting semaphores, ownership-tracking mutexes, and bounded
// message queues.
//
// All of them share one blocking/waking skeleton, the kernel's event
// system, layered only on the architecture port's critical sections.
// Waiters are enqueued in FIFO arrival order and woken in that order;
// dispatch of a woken task follows scheduler priority rules, so waking a
// task that outranks the running one preempts immediately.
//
// Give and unlock-style wake operations are safe from interrupt context;
// take and lock operations block and therefore are not.
//
// Priority inheritance is not implemented; FIFO hand-off can invert
// priorities while a lock is held.
package sync
