// Package arch defines the capability contract the kernel requires from a
// processor core: critical sections, context save/restore, a monotonic tick
// source, and static memory-protection region programming.
//
// The kernel and the synchronization primitives depend only on the Port
// interface, never on a concrete core. A production build provides one Port
// per target silicon; the sim package provides a host-side Port that models
// the same state machine without real interrupts.
package arch
