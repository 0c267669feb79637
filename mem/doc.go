// Package mem validates and programs memory-protection regions.
//
// Regions are admitted per process at configuration time: each region's
// size must be a power of two no smaller than the hardware granule, its
// base must be aligned to its own size, and regions of distinct processes
// must not overlap unless explicitly shared. Admission failures are fatal
// to startup; the kernel refuses to schedule with an unvalidated layout.
//
// At every context switch into a task of a different process the active
// region set is reprogrammed through the architecture port before any of
// the task's instructions execute.
package mem
