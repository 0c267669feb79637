// Package config loads static system descriptions.
//
// A system file is a Starlark script that declares the kernel parameters
// and the immutable process/task descriptor tables the core consumes:
//
//	kernel(priorities = 8, slice_ticks = 10)
//
//	process("app",
//	    regions = [
//	        region(base = 0x20000000, size = 4096, user = "rw"),
//	        region(base = 0x08000000, size = 0x10000, kind = "flash",
//	               user = "ro", executable = True, shared = True),
//	    ])
//
//	task("worker", process = "app", priority = 2, stack = 1024)
//
// Starlark gives the descriptions compile-time expression evaluation
// (sizes like 64 * 1024) without making the table dynamic: the loader
// runs once, validates, and returns a frozen System.
package config
