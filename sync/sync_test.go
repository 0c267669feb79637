// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package sync_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bern-rtos/bern-rtos/arch"
	"github.com/bern-rtos/bern-rtos/kernel"
	"github.com/bern-rtos/bern-rtos/sim"
)

func newKernel(t *testing.T) (core *sim.Core, kern *kernel.Kernel, proc *kernel.Process) {
	core = sim.NewCore()

	kern, err := kernel.New(core, kernel.Params{Priorities: 4})
	assert.NoError(t, err)

	proc, err = kern.CreateProcess(kernel.ProcessConfig{
		Name: "app",
		Regions: []arch.Region{{
			Addr:   0x2000_0000,
			Size:   4096,
			Kind:   arch.MEMORY_SRAM,
			Access: arch.Access{User: arch.READ_WRITE, System: arch.READ_WRITE},
		}},
	})
	assert.NoError(t, err)

	return
}

func newTask(t *testing.T, kern *kernel.Kernel, proc *kernel.Process, name string, priority kernel.Priority) (task *kernel.Task) {
	task, err := kern.CreateTask(proc, kernel.TaskConfig{Name: name, Priority: priority})
	assert.NoError(t, err)

	return
}

// tick advances the simulated timer and runs the kernel's tick entry.
func tick(core *sim.Core, kern *kernel.Kernel) {
	core.AdvanceTick()
	kern.Tick()
}
