package kernel

import (
	"github.com/bern-rtos/bern-rtos/arch"
	"github.com/bern-rtos/bern-rtos/mem"
)

// Process is an isolation domain: one or more tasks sharing a memory
// protection profile. Processes are created once from static
// configuration and live for the system's lifetime.
type Process struct {
	id      uint32
	name    string
	regions *mem.RegionSet
	tasks   []*Task
}

// ID returns the unique process identifier.
func (p *Process) ID() uint32 {
	return p.id
}

// Name returns the process name.
func (p *Process) Name() string {
	return p.name
}

// Regions returns the process's validated protection profile.
func (p *Process) Regions() []arch.Region {
	return p.regions.Regions
}

// Tasks returns the tasks owned by the process.
func (p *Process) Tasks() []*Task {
	return p.tasks
}

// ProcessConfig is the static descriptor a process is created from.
type ProcessConfig struct {
	Name    string
	Regions []arch.Region
}
