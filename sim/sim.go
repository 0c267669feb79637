// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package sim

import (
	"iter"
	"log"

	"github.com/bern-rtos/bern-rtos/config"
	"github.com/bern-rtos/bern-rtos/internal"
	"github.com/bern-rtos/bern-rtos/kernel"
)

const (
	// STEPS_PER_TICK is how many execution steps the running task gets
	// between timer ticks.
	STEPS_PER_TICK = 4
)

// Simulator drives a complete system: a simulated core, the kernel on top
// of it, and an interrupt controller. One call to Tick models one timer
// period: the timer interrupt fires, pending interrupt lines drain, and
// the running task's body executes its steps.
type Simulator struct {
	Verbose bool // Set to enable verbose logging.

	Core   *Core
	Kernel *kernel.Kernel
	Irq    *Irq

	StepsPerTick int
}

// NewSimulator creates a simulator with a fresh core and kernel.
func NewSimulator(params kernel.Params) (sim *Simulator, err error) {
	core := NewCore()
	kern, err := kernel.New(core, params)
	if err != nil {
		return
	}

	sim = &Simulator{
		Core:         core,
		Kernel:       kern,
		Irq:          &Irq{},
		StepsPerTick: STEPS_PER_TICK,
	}

	return
}

// FromConfig builds a simulator from a resolved system description,
// attaching task bodies by task name. Tasks without a body idle-step.
func FromConfig(system *config.System, bodies map[string]func()) (sim *Simulator, err error) {
	sim, err = NewSimulator(kernel.Params{
		Priorities: system.Priorities,
		SliceTicks: system.SliceTicks,
	})
	if err != nil {
		return
	}

	processes := map[string](*kernel.Process){}
	for _, pc := range system.Processes {
		var process *kernel.Process
		process, err = sim.Kernel.CreateProcess(kernel.ProcessConfig{
			Name:    pc.Name,
			Regions: pc.Regions,
		})
		if err != nil {
			return nil, err
		}
		processes[pc.Name] = process
	}

	for _, tc := range system.Tasks {
		_, err = sim.Kernel.CreateTask(processes[tc.Process], kernel.TaskConfig{
			Name:      tc.Name,
			Priority:  kernel.Priority(tc.Priority),
			StackSize: tc.Stack,
			Entry:     bodies[tc.Name],
		})
		if err != nil {
			return nil, err
		}
	}

	return
}

// Start begins scheduling. The first dispatch happens here; the simulated
// core hands control back to the caller instead of never returning.
func (sim *Simulator) Start() (err error) {
	sim.Core.Verbose = sim.Verbose

	return sim.Kernel.Start()
}

// Tick models one timer period.
func (sim *Simulator) Tick() (err error) {
	if sim.Kernel.State() != kernel.KERNEL_RUNNING {
		return ErrNotStarted
	}

	sim.Core.AdvanceTick()
	sim.Kernel.Tick()

	for line := range sim.Irq.Drain() {
		sim.Kernel.Interrupt(line)
	}

	for range sim.StepsPerTick {
		sim.Step()
	}

	return
}

// Step executes one step of the running task's body. Idle and body-less
// tasks spin.
func (sim *Simulator) Step() {
	entry := sim.Core.Entry(sim.Core.Active())
	if entry == nil {
		return
	}
	entry()
}

// Run starts the system if needed and models the given number of ticks.
func (sim *Simulator) Run(ticks int) (err error) {
	if sim.Kernel.State() == kernel.KERNEL_CONFIGURING {
		if err = sim.Start(); err != nil {
			return
		}
	}

	for range ticks {
		if err = sim.Tick(); err != nil {
			return
		}
	}

	return
}

// Ticks returns the simulated tick count.
func (sim *Simulator) Ticks() int {
	return int(sim.Core.TicksNow())
}

// Stats returns an iterator over all core and kernel statistics.
func (sim *Simulator) Stats() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		sim.Core.Stats(),
		sim.Kernel.Stats(),
	)
}

// DumpStats logs all statistics, for verbose runs.
func (sim *Simulator) DumpStats() {
	for key, value := range sim.Stats() {
		log.Printf("%v: %v", key, value)
	}
}
