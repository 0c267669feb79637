// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package kernel

import (
	"fmt"
	"iter"
	"maps"

	"github.com/bern-rtos/bern-rtos/arch"
	"github.com/bern-rtos/bern-rtos/mem"
	"github.com/bern-rtos/bern-rtos/trace"
)

// Capacity limits of the static kernel tables.
const (
	TASK_LIMIT     = 32 // Maximum number of tasks, idle included.
	PROCESS_LIMIT  = 8  // Maximum number of processes, idle included.
	EVENT_LIMIT    = 32 // Maximum number of blocking events.
	PRIORITY_LIMIT = 16 // Maximum number of priority levels.
)

// Stack arena parameters. Task stacks are carved from a flat address
// range; each stack is entered at its top and grows downward toward the
// task's floor.
const (
	STACK_ARENA_BASE   = 0x8000_0000 // First stack address handed out.
	STACK_SIZE_DEFAULT = 1024        // Stack bytes when the config gives none.
)

// KernelState is the lifecycle phase of the kernel.
type KernelState int

//go:generate go tool stringer -linecomment -type=KernelState
const (
	KERNEL_CONFIGURING = KernelState(0) // configuring
	KERNEL_RUNNING     = KernelState(1) // running
)

// Params are the fixed scheduling parameters of a kernel instance.
type Params struct {
	Priorities int // Priority levels including the reserved idle level.
	SliceTicks int // Time slice length in ticks; 0 disables time slicing.
}

// Kernel is the single process-wide scheduler instance.
type Kernel struct {
	port   arch.Port
	mem    *mem.Manager
	params Params
	state  KernelState

	processes []*Process
	tasks     []*Task // Context slot arena, indexed by arch.Context.

	running    *Task
	ready      [][]*Task // One FIFO queue per priority level.
	sleeping   []*Task   // Sorted by wake-up tick.
	terminated []*Task
	events     []*Event

	bindings []interruptBinding
	isrDepth int

	stackNext uint64 // Next free stack arena address.

	idle *Task
}

// New creates a kernel in the configuration phase and registers its
// context-switch and fault handlers on the port.
func New(port arch.Port, params Params) (k *Kernel, err error) {
	if params.Priorities < 2 || params.Priorities > PRIORITY_LIMIT {
		return nil, &ErrPriorityLevels{Levels: params.Priorities}
	}

	k = &Kernel{
		port:      port,
		mem:       mem.NewManager(port),
		params:    params,
		ready:     make([][]*Task, params.Priorities),
		stackNext: STACK_ARENA_BASE,
	}

	port.SetSwitchHandler(k.switchContext)
	port.SetFaultHandler(k.handleFault)

	return
}

// Port returns the architecture port the kernel runs on.
func (k *Kernel) Port() arch.Port {
	return k.port
}

// State returns the kernel lifecycle phase.
func (k *Kernel) State() KernelState {
	return k.state
}

// RunningTask returns the currently running task, or nil before startup.
func (k *Kernel) RunningTask() *Task {
	return k.running
}

// IdleTask returns the reserved idle task, or nil before Start.
func (k *Kernel) IdleTask() *Task {
	return k.idle
}

// Processes returns the created processes in creation order.
func (k *Kernel) Processes() []*Process {
	return k.processes
}

// Tasks returns all tasks in creation order, idle included once started.
func (k *Kernel) Tasks() []*Task {
	return k.tasks
}

// idlePriority returns the reserved lowest priority level.
func (k *Kernel) idlePriority() Priority {
	return Priority(k.params.Priorities - 1)
}

// CreateProcess admits a process from its static descriptor. Only valid
// during the configuration phase; a region validation failure is fatal to
// startup.
func (k *Kernel) CreateProcess(config ProcessConfig) (process *Process, err error) {
	if k.state != KERNEL_CONFIGURING {
		return nil, ErrKernelRunning
	}
	if len(k.processes) == PROCESS_LIMIT {
		return nil, ErrProcessLimit
	}
	for _, prior := range k.processes {
		if prior.name == config.Name {
			return nil, &ErrDuplicateName{Name: config.Name}
		}
	}

	set, err := k.mem.Admit(config.Name, config.Regions)
	if err != nil {
		return
	}

	process = &Process{
		id:      uint32(len(k.processes) + 1),
		name:    config.Name,
		regions: set,
	}
	k.processes = append(k.processes, process)

	return
}

// CreateTask creates a task inside a process from its static descriptor.
// Only valid during the configuration phase. The new task starts Ready.
func (k *Kernel) CreateTask(process *Process, config TaskConfig) (task *Task, err error) {
	if k.state != KERNEL_CONFIGURING {
		return nil, ErrKernelRunning
	}
	if config.Priority >= k.idlePriority() {
		return nil, &ErrPriorityRange{Priority: config.Priority, Limit: k.idlePriority()}
	}

	return k.createTask(process, config)
}

// createTask is CreateTask without the phase and priority-range checks, so
// Start can install the idle task at the reserved level.
func (k *Kernel) createTask(process *Process, config TaskConfig) (task *Task, err error) {
	if len(k.tasks) == TASK_LIMIT {
		return nil, ErrTaskLimit
	}
	for _, prior := range k.tasks {
		if prior.name == config.Name {
			return nil, &ErrDuplicateName{Name: config.Name}
		}
	}

	stackSize := config.StackSize
	if stackSize == 0 {
		stackSize = STACK_SIZE_DEFAULT
	}

	task = &Task{
		id:         uint32(len(k.tasks) + 1),
		name:       config.Name,
		priority:   config.Priority,
		state:      TASK_READY,
		context:    arch.Context(len(k.tasks)),
		process:    process,
		stackSize:  stackSize,
		stackFloor: k.stackNext,
		sliceLeft:  k.params.SliceTicks,
	}
	k.stackNext += stackSize
	k.tasks = append(k.tasks, task)
	process.tasks = append(process.tasks, task)

	k.port.InitContext(task.context, config.Entry, task.stackFloor+stackSize)
	k.ready[task.priority] = append(k.ready[task.priority], task)

	trace.TaskNew(task.id)
	trace.TaskReadyBegin(task.id)

	return
}

// Start installs the idle task, dispatches the first task and moves the
// kernel into the running phase. On real silicon the call never returns;
// a hosted port returns control to the simulation loop.
func (k *Kernel) Start() (err error) {
	if k.state != KERNEL_CONFIGURING {
		return ErrKernelRunning
	}

	// The idle task guarantees the ready set is never globally empty. Its
	// process owns a single shared region so dispatching it never programs
	// an exclusive layout.
	idleProc := &Process{
		id:   uint32(len(k.processes) + 1),
		name: "idle",
	}
	idleProc.regions, err = k.mem.Admit(idleProc.name, []arch.Region{{
		Addr:   0,
		Size:   k.port.MinRegionSize(),
		Kind:   arch.MEMORY_SRAM,
		Access: arch.Access{User: arch.READ_ONLY, System: arch.READ_WRITE},
		Shared: true,
	}})
	if err != nil {
		return
	}
	k.processes = append(k.processes, idleProc)

	k.idle, err = k.createTask(idleProc, TaskConfig{
		Name:     "idle",
		Priority: k.idlePriority(),
	})
	if err != nil {
		return
	}

	first := k.popHighestReady()
	trace.TaskReadyEnd(first.id)

	guard := k.port.EnterCritical()
	err = k.mem.Apply(first.process.regions)
	guard.Exit()
	if err != nil {
		return
	}

	first.state = TASK_RUNNING
	first.sliceLeft = k.params.SliceTicks
	k.running = first
	k.state = KERNEL_RUNNING

	trace.TaskExecBegin(first.id)
	k.port.StartFirstTask(first.context)

	return
}

// Tick is the timer interrupt entry, invoked once per tick. It wakes due
// sleepers, accounts the running task's time slice, and requests a context
// switch when a higher-priority task woke or the slice is exhausted with
// peers waiting.
func (k *Kernel) Tick() {
	if k.state != KERNEL_RUNNING {
		return
	}

	trace.IsrEnter()
	now := k.port.TicksNow()
	preempt := false

	arch.Critical(k.port, func() {
		k.isrDepth++

		// Wake due sleepers. The queue is sorted by wake-up tick, so the
		// scan stops at the first task still asleep.
		for len(k.sleeping) > 0 && k.sleeping[0].wakeAt <= now {
			task := k.sleeping[0]
			k.sleeping[0] = nil
			k.sleeping = k.sleeping[1:]
			k.makeReady(task)
			if task.priority < k.running.priority {
				preempt = true
			}
		}

		if k.params.SliceTicks > 0 && k.running != k.idle {
			k.running.sliceLeft--
			if k.running.sliceLeft <= 0 && len(k.ready[k.running.priority]) > 0 {
				preempt = true
			}
		}

		k.isrDepth--
	})

	if preempt {
		trace.IsrExitToScheduler()
		k.port.TriggerContextSwitch()
	} else {
		trace.IsrExit()
	}
}

// Yield gives up the CPU; the running task moves to the tail of its own
// priority queue.
func (k *Kernel) Yield() {
	if k.state != KERNEL_RUNNING {
		return
	}

	k.port.TriggerContextSwitch()
}

// Sleep blocks the running task for at least the given number of ticks.
func (k *Kernel) Sleep(ticks uint) (err error) {
	if k.state != KERNEL_RUNNING {
		return ErrKernelNotRunning
	}
	if ticks == 0 {
		k.Yield()
		return
	}

	arch.Critical(k.port, func() {
		if k.isrDepth > 0 {
			err = ErrAwaitInInterrupt
			return
		}
		task := k.running
		task.wakeAt = k.port.TicksNow() + arch.Tick(ticks)
		task.transition = TRANSITION_SLEEPING
		trace.TaskBlocked(task.id)
	})
	if err != nil {
		return
	}

	k.port.TriggerContextSwitch()

	return
}

// Exit terminates the running task. It never re-enters scheduling.
func (k *Kernel) Exit() {
	if k.state != KERNEL_RUNNING {
		return
	}

	arch.Critical(k.port, func() {
		k.running.transition = TRANSITION_TERMINATING
	})
	k.port.TriggerContextSwitch()
}

// makeReady moves a task to the tail of its priority's ready queue. The
// caller must hold a critical section.
func (k *Kernel) makeReady(task *Task) {
	task.state = TASK_READY
	k.ready[task.priority] = append(k.ready[task.priority], task)
	trace.TaskReadyBegin(task.id)
}

// popHighestReady removes and returns the head of the highest non-empty
// priority queue. The caller must hold a critical section (or be in the
// single-threaded startup path).
func (k *Kernel) popHighestReady() (task *Task) {
	for priority := range k.ready {
		queue := k.ready[priority]
		if len(queue) == 0 {
			continue
		}
		task = queue[0]
		queue[0] = nil
		k.ready[priority] = queue[1:]
		return
	}

	// Unreachable while the idle task exists; a half-updated queue set is
	// an internal consistency failure, not a recoverable error.
	panic("kernel: idle task must not be suspended")
}

// switchContext is the context-switch bottom half, registered on the port
// and executed at the lowest interrupt level. It files the pausing task
// according to its staged transition, picks the next task from the highest
// non-empty ready queue, and reprograms memory protection when crossing a
// process boundary.
func (k *Kernel) switchContext() {
	var from, to arch.Context

	arch.Critical(k.port, func() {
		pausing := k.running

		// A saved stack pointer below the task's floor is an overflow;
		// the task is terminated instead of resumed, including one that
		// had just staged a block.
		if k.port.StackPointer(pausing.context) < pausing.stackFloor {
			if pausing.blockedOn != nil {
				pausing.blockedOn.pending = removeTask(pausing.blockedOn.pending, pausing)
				pausing.blockedOn = nil
				pausing.waitCount = 0
			}
			pausing.transition = TRANSITION_TERMINATING
		}

		switch pausing.transition {
		case TRANSITION_NONE:
			k.makeReady(pausing)
		case TRANSITION_SLEEPING:
			pausing.state = TASK_BLOCKED
			k.insertSleeping(pausing)
		case TRANSITION_BLOCKED:
			// Already on the event's wait queue since EventAwait.
			pausing.state = TASK_BLOCKED
		case TRANSITION_TERMINATING:
			pausing.state = TASK_TERMINATED
			k.terminated = append(k.terminated, pausing)
			trace.TaskTerminate(pausing.id)
		}
		pausing.transition = TRANSITION_NONE
		trace.TaskExecEnd()

		next := k.popHighestReady()
		trace.TaskReadyEnd(next.id)

		if next.process != pausing.process {
			if err := k.mem.Apply(next.process.regions); err != nil {
				// Regions were validated at admission; failing here means
				// the port and the manager disagree.
				panic(fmt.Sprintf("kernel: region set rejected at dispatch: %v", err))
			}
		}

		next.state = TASK_RUNNING
		next.sliceLeft = k.params.SliceTicks
		k.running = next

		if next == k.idle {
			trace.SystemIdle()
		} else {
			trace.TaskExecBegin(next.id)
		}

		from, to = pausing.context, next.context
	})

	// The switch itself stays outside the critical section; a section must
	// never span a context switch.
	k.port.SwitchContext(from, to)
}

// insertSleeping files a task into the sleep queue, sorted by wake-up
// tick. The caller must hold a critical section.
func (k *Kernel) insertSleeping(task *Task) {
	at := len(k.sleeping)
	for n := range k.sleeping {
		if task.wakeAt < k.sleeping[n].wakeAt {
			at = n
			break
		}
	}
	k.sleeping = append(k.sleeping, nil)
	copy(k.sleeping[at+1:], k.sleeping[at:])
	k.sleeping[at] = task
}

// Stats returns an iterator over kernel statistics.
func (k *Kernel) Stats() iter.Seq2[string, string] {
	stats := map[string]string{
		"kernel.state":     k.state.String(),
		"kernel.processes": fmt.Sprintf("%d", len(k.processes)),
		"kernel.tasks":     fmt.Sprintf("%d", len(k.tasks)),
		"kernel.events":    fmt.Sprintf("%d", len(k.events)),
		"kernel.sleeping":  fmt.Sprintf("%d", len(k.sleeping)),
	}
	if k.running != nil {
		stats["kernel.running"] = k.running.name
	}

	return maps.All(stats)
}
