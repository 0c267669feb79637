// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package kernel

import (
	"github.com/bern-rtos/bern-rtos/arch"
)

// Priority is a scheduling priority level. Smaller numbers outrank larger
// ones; the highest level number is reserved for the idle task.
type Priority uint8

// TaskState is the scheduling state of a task.
type TaskState int

//go:generate go tool stringer -linecomment -type=TaskState
const (
	TASK_READY      = TaskState(0) // ready
	TASK_RUNNING    = TaskState(1) // running
	TASK_BLOCKED    = TaskState(2) // blocked
	TASK_TERMINATED = TaskState(3) // terminated
)

// transition is the state a running task moves to at the next context
// switch. It is staged by the syscall or primitive that suspends the task
// and consumed by the switch bottom half.
type transition int

const (
	TRANSITION_NONE = transition(iota) // stay eligible, requeue at own level
	TRANSITION_SLEEPING
	TRANSITION_BLOCKED
	TRANSITION_TERMINATING
)

// Task is a schedulable thread of execution.
//
// A task is in exactly one scheduler queue at all times: its priority's
// ready queue, the wait queue of the event it blocks on, the sleep queue,
// or none while it is Running or Terminated.
type Task struct {
	id       uint32
	name     string
	priority Priority
	state    TaskState

	transition transition
	context    arch.Context
	process    *Process
	stackSize  uint64
	stackFloor uint64 // Lowest valid stack address of the task.

	sliceLeft int       // Remaining ticks of the current time slice.
	wakeAt    arch.Tick // Wake-up tick while sleeping.
	blockedOn *Event    // Wait reason while blocked on a primitive.
	waitCount uint      // Units requested from the blocking primitive.
}

// ID returns the unique task identifier.
func (t *Task) ID() uint32 {
	return t.id
}

// Name returns the task name.
func (t *Task) Name() string {
	return t.name
}

// Priority returns the task's fixed priority.
func (t *Task) Priority() Priority {
	return t.priority
}

// State returns the current scheduling state.
func (t *Task) State() TaskState {
	return t.state
}

// Process returns the owning process.
func (t *Task) Process() *Process {
	return t.process
}

// Context returns the task's saved context slot.
func (t *Task) Context() arch.Context {
	return t.context
}

// WaitCount returns the units the task requested from the primitive it is
// blocked on. Meaningful only while the task is on an event wait queue.
func (t *Task) WaitCount() uint {
	return t.waitCount
}

// StackSize returns the task's stack size in bytes.
func (t *Task) StackSize() uint64 {
	return t.stackSize
}

// StackFloor returns the lowest valid address of the task's stack. A
// saved stack pointer below the floor is an overflow.
func (t *Task) StackFloor() uint64 {
	return t.stackFloor
}

// TaskConfig is the static descriptor a task is created from.
type TaskConfig struct {
	Name      string
	Priority  Priority
	StackSize uint64
	Entry     func() // Body handed to the port; nil for state-only tasks.
}
