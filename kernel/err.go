package kernel

import (
	"errors"

	"github.com/bern-rtos/bern-rtos/translate"
)

var f = translate.From

var (
	// Lifecycle errors
	ErrKernelRunning    = errors.New(f("kernel already running"))
	ErrKernelNotRunning = errors.New(f("kernel not running"))

	// Capacity errors
	ErrTaskLimit    = errors.New(f("task table full"))
	ErrProcessLimit = errors.New(f("process table full"))
	ErrEventLimit   = errors.New(f("event table full"))

	// Usage errors
	ErrAwaitInInterrupt = errors.New(f("cannot block in interrupt context"))
)

// ErrPriorityLevels indicates an unusable priority level count.
type ErrPriorityLevels struct {
	Levels int
}

func (err *ErrPriorityLevels) Error() string {
	return f("%d priority levels, need 2..%d", err.Levels, PRIORITY_LIMIT)
}

// ErrPriorityRange indicates a task priority outside the user range.
type ErrPriorityRange struct {
	Priority Priority
	Limit    Priority
}

func (err *ErrPriorityRange) Error() string {
	return f("priority %d out of range, user tasks take 0..%d", err.Priority, err.Limit-1)
}

// ErrDuplicateName indicates a process or task name registered twice.
type ErrDuplicateName struct {
	Name string
}

func (err *ErrDuplicateName) Error() string {
	return f("name %v already in use", err.Name)
}

// ErrEventUnknown indicates an event ID that was never registered.
type ErrEventUnknown struct {
	ID uint32
}

func (err *ErrEventUnknown) Error() string {
	return f("event %d unknown", err.ID)
}
