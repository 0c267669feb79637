package sync

import (
	"errors"

	"github.com/bern-rtos/bern-rtos/translate"
)

var f = translate.From

var (
	ErrWouldBlock = errors.New(f("would block"))

	// Semaphore errors
	ErrSemaphoreOverflow = errors.New(f("semaphore count above limit"))

	// Mutex errors
	ErrMutexReentrant = errors.New(f("mutex already held by caller"))
	ErrMutexNotOwner  = errors.New(f("mutex not held by caller"))
)

// ErrSemaphoreRange indicates a request for more permits than the
// semaphore can ever hold.
type ErrSemaphoreRange struct {
	Count uint
	Limit uint
}

func (err *ErrSemaphoreRange) Error() string {
	return f("request for %d permits, semaphore limit is %d", err.Count, err.Limit)
}

// ErrQueueCapacity indicates a queue created with an unusable capacity.
type ErrQueueCapacity struct {
	Capacity int
}

func (err *ErrQueueCapacity) Error() string {
	return f("queue capacity %d is not positive", err.Capacity)
}
