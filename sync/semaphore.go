// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package sync

import (
	"github.com/bern-rtos/bern-rtos/arch"
	"github.com/bern-rtos/bern-rtos/kernel"
	"github.com/bern-rtos/bern-rtos/trace"
)

// Semaphore is a counting semaphore with a bounded count and a FIFO wait
// queue. The count never goes negative and never exceeds the configured
// limit.
//
// Permits are handed off at Give time: a blocked taker's request is
// deducted from the count before the taker is woken, so a take that had to
// block holds its permits as soon as it runs again.
type Semaphore struct {
	kern  *kernel.Kernel
	event uint32

	count uint
	limit uint
}

// NewSemaphore creates a semaphore with an initial count and an upper
// limit. Must be called before scheduling starts.
func NewSemaphore(kern *kernel.Kernel, initial, limit uint) (s *Semaphore, err error) {
	if limit == 0 || initial > limit {
		return nil, &ErrSemaphoreRange{Count: initial, Limit: limit}
	}

	event, err := kern.EventRegister()
	if err != nil {
		return
	}

	s = &Semaphore{
		kern:  kern,
		event: event,
		count: initial,
		limit: limit,
	}

	return
}

// Available returns the current free count.
func (s *Semaphore) Available() (count uint) {
	arch.Critical(s.kern.Port(), func() {
		count = s.count
	})

	return
}

// Limit returns the configured maximum count.
func (s *Semaphore) Limit() uint {
	return s.limit
}

// TryTake attempts to take count permits without suspending. Returns
// ErrWouldBlock if they are not immediately available.
func (s *Semaphore) TryTake(count uint) (err error) {
	if count > s.limit {
		return &ErrSemaphoreRange{Count: count, Limit: s.limit}
	}

	arch.Critical(s.kern.Port(), func() {
		if s.count < count {
			err = ErrWouldBlock
			return
		}
		s.count -= count
		trace.PrimitiveTake(s.event, count)
	})

	return
}

// Take takes count permits, blocking the calling task until they are
// available. A take that cannot be satisfied never spins and never fails;
// it suspends until a Give hands the permits over.
func (s *Semaphore) Take(count uint) (err error) {
	if count > s.limit {
		return &ErrSemaphoreRange{Count: count, Limit: s.limit}
	}
	if count == 0 {
		return
	}

	arch.Critical(s.kern.Port(), func() {
		if s.count >= count {
			s.count -= count
			trace.PrimitiveTake(s.event, count)
			return
		}

		// Not satisfiable now; join the wait queue inside the same
		// critical section so no Give can slip between check and block.
		err = s.kern.EventAwait(s.event, count)
	})

	return
}

// Give returns count permits and wakes blocked takers in FIFO order for as
// long as the freed count satisfies them. Safe from interrupt context.
func (s *Semaphore) Give(count uint) (err error) {
	if count == 0 {
		return
	}

	arch.Critical(s.kern.Port(), func() {
		if s.count+count > s.limit {
			err = ErrSemaphoreOverflow
			return
		}
		s.count += count
		trace.PrimitiveGive(s.event, count)

		err = s.kern.EventWakeWhile(s.event, func(head *kernel.Task) bool {
			if head.WaitCount() > s.count {
				return false
			}
			s.count -= head.WaitCount()
			trace.PrimitiveTake(s.event, head.WaitCount())
			return true
		})
	})

	return
}
