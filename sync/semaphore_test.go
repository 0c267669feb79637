// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package sync_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bern-rtos/bern-rtos/kernel"
	"github.com/bern-rtos/bern-rtos/sync"
)

func TestSemaphoreRange(t *testing.T) {
	assert := assert.New(t)

	_, kern, _ := newKernel(t)

	var badRange *sync.ErrSemaphoreRange
	_, err := sync.NewSemaphore(kern, 0, 0)
	assert.ErrorAs(err, &badRange)
	_, err = sync.NewSemaphore(kern, 5, 4)
	assert.ErrorAs(err, &badRange)

	s, err := sync.NewSemaphore(kern, 2, 4)
	assert.NoError(err)
	assert.Equal(uint(2), s.Available())
	assert.Equal(uint(4), s.Limit())

	assert.ErrorAs(s.TryTake(5), &badRange)
	assert.ErrorAs(s.Take(5), &badRange)
}

func TestSemaphoreCounting(t *testing.T) {
	assert := assert.New(t)

	_, kern, proc := newKernel(t)
	newTask(t, kern, proc, "t1", 1)

	s, err := sync.NewSemaphore(kern, 2, 4)
	assert.NoError(err)

	assert.NoError(kern.Start())

	assert.NoError(s.TryTake(2))
	assert.Zero(s.Available())
	assert.ErrorIs(s.TryTake(1), sync.ErrWouldBlock)

	assert.NoError(s.Give(3))
	assert.Equal(uint(3), s.Available())

	// The count is bounded; giving past the limit fails and leaves the
	// count untouched.
	assert.ErrorIs(s.Give(2), sync.ErrSemaphoreOverflow)
	assert.Equal(uint(3), s.Available())

	assert.NoError(s.Take(0))
	assert.NoError(s.Take(3))
	assert.Zero(s.Available())
}

func TestSemaphoreBlockingTake(t *testing.T) {
	assert := assert.New(t)

	_, kern, proc := newKernel(t)

	taker := newTask(t, kern, proc, "taker", 1)
	giver := newTask(t, kern, proc, "giver", 1)

	s, err := sync.NewSemaphore(kern, 0, 4)
	assert.NoError(err)

	assert.NoError(kern.Start())
	assert.Equal(taker, kern.RunningTask())

	// Taking from an empty semaphore suspends the caller.
	assert.NoError(s.Take(2))
	assert.Equal(kernel.TASK_BLOCKED, taker.State())
	assert.Equal(giver, kern.RunningTask())

	// One permit is not enough for the waiter's request of two; it stays
	// blocked and the count holds the partial give.
	assert.NoError(s.Give(1))
	assert.Equal(kernel.TASK_BLOCKED, taker.State())
	assert.Equal(uint(1), s.Available())

	// The second give satisfies the request; the permits are deducted
	// before the waiter runs again.
	assert.NoError(s.Give(1))
	assert.Equal(kernel.TASK_READY, taker.State())
	assert.Zero(s.Available())
}

func TestSemaphoreWakeOrder(t *testing.T) {
	assert := assert.New(t)

	_, kern, proc := newKernel(t)

	first := newTask(t, kern, proc, "first", 1)
	second := newTask(t, kern, proc, "second", 1)
	last := newTask(t, kern, proc, "last", 1)

	s, err := sync.NewSemaphore(kern, 0, 8)
	assert.NoError(err)

	assert.NoError(kern.Start())

	assert.NoError(s.Take(1)) // first
	assert.NoError(s.Take(4)) // second
	assert.NoError(s.Take(1)) // last
	assert.Equal(kern.IdleTask(), kern.RunningTask())

	// Two permits satisfy only the head of the queue; later waiters must
	// not overtake the big request in front of them.
	assert.NoError(s.Give(2))
	assert.Equal(first, kern.RunningTask())
	assert.Equal(kernel.TASK_BLOCKED, second.State())
	assert.Equal(kernel.TASK_BLOCKED, last.State())
	assert.Equal(uint(1), s.Available())

	// Enough for both remaining waiters, woken in arrival order.
	assert.NoError(s.Give(4))
	assert.Equal(kernel.TASK_READY, second.State())
	assert.Equal(kernel.TASK_READY, last.State())
	assert.Zero(s.Available())
}

func TestSemaphoreGiveFromInterrupt(t *testing.T) {
	assert := assert.New(t)

	_, kern, proc := newKernel(t)

	urgent := newTask(t, kern, proc, "urgent", 1)
	steady := newTask(t, kern, proc, "steady", 2)

	s, err := sync.NewSemaphore(kern, 0, 4)
	assert.NoError(err)

	kern.InterruptHandlerAdd(func(line uint) {
		assert.NoError(s.Give(1))
	}, 3)

	assert.NoError(kern.Start())
	assert.Equal(urgent, kern.RunningTask())

	assert.NoError(s.Take(1))
	assert.Equal(steady, kern.RunningTask())

	// The give from interrupt context wakes the blocked taker; it outranks
	// the running task and preempts it before the next tick. The permit
	// went straight to the taker, never showing in the free count.
	kern.Interrupt(3)
	assert.Equal(urgent, kern.RunningTask())
	assert.Equal(kernel.TASK_READY, steady.State())
	assert.Zero(s.Available())
}
