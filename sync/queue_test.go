// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package sync_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bern-rtos/bern-rtos/kernel"
	"github.com/bern-rtos/bern-rtos/sync"
)

func TestQueueCapacity(t *testing.T) {
	assert := assert.New(t)

	_, kern, _ := newKernel(t)

	var badCapacity *sync.ErrQueueCapacity
	_, err := sync.NewQueue[int](kern, 0)
	assert.ErrorAs(err, &badCapacity)
	_, err = sync.NewQueue[int](kern, -1)
	assert.ErrorAs(err, &badCapacity)

	q, err := sync.NewQueue[int](kern, 4)
	assert.NoError(err)
	assert.Equal(4, q.Capacity())
	assert.Zero(q.Count())
}

func TestQueueOrdering(t *testing.T) {
	assert := assert.New(t)

	_, kern, proc := newKernel(t)
	newTask(t, kern, proc, "t1", 1)

	q, err := sync.NewQueue[int](kern, 3)
	assert.NoError(err)

	assert.NoError(kern.Start())

	for n := range 3 {
		assert.NoError(q.TryPush(n))
	}
	assert.Equal(3, q.Count())
	assert.ErrorIs(q.TryPush(3), sync.ErrWouldBlock)

	// FIFO through wrap-around.
	var item int
	for n := range 3 {
		assert.NoError(q.TryPop(&item))
		assert.Equal(n, item)
		assert.NoError(q.TryPush(10 + n))
	}
	for n := range 3 {
		assert.NoError(q.TryPop(&item))
		assert.Equal(10+n, item)
	}
	assert.ErrorIs(q.TryPop(&item), sync.ErrWouldBlock)
}

func TestQueuePopBlocks(t *testing.T) {
	assert := assert.New(t)

	_, kern, proc := newKernel(t)

	consumer := newTask(t, kern, proc, "consumer", 1)
	producer := newTask(t, kern, proc, "producer", 1)

	q, err := sync.NewQueue[string](kern, 2)
	assert.NoError(err)

	assert.NoError(kern.Start())
	assert.Equal(consumer, kern.RunningTask())

	// The consumer blocks on the empty queue; the producer's push writes
	// the item straight into the consumer's destination.
	var got string
	assert.NoError(q.Pop(&got))
	assert.Equal(kernel.TASK_BLOCKED, consumer.State())
	assert.Equal(producer, kern.RunningTask())

	assert.NoError(q.Push("hello"))
	assert.Equal(kernel.TASK_READY, consumer.State())
	assert.Equal("hello", got)
	assert.Zero(q.Count())
}

func TestQueuePushBlocks(t *testing.T) {
	assert := assert.New(t)

	_, kern, proc := newKernel(t)

	producer := newTask(t, kern, proc, "producer", 1)
	consumer := newTask(t, kern, proc, "consumer", 1)

	q, err := sync.NewQueue[int](kern, 1)
	assert.NoError(err)

	assert.NoError(kern.Start())
	assert.Equal(producer, kern.RunningTask())

	assert.NoError(q.Push(1))
	assert.NoError(q.Push(2)) // full, blocks
	assert.Equal(kernel.TASK_BLOCKED, producer.State())
	assert.Equal(consumer, kern.RunningTask())

	// Popping frees a slot; the blocked sender's item moves in and the
	// sender wakes.
	var item int
	assert.NoError(q.Pop(&item))
	assert.Equal(1, item)
	assert.Equal(kernel.TASK_READY, producer.State())
	assert.Equal(1, q.Count())

	assert.NoError(q.Pop(&item))
	assert.Equal(2, item)
	assert.Zero(q.Count())
}

func TestQueueBlockingFromInterrupt(t *testing.T) {
	assert := assert.New(t)

	_, kern, proc := newKernel(t)
	newTask(t, kern, proc, "t1", 1)

	q, err := sync.NewQueue[string](kern, 1)
	assert.NoError(err)

	var popErr, fillErr, overErr error
	var dest string
	kern.InterruptHandlerAdd(func(line uint) {
		popErr = q.Pop(&dest)     // empty, would block
		fillErr = q.Push("kept")  // empty, fits in the ring
		overErr = q.Push("spill") // full, would block
	}, 2)

	assert.NoError(kern.Start())

	kern.Interrupt(2)
	assert.ErrorIs(popErr, kernel.ErrAwaitInInterrupt)
	assert.NoError(fillErr)
	assert.ErrorIs(overErr, kernel.ErrAwaitInInterrupt)

	// The rejected blocking calls must leave no trace: the accepted item
	// sits in the ring, not in the rejected receiver's destination, and
	// the rejected sender's item never materializes.
	assert.Empty(dest)
	assert.Equal(1, q.Count())

	var item string
	assert.NoError(q.TryPop(&item))
	assert.Equal("kept", item)
	assert.ErrorIs(q.TryPop(&item), sync.ErrWouldBlock)

	// Later traffic flows normally.
	assert.NoError(q.Push("next"))
	assert.NoError(q.Pop(&item))
	assert.Equal("next", item)
	assert.Empty(dest)
}

func TestQueuePushFromInterrupt(t *testing.T) {
	assert := assert.New(t)

	_, kern, proc := newKernel(t)

	urgent := newTask(t, kern, proc, "urgent", 1)
	steady := newTask(t, kern, proc, "steady", 2)

	q, err := sync.NewQueue[uint](kern, 4)
	assert.NoError(err)

	kern.InterruptHandlerAdd(func(line uint) {
		assert.NoError(q.TryPush(line))
	}, 5)

	assert.NoError(kern.Start())
	assert.Equal(urgent, kern.RunningTask())

	var got uint
	assert.NoError(q.Pop(&got))
	assert.Equal(steady, kern.RunningTask())

	// The interrupt's push lands in the blocked receiver's destination
	// and preempts the lower-priority task.
	kern.Interrupt(5)
	assert.Equal(urgent, kern.RunningTask())
	assert.Equal(uint(5), got)
}
