// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package sync

import (
	"github.com/bern-rtos/bern-rtos/arch"
	"github.com/bern-rtos/bern-rtos/kernel"
	"github.com/bern-rtos/bern-rtos/trace"
)

// Queue is a bounded FIFO message queue. Push blocks while the queue is
// full, Pop blocks while it is empty; waiters on either side are served in
// arrival order.
//
// Items are handed off under the kernel's critical section: a push to a
// queue with a waiting receiver writes the item straight into the
// receiver's destination before the receiver is woken, and a pop from a
// full queue moves the head waiting sender's item into the freed slot. A
// blocked Pop therefore owns its item as soon as the task runs again.
type Queue[T any] struct {
	kern  *kernel.Kernel
	space uint32 // senders wait here while the queue is full
	data  uint32 // receivers wait here while the queue is empty

	items []T // ring storage
	head  int
	count int

	sending   []sendWaiter[T]
	receiving []recvWaiter[T]
}

// sendWaiter is the stashed item of a task blocked in Push, in the same
// order as the space event's wait queue.
type sendWaiter[T any] struct {
	task *kernel.Task
	item T
}

// recvWaiter is the destination of a task blocked in Pop, in the same
// order as the data event's wait queue.
type recvWaiter[T any] struct {
	task *kernel.Task
	dest *T
}

// NewQueue creates a queue holding up to capacity items. Must be called
// before scheduling starts.
func NewQueue[T any](kern *kernel.Kernel, capacity int) (q *Queue[T], err error) {
	if capacity <= 0 {
		return nil, &ErrQueueCapacity{Capacity: capacity}
	}

	space, err := kern.EventRegister()
	if err != nil {
		return
	}
	data, err := kern.EventRegister()
	if err != nil {
		return
	}

	q = &Queue[T]{
		kern:  kern,
		space: space,
		data:  data,
		items: make([]T, capacity),
	}

	return
}

// Capacity returns the maximum number of items the queue holds.
func (q *Queue[T]) Capacity() int {
	return cap(q.items)
}

// Count returns the number of items currently queued.
func (q *Queue[T]) Count() (count int) {
	arch.Critical(q.kern.Port(), func() {
		count = q.count
	})

	return
}

// put appends an item to the ring. The caller must hold a critical
// section and have checked for space.
func (q *Queue[T]) put(item T) {
	q.items[(q.head+q.count)%cap(q.items)] = item
	q.count++
}

// take removes the ring's oldest item. The caller must hold a critical
// section and have checked for data.
func (q *Queue[T]) take() (item T) {
	var zero T
	item = q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % cap(q.items)
	q.count--

	return
}

// deliver hands an item straight to the first live waiting receiver.
// Returns false if no receiver waits. The caller must hold a critical
// section.
func (q *Queue[T]) deliver(item T) (ok bool) {
	// Skip receivers that were terminated while waiting; the kernel
	// already dropped them from the event queue.
	for len(q.receiving) > 0 && q.receiving[0].task.State() == kernel.TASK_TERMINATED {
		q.receiving[0] = recvWaiter[T]{}
		q.receiving = q.receiving[1:]
	}
	if len(q.receiving) == 0 {
		return
	}

	*q.receiving[0].dest = item
	q.receiving[0] = recvWaiter[T]{}
	q.receiving = q.receiving[1:]

	return true
}

// admit moves the first live waiting sender's item into the ring. Returns
// false if no sender waits. The caller must hold a critical section.
func (q *Queue[T]) admit() (ok bool) {
	for len(q.sending) > 0 && q.sending[0].task.State() == kernel.TASK_TERMINATED {
		q.sending[0] = sendWaiter[T]{}
		q.sending = q.sending[1:]
	}
	if len(q.sending) == 0 {
		return
	}

	q.put(q.sending[0].item)
	q.sending[0] = sendWaiter[T]{}
	q.sending = q.sending[1:]

	return true
}

// TryPush enqueues an item without suspending. Returns ErrWouldBlock when
// the queue is full.
func (q *Queue[T]) TryPush(item T) (err error) {
	arch.Critical(q.kern.Port(), func() {
		err = q.push(item, false)
	})

	return
}

// Push enqueues an item, blocking the calling task while the queue is
// full.
func (q *Queue[T]) Push(item T) (err error) {
	arch.Critical(q.kern.Port(), func() {
		err = q.push(item, true)
	})

	return
}

// push runs under the critical section opened by Push or TryPush.
func (q *Queue[T]) push(item T, block bool) (err error) {
	if q.deliver(item) {
		trace.PrimitiveGive(q.data, 1)
		return q.kern.EventFire(q.data)
	}
	if q.count < cap(q.items) {
		q.put(item)
		trace.PrimitiveGive(q.data, 1)
		return
	}
	if !block {
		return ErrWouldBlock
	}

	// The mirror entry is recorded only once the block is accepted; a
	// rejected await (interrupt context) must leave no stale item behind
	// for admit to inject later.
	if err = q.kern.EventAwait(q.space, 1); err != nil {
		return
	}
	q.sending = append(q.sending, sendWaiter[T]{
		task: q.kern.RunningTask(),
		item: item,
	})

	return
}

// TryPop dequeues the oldest item without suspending. Returns
// ErrWouldBlock when the queue is empty.
func (q *Queue[T]) TryPop(dest *T) (err error) {
	arch.Critical(q.kern.Port(), func() {
		err = q.pop(dest, false)
	})

	return
}

// Pop dequeues the oldest item into dest, blocking the calling task while
// the queue is empty. When Pop had to block, dest is written by the
// handing-over Push before the task resumes.
func (q *Queue[T]) Pop(dest *T) (err error) {
	arch.Critical(q.kern.Port(), func() {
		err = q.pop(dest, true)
	})

	return
}

// pop runs under the critical section opened by Pop or TryPop.
func (q *Queue[T]) pop(dest *T, block bool) (err error) {
	if q.count > 0 {
		*dest = q.take()
		trace.PrimitiveTake(q.data, 1)

		// A freed slot unblocks the longest-waiting sender.
		if q.admit() {
			return q.kern.EventFire(q.space)
		}
		return
	}
	if !block {
		return ErrWouldBlock
	}

	// As in push: no destination may be registered for a block that was
	// rejected, or a later push would hand its item to a receiver that
	// is not waiting.
	if err = q.kern.EventAwait(q.data, 1); err != nil {
		return
	}
	q.receiving = append(q.receiving, recvWaiter[T]{
		task: q.kern.RunningTask(),
		dest: dest,
	})

	return
}
