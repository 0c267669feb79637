package kernel

import (
	"github.com/bern-rtos/bern-rtos/arch"
	"github.com/bern-rtos/bern-rtos/trace"
)

// Event is the generic blocking skeleton shared by all synchronization
// primitives: an ordered queue of tasks waiting to be woken. Primitives
// layer their own bookkeeping (counters, ownership) on top; the kernel
// only moves tasks between the wait queue and the ready queues.
type Event struct {
	id      uint32
	pending []*Task // FIFO wait queue.
}

// ID returns the event identifier.
func (e *Event) ID() uint32 {
	return e.id
}

// EventRegister allocates an event slot in the kernel. Primitives call it
// once at creation, before scheduling starts.
func (k *Kernel) EventRegister() (id uint32, err error) {
	arch.Critical(k.port, func() {
		if len(k.events) == EVENT_LIMIT {
			err = ErrEventLimit
			return
		}
		id = uint32(len(k.events) + 1)
		k.events = append(k.events, &Event{id: id})
	})

	return
}

// EventAwait blocks the running task on an event, requesting count units
// from the primitive that owns it. The task joins the wait queue before
// the critical section is released, so a wake from interrupt context can
// never be lost: a wake arriving before the context switch simply cancels
// the staged block. By the time the task runs again the wake condition
// held.
//
// Interrupt handlers must never block; calling from interrupt context is
// an error.
func (k *Kernel) EventAwait(id uint32, count uint) (err error) {
	if k.state != KERNEL_RUNNING {
		return ErrKernelNotRunning
	}

	arch.Critical(k.port, func() {
		if k.isrDepth > 0 {
			err = ErrAwaitInInterrupt
			return
		}
		event := k.event(id)
		if event == nil {
			err = &ErrEventUnknown{ID: id}
			return
		}

		task := k.running
		task.blockedOn = event
		task.waitCount = count
		task.transition = TRANSITION_BLOCKED
		event.pending = append(event.pending, task)
		trace.TaskBlocked(task.id)
	})
	if err != nil {
		return
	}

	k.port.TriggerContextSwitch()

	return
}

// EventWakeWhile wakes pending tasks in FIFO arrival order for as long as
// accept approves them, stopping at the first rejection. A woken task that
// outranks the running one preempts immediately.
//
// Safe to call from interrupt context; accept runs inside the kernel's
// critical section and must not block.
func (k *Kernel) EventWakeWhile(id uint32, accept func(task *Task) bool) (err error) {
	if k.state != KERNEL_RUNNING {
		return ErrKernelNotRunning
	}

	preempt := false
	arch.Critical(k.port, func() {
		event := k.event(id)
		if event == nil {
			err = &ErrEventUnknown{ID: id}
			return
		}

		for len(event.pending) > 0 {
			head := event.pending[0]
			if !accept(head) {
				break
			}
			event.pending[0] = nil
			event.pending = event.pending[1:]
			head.blockedOn = nil
			head.waitCount = 0
			if head == k.running {
				// Woken before its context switch landed; cancel the
				// staged block, the task simply keeps running.
				head.transition = TRANSITION_NONE
				continue
			}
			k.makeReady(head)
			if head.priority < k.running.priority {
				preempt = true
			}
		}
	})
	if err != nil {
		return
	}

	if preempt {
		k.port.TriggerContextSwitch()
	}

	return
}

// EventFire wakes the first pending task of an event, if any.
func (k *Kernel) EventFire(id uint32) (err error) {
	fired := false

	return k.EventWakeWhile(id, func(head *Task) bool {
		if fired {
			return false
		}
		fired = true
		return true
	})
}

// event looks up an event by ID. The caller must hold a critical section.
func (k *Kernel) event(id uint32) (event *Event) {
	if id == 0 || int(id) > len(k.events) {
		return nil
	}

	return k.events[id-1]
}
