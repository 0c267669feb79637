// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package sync

import (
	"github.com/bern-rtos/bern-rtos/arch"
	"github.com/bern-rtos/bern-rtos/kernel"
	"github.com/bern-rtos/bern-rtos/trace"
)

// Mutex is a binary lock with an owning task. At most one task holds the
// mutex at a time; a re-entrant lock attempt fails rather than deadlocking
// silently, and only the owner may unlock. On unlock, ownership is handed
// directly to the head of the wait queue.
type Mutex struct {
	kern  *kernel.Kernel
	event uint32

	owner *kernel.Task
}

// NewMutex creates an unlocked mutex. Must be called before scheduling
// starts.
func NewMutex(kern *kernel.Kernel) (m *Mutex, err error) {
	event, err := kern.EventRegister()
	if err != nil {
		return
	}

	m = &Mutex{
		kern:  kern,
		event: event,
	}

	return
}

// Owner returns the task currently holding the mutex, or nil.
func (m *Mutex) Owner() (owner *kernel.Task) {
	arch.Critical(m.kern.Port(), func() {
		owner = m.owner
	})

	return
}

// TryLock attempts to take the mutex without suspending.
func (m *Mutex) TryLock() (err error) {
	arch.Critical(m.kern.Port(), func() {
		caller := m.kern.RunningTask()
		switch m.owner {
		case nil:
			m.owner = caller
			trace.PrimitiveTake(m.event, 1)
		case caller:
			err = ErrMutexReentrant
		default:
			err = ErrWouldBlock
		}
	})

	return
}

// Lock takes the mutex, blocking the calling task while another task holds
// it. Locking a mutex the caller already owns is a usage error, not a
// deadlock.
func (m *Mutex) Lock() (err error) {
	arch.Critical(m.kern.Port(), func() {
		caller := m.kern.RunningTask()
		switch m.owner {
		case nil:
			m.owner = caller
			trace.PrimitiveTake(m.event, 1)
		case caller:
			err = ErrMutexReentrant
		default:
			// Ownership is handed over in Unlock before the waiter is
			// woken, so the lock is held as soon as the task runs again.
			err = m.kern.EventAwait(m.event, 1)
		}
	})

	return
}

// Unlock releases the mutex. Fails unless the calling task is the owner.
// If tasks are waiting, the head of the queue becomes the new owner and is
// woken; otherwise ownership clears.
func (m *Mutex) Unlock() (err error) {
	arch.Critical(m.kern.Port(), func() {
		if m.owner != m.kern.RunningTask() {
			err = ErrMutexNotOwner
			return
		}

		m.owner = nil
		trace.PrimitiveGive(m.event, 1)

		handed := false
		err = m.kern.EventWakeWhile(m.event, func(head *kernel.Task) bool {
			if handed {
				return false
			}
			handed = true
			m.owner = head
			trace.PrimitiveTake(m.event, 1)
			return true
		})
	})

	return
}
