package kernel

import (
	"github.com/bern-rtos/bern-rtos/arch"
	"github.com/bern-rtos/bern-rtos/trace"
)

// handleFault is the port's fault callback. A stack limit violation
// terminates the offending task; an illegal memory access terminates every
// task of the offending process. The rest of the system keeps scheduling:
// a single faulting process must not halt the device.
func (k *Kernel) handleFault(fault arch.Fault) {
	if k.state != KERNEL_RUNNING {
		return
	}
	if int(fault.Context) >= len(k.tasks) || fault.Context < 0 {
		return
	}

	offender := k.tasks[fault.Context]
	preempt := false

	arch.Critical(k.port, func() {
		switch fault.Kind {
		case arch.FAULT_STACK_LIMIT:
			preempt = k.terminateTask(offender)
		case arch.FAULT_MEMORY_ACCESS:
			for _, task := range offender.process.tasks {
				if k.terminateTask(task) {
					preempt = true
				}
			}
		}
	})

	if preempt {
		k.port.TriggerContextSwitch()
	}
}

// terminateTask removes a task from whatever queue holds it and marks it
// Terminated. A running task is staged for termination instead; the
// returned flag requests the context switch that completes it. The caller
// must hold a critical section.
func (k *Kernel) terminateTask(task *Task) (needSwitch bool) {
	if task.state == TASK_TERMINATED {
		return
	}

	if task.blockedOn != nil {
		task.blockedOn.pending = removeTask(task.blockedOn.pending, task)
		task.blockedOn = nil
		task.waitCount = 0
	}

	switch task.state {
	case TASK_RUNNING:
		task.transition = TRANSITION_TERMINATING
		return true
	case TASK_READY:
		k.ready[task.priority] = removeTask(k.ready[task.priority], task)
	case TASK_BLOCKED:
		k.sleeping = removeTask(k.sleeping, task)
	}

	task.state = TASK_TERMINATED
	k.terminated = append(k.terminated, task)
	trace.TaskTerminate(task.id)

	return
}

// removeTask deletes a task from a queue, preserving order.
func removeTask(queue []*Task, task *Task) []*Task {
	for n := range queue {
		if queue[n] == task {
			copy(queue[n:], queue[n+1:])
			queue[len(queue)-1] = nil
			return queue[:len(queue)-1]
		}
	}
	return queue
}
