// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bern-rtos/bern-rtos/kernel"
)

func TestEventRegister(t *testing.T) {
	assert := assert.New(t)

	_, kern := newKernel(t, kernel.Params{Priorities: 4})

	for n := range kernel.EVENT_LIMIT {
		id, err := kern.EventRegister()
		assert.NoError(err)
		assert.Equal(uint32(n+1), id)
	}

	_, err := kern.EventRegister()
	assert.ErrorIs(err, kernel.ErrEventLimit)
}

func TestEventUnknown(t *testing.T) {
	assert := assert.New(t)

	_, kern := newKernel(t, kernel.Params{Priorities: 4})

	proc, err := kern.CreateProcess(kernel.ProcessConfig{Name: "app", Regions: appRegions(0x2000_0000)})
	assert.NoError(err)
	_, err = kern.CreateTask(proc, kernel.TaskConfig{Name: "t1", Priority: 1})
	assert.NoError(err)

	assert.NoError(kern.Start())

	var unknown *kernel.ErrEventUnknown
	assert.ErrorAs(kern.EventAwait(99, 1), &unknown)
	assert.ErrorAs(kern.EventWakeWhile(0, func(*kernel.Task) bool { return true }), &unknown)
}

func TestEventAwaitWakeOrder(t *testing.T) {
	assert := assert.New(t)

	_, kern := newKernel(t, kernel.Params{Priorities: 4})

	proc, err := kern.CreateProcess(kernel.ProcessConfig{Name: "app", Regions: appRegions(0x2000_0000)})
	assert.NoError(err)

	tasks := []*kernel.Task{}
	for _, name := range []string{"t1", "t2", "t3"} {
		task, err := kern.CreateTask(proc, kernel.TaskConfig{Name: name, Priority: 1})
		assert.NoError(err)
		tasks = append(tasks, task)
	}

	event, err := kern.EventRegister()
	assert.NoError(err)

	assert.NoError(kern.Start())

	// Each task in turn blocks on the event until only idle is left.
	for _, task := range tasks {
		assert.Equal(task, kern.RunningTask())
		assert.NoError(kern.EventAwait(event, 1))
		assert.Equal(kernel.TASK_BLOCKED, task.State())
	}
	assert.Equal(kern.IdleTask(), kern.RunningTask())

	// Wake them all; arrival order is preserved and the first waiter
	// preempts idle.
	woken := []string{}
	assert.NoError(kern.EventWakeWhile(event, func(task *kernel.Task) bool {
		woken = append(woken, task.Name())
		return true
	}))
	assert.Equal([]string{"t1", "t2", "t3"}, woken)
	assert.Equal(tasks[0], kern.RunningTask())
	assert.Equal(kernel.TASK_READY, tasks[1].State())
	assert.Equal(kernel.TASK_READY, tasks[2].State())
}

func TestEventFireWakesOnlyHead(t *testing.T) {
	assert := assert.New(t)

	_, kern := newKernel(t, kernel.Params{Priorities: 4})

	proc, err := kern.CreateProcess(kernel.ProcessConfig{Name: "app", Regions: appRegions(0x2000_0000)})
	assert.NoError(err)

	t1, err := kern.CreateTask(proc, kernel.TaskConfig{Name: "t1", Priority: 1})
	assert.NoError(err)
	t2, err := kern.CreateTask(proc, kernel.TaskConfig{Name: "t2", Priority: 1})
	assert.NoError(err)

	event, err := kern.EventRegister()
	assert.NoError(err)

	assert.NoError(kern.Start())

	assert.NoError(kern.EventAwait(event, 1))
	assert.NoError(kern.EventAwait(event, 1))
	assert.Equal(kern.IdleTask(), kern.RunningTask())

	assert.NoError(kern.EventFire(event))
	assert.Equal(t1, kern.RunningTask())
	assert.Equal(kernel.TASK_BLOCKED, t2.State())
}

func TestEventWakeStopsAtRejection(t *testing.T) {
	assert := assert.New(t)

	_, kern := newKernel(t, kernel.Params{Priorities: 4})

	proc, err := kern.CreateProcess(kernel.ProcessConfig{Name: "app", Regions: appRegions(0x2000_0000)})
	assert.NoError(err)

	t1, err := kern.CreateTask(proc, kernel.TaskConfig{Name: "t1", Priority: 1})
	assert.NoError(err)
	t2, err := kern.CreateTask(proc, kernel.TaskConfig{Name: "t2", Priority: 1})
	assert.NoError(err)

	event, err := kern.EventRegister()
	assert.NoError(err)

	assert.NoError(kern.Start())

	assert.NoError(kern.EventAwait(event, 1))
	assert.NoError(kern.EventAwait(event, 3))

	// The head's request is beyond what the primitive can hand out; no
	// later waiter may jump the queue.
	assert.NoError(kern.EventWakeWhile(event, func(task *kernel.Task) bool {
		return task.WaitCount() <= 2
	}))
	assert.Equal(t1, kern.RunningTask())
	assert.Equal(kernel.TASK_BLOCKED, t2.State())

	assert.NoError(kern.EventWakeWhile(event, func(task *kernel.Task) bool {
		return task.WaitCount() <= 3
	}))
	assert.Equal(kernel.TASK_READY, t2.State())
}

func TestEventWakeFromInterruptPreempts(t *testing.T) {
	assert := assert.New(t)

	_, kern := newKernel(t, kernel.Params{Priorities: 4})

	proc, err := kern.CreateProcess(kernel.ProcessConfig{Name: "app", Regions: appRegions(0x2000_0000)})
	assert.NoError(err)

	urgent, err := kern.CreateTask(proc, kernel.TaskConfig{Name: "urgent", Priority: 0})
	assert.NoError(err)
	steady, err := kern.CreateTask(proc, kernel.TaskConfig{Name: "steady", Priority: 1})
	assert.NoError(err)

	event, err := kern.EventRegister()
	assert.NoError(err)

	kern.InterruptHandlerAdd(func(line uint) {
		assert.NoError(kern.EventFire(event))
	}, 4)

	assert.NoError(kern.Start())

	assert.NoError(kern.EventAwait(event, 1))
	assert.Equal(steady, kern.RunningTask())

	// The wake from interrupt context preempts the lower-priority task
	// before the next tick.
	kern.Interrupt(4)
	assert.Equal(urgent, kern.RunningTask())
	assert.Equal(kernel.TASK_READY, steady.State())
}
