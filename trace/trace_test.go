// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package trace_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bern-rtos/bern-rtos/trace"
)

type logRecorder struct {
	events []string
}

func (r *logRecorder) record(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *logRecorder) TaskNew(id uint32)       { r.record("new %d", id) }
func (r *logRecorder) TaskTerminate(id uint32) { r.record("terminate %d", id) }
func (r *logRecorder) TaskExecBegin(id uint32) { r.record("exec %d", id) }
func (r *logRecorder) TaskExecEnd()            { r.record("exec end") }
func (r *logRecorder) TaskReadyBegin(id uint32) {
	r.record("ready %d", id)
}
func (r *logRecorder) TaskReadyEnd(id uint32) { r.record("ready end %d", id) }
func (r *logRecorder) TaskBlocked(id uint32)  { r.record("blocked %d", id) }
func (r *logRecorder) SystemIdle()            { r.record("idle") }
func (r *logRecorder) IsrEnter()              { r.record("isr enter") }
func (r *logRecorder) IsrExit()               { r.record("isr exit") }
func (r *logRecorder) IsrExitToScheduler()    { r.record("isr exit sched") }
func (r *logRecorder) PrimitiveTake(id uint32, count uint) {
	r.record("take %d %d", id, count)
}
func (r *logRecorder) PrimitiveGive(id uint32, count uint) {
	r.record("give %d %d", id, count)
}

var _ trace.Recorder = &logRecorder{}

func TestRecorder(t *testing.T) {
	assert := assert.New(t)

	recorder := &logRecorder{}
	trace.SetRecorder(recorder)
	defer trace.SetRecorder(nil)

	trace.TaskNew(1)
	trace.TaskExecBegin(1)
	trace.PrimitiveTake(2, 1)
	trace.TaskBlocked(1)
	trace.SystemIdle()

	assert.Equal([]string{
		"new 1",
		"exec 1",
		"take 2 1",
		"blocked 1",
		"idle",
	}, recorder.events)
}

func TestNopDefault(t *testing.T) {
	trace.SetRecorder(nil)

	// Emitting with no recorder installed must be harmless.
	trace.TaskNew(1)
	trace.IsrEnter()
	trace.IsrExit()
	trace.TaskTerminate(1)
}
