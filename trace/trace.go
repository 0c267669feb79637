// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package trace is the kernel's event surface for external observers.
//
// The kernel emits events; it never owns a transport. A Recorder may be
// installed once before the first task starts. Recorder implementations
// must not block and must not call back into the kernel. With no recorder
// installed every emit is a no-op.
package trace

// Recorder receives kernel events, fire-and-forget.
type Recorder interface {
	TaskNew(id uint32)
	TaskTerminate(id uint32)
	TaskExecBegin(id uint32)
	TaskExecEnd()
	TaskReadyBegin(id uint32)
	TaskReadyEnd(id uint32)
	TaskBlocked(id uint32)

	SystemIdle()

	IsrEnter()
	IsrExit()
	IsrExitToScheduler()

	PrimitiveTake(id uint32, count uint)
	PrimitiveGive(id uint32, count uint)
}

type nop struct{}

func (nop) TaskNew(uint32)             {}
func (nop) TaskTerminate(uint32)       {}
func (nop) TaskExecBegin(uint32)       {}
func (nop) TaskExecEnd()               {}
func (nop) TaskReadyBegin(uint32)      {}
func (nop) TaskReadyEnd(uint32)        {}
func (nop) TaskBlocked(uint32)         {}
func (nop) SystemIdle()                {}
func (nop) IsrEnter()                  {}
func (nop) IsrExit()                   {}
func (nop) IsrExitToScheduler()        {}
func (nop) PrimitiveTake(uint32, uint) {}
func (nop) PrimitiveGive(uint32, uint) {}

var recorder Recorder = nop{}

// SetRecorder installs the event recorder. Call once, before scheduling
// starts; the kernel does not guard concurrent replacement.
func SetRecorder(r Recorder) {
	if r == nil {
		recorder = nop{}
		return
	}
	recorder = r
}

func TaskNew(id uint32)                   { recorder.TaskNew(id) }
func TaskTerminate(id uint32)             { recorder.TaskTerminate(id) }
func TaskExecBegin(id uint32)             { recorder.TaskExecBegin(id) }
func TaskExecEnd()                        { recorder.TaskExecEnd() }
func TaskReadyBegin(id uint32)            { recorder.TaskReadyBegin(id) }
func TaskReadyEnd(id uint32)              { recorder.TaskReadyEnd(id) }
func TaskBlocked(id uint32)               { recorder.TaskBlocked(id) }
func SystemIdle()                         { recorder.SystemIdle() }
func IsrEnter()                           { recorder.IsrEnter() }
func IsrExit()                            { recorder.IsrExit() }
func IsrExitToScheduler()                 { recorder.IsrExitToScheduler() }
func PrimitiveTake(id uint32, count uint) { recorder.PrimitiveTake(id, count) }
func PrimitiveGive(id uint32, count uint) { recorder.PrimitiveGive(id, count) }
