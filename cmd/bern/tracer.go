package main

import (
	"log"
)

// logTracer prints every kernel trace event through the standard logger.
type logTracer struct{}

func (logTracer) TaskNew(id uint32)       { log.Printf("trace: task %d new", id) }
func (logTracer) TaskTerminate(id uint32) { log.Printf("trace: task %d terminate", id) }
func (logTracer) TaskExecBegin(id uint32) { log.Printf("trace: task %d exec begin", id) }
func (logTracer) TaskExecEnd()            { log.Printf("trace: exec end") }
func (logTracer) TaskReadyBegin(id uint32) {
	log.Printf("trace: task %d ready", id)
}
func (logTracer) TaskReadyEnd(id uint32) {
	log.Printf("trace: task %d dispatched", id)
}
func (logTracer) TaskBlocked(id uint32) { log.Printf("trace: task %d blocked", id) }
func (logTracer) SystemIdle()           { log.Printf("trace: idle") }
func (logTracer) IsrEnter()             { log.Printf("trace: isr enter") }
func (logTracer) IsrExit()              { log.Printf("trace: isr exit") }
func (logTracer) IsrExitToScheduler()   { log.Printf("trace: isr exit to scheduler") }
func (logTracer) PrimitiveTake(id uint32, count uint) {
	log.Printf("trace: primitive %d take %d", id, count)
}
func (logTracer) PrimitiveGive(id uint32, count uint) {
	log.Printf("trace: primitive %d give %d", id, count)
}
