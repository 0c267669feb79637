package kernel

import (
	"github.com/bern-rtos/bern-rtos/arch"
	"github.com/bern-rtos/bern-rtos/trace"
)

// InterruptHandler is a bounded, non-blocking handler bound to one or more
// interrupt lines. Handlers run in interrupt context: they may wake tasks
// through the primitives' give/unlock paths but must never block.
type InterruptHandler func(line uint)

type interruptBinding struct {
	lines   []uint
	handler InterruptHandler
}

func (b *interruptBinding) contains(line uint) bool {
	for _, l := range b.lines {
		if l == line {
			return true
		}
	}
	return false
}

// InterruptHandlerAdd binds a handler to the given interrupt lines.
func (k *Kernel) InterruptHandlerAdd(handler InterruptHandler, lines ...uint) {
	arch.Critical(k.port, func() {
		k.bindings = append(k.bindings, interruptBinding{
			lines:   lines,
			handler: handler,
		})
	})
}

// Interrupt is the peripheral interrupt entry: it dispatches all handlers
// bound to the line. The port's interrupt plumbing calls it once per
// pending interrupt, never nested into itself.
func (k *Kernel) Interrupt(line uint) {
	if k.state != KERNEL_RUNNING {
		return
	}

	trace.IsrEnter()
	k.isrDepth++

	for n := range k.bindings {
		if k.bindings[n].contains(line) {
			k.bindings[n].handler(line)
		}
	}

	k.isrDepth--
	trace.IsrExit()
}
