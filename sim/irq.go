package sim

import (
	"iter"
	"slices"
)

// Line is one simulated interrupt line. Raising it queues a pending
// assertion; the Simulator drains pending assertions into the kernel's
// interrupt entry between execution steps.
type Line struct {
	Number  uint
	pending int
}

// Raise asserts the line once.
func (l *Line) Raise() {
	l.pending++
}

// take consumes one pending assertion.
func (l *Line) take() (ok bool) {
	if l.pending == 0 {
		return
	}
	l.pending--
	return true
}

// Irq is the simulated interrupt controller: a set of numbered lines.
type Irq struct {
	lines map[uint](*Line)
}

// Line returns the line with the given number, creating it on first use.
func (irq *Irq) Line(number uint) (line *Line) {
	if irq.lines == nil {
		irq.lines = map[uint](*Line){}
	}
	line = irq.lines[number]
	if line == nil {
		line = &Line{Number: number}
		irq.lines[number] = line
	}

	return
}

// Drain iterates over pending assertions in line-number order, consuming
// each as it is yielded.
func (irq *Irq) Drain() iter.Seq[uint] {
	return func(yield func(uint) bool) {
		numbers := make([]uint, 0, len(irq.lines))
		for number := range irq.lines {
			numbers = append(numbers, number)
		}
		slices.Sort(numbers)

		for _, number := range numbers {
			for irq.lines[number].take() {
				if !yield(number) {
					return
				}
			}
		}
	}
}
