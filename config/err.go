package config

import (
	"errors"

	"github.com/bern-rtos/bern-rtos/translate"
)

var f = translate.From

var (
	ErrKernelRedefined = errors.New(f("kernel() declared twice"))
	ErrKernelMissing   = errors.New(f("kernel() not declared"))
)

// ErrDuplicate indicates a process or task name declared twice.
type ErrDuplicate struct {
	Kind string
	Name string
}

func (err *ErrDuplicate) Error() string {
	return f("%v %v declared twice", err.Kind, err.Name)
}

// ErrProcessUnknown indicates a task referring to an undeclared process.
type ErrProcessUnknown struct {
	Task    string
	Process string
}

func (err *ErrProcessUnknown) Error() string {
	return f("task %v refers to unknown process %v", err.Task, err.Process)
}

// ErrValue indicates an argument outside its accepted values.
type ErrValue struct {
	Arg   string
	Value string
}

func (err *ErrValue) Error() string {
	return f("argument %v: unsupported value %v", err.Arg, err.Value)
}
