// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package config

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/bern-rtos/bern-rtos/arch"
)

// System is a resolved, immutable system description.
type System struct {
	Priorities int // Priority levels including the reserved idle level.
	SliceTicks int // Time slice in ticks; 0 disables time slicing.

	Processes []Process
	Tasks     []Task
}

// Process is a static process descriptor.
type Process struct {
	Name    string
	Regions []arch.Region
}

// Task is a static task descriptor.
type Task struct {
	Name     string
	Process  string
	Priority uint8
	Stack    uint64
}

var kindNames = map[string]arch.MemoryKind{
	"sram":       arch.MEMORY_SRAM,
	"sram_ext":   arch.MEMORY_SRAM_EXT,
	"flash":      arch.MEMORY_FLASH,
	"peripheral": arch.MEMORY_PERIPHERAL,
}

var permissionNames = map[string]arch.Permission{
	"none": arch.NO_ACCESS,
	"ro":   arch.READ_ONLY,
	"rw":   arch.READ_WRITE,
}

// regionValue carries a region through the Starlark evaluation.
type regionValue struct {
	region arch.Region
}

func (rv regionValue) String() string {
	return fmt.Sprintf("region(%#x+%#x)", rv.region.Addr, rv.region.Size)
}

func (rv regionValue) Type() string { return "region" }

func (rv regionValue) Freeze() {}

func (rv regionValue) Truth() starlark.Bool { return starlark.True }

func (rv regionValue) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: region")
}

// loader accumulates declarations while a system file executes.
type loader struct {
	system     System
	kernelSeen bool
}

func (l *loader) kernelFn(thread *starlark.Thread, b *starlark.Builtin,
	args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {

	if l.kernelSeen {
		return nil, ErrKernelRedefined
	}

	priorities := 8
	sliceTicks := 0
	err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"priorities?", &priorities,
		"slice_ticks?", &sliceTicks)
	if err != nil {
		return nil, err
	}

	l.kernelSeen = true
	l.system.Priorities = priorities
	l.system.SliceTicks = sliceTicks

	return starlark.None, nil
}

func (l *loader) regionFn(thread *starlark.Thread, b *starlark.Builtin,
	args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {

	var base, size starlark.Int
	kind := "sram"
	user := "rw"
	system := "rw"
	executable := false
	shared := false
	err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"base", &base,
		"size", &size,
		"kind?", &kind,
		"user?", &user,
		"system?", &system,
		"executable?", &executable,
		"shared?", &shared)
	if err != nil {
		return nil, err
	}

	memKind, ok := kindNames[kind]
	if !ok {
		return nil, &ErrValue{Arg: "kind", Value: kind}
	}
	userPerm, ok := permissionNames[user]
	if !ok {
		return nil, &ErrValue{Arg: "user", Value: user}
	}
	systemPerm, ok := permissionNames[system]
	if !ok {
		return nil, &ErrValue{Arg: "system", Value: system}
	}
	addr, ok := base.Uint64()
	if !ok {
		return nil, &ErrValue{Arg: "base", Value: base.String()}
	}
	bytes, ok := size.Uint64()
	if !ok {
		return nil, &ErrValue{Arg: "size", Value: size.String()}
	}

	return regionValue{region: arch.Region{
		Addr:       addr,
		Size:       bytes,
		Kind:       memKind,
		Access:     arch.Access{User: userPerm, System: systemPerm},
		Executable: executable,
		Shared:     shared,
	}}, nil
}

func (l *loader) processFn(thread *starlark.Thread, b *starlark.Builtin,
	args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {

	var name string
	var regions *starlark.List
	err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &name,
		"regions", &regions)
	if err != nil {
		return nil, err
	}

	for _, prior := range l.system.Processes {
		if prior.Name == name {
			return nil, &ErrDuplicate{Kind: "process", Name: name}
		}
	}

	process := Process{Name: name}
	for value := range regions.Elements() {
		rv, ok := value.(regionValue)
		if !ok {
			return nil, &ErrValue{Arg: "regions", Value: value.String()}
		}
		process.Regions = append(process.Regions, rv.region)
	}
	l.system.Processes = append(l.system.Processes, process)

	return starlark.None, nil
}

func (l *loader) taskFn(thread *starlark.Thread, b *starlark.Builtin,
	args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {

	var name, process string
	priority := 0
	stack := 1024
	err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &name,
		"process", &process,
		"priority?", &priority,
		"stack?", &stack)
	if err != nil {
		return nil, err
	}

	for _, prior := range l.system.Tasks {
		if prior.Name == name {
			return nil, &ErrDuplicate{Kind: "task", Name: name}
		}
	}
	known := false
	for _, prior := range l.system.Processes {
		if prior.Name == process {
			known = true
			break
		}
	}
	if !known {
		return nil, &ErrProcessUnknown{Task: name, Process: process}
	}
	if priority < 0 || priority > 255 {
		return nil, &ErrValue{Arg: "priority", Value: fmt.Sprintf("%d", priority)}
	}

	l.system.Tasks = append(l.system.Tasks, Task{
		Name:     name,
		Process:  process,
		Priority: uint8(priority),
		Stack:    uint64(stack),
	})

	return starlark.None, nil
}

// Load evaluates a system file. src may be nil to read from filename, or
// a string/[]byte/io.Reader with the file contents.
func Load(filename string, src any) (system *System, err error) {
	l := &loader{}

	predeclared := starlark.StringDict{
		"kernel":  starlark.NewBuiltin("kernel", l.kernelFn),
		"region":  starlark.NewBuiltin("region", l.regionFn),
		"process": starlark.NewBuiltin("process", l.processFn),
		"task":    starlark.NewBuiltin("task", l.taskFn),
	}

	thread := &starlark.Thread{Name: "config"}
	opts := syntax.FileOptions{}
	_, err = starlark.ExecFileOptions(&opts, thread, filename, src, predeclared)
	if err != nil {
		return
	}

	if !l.kernelSeen {
		return nil, ErrKernelMissing
	}

	system = &l.system

	return
}
