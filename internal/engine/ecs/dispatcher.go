package ecs

import (
	"errors"
	"fmt"
	"strings"
)

// Dispatcher setup errors.
var (
	ErrUnknownDependency = errors.New("unknown system dependency")
	ErrDuplicateSystem   = errors.New("duplicate system name")
	ErrDependencyCycle   = errors.New("system dependency cycle")
)

// System is a unit of per-frame logic.
type System interface {
	Run(w *World)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(w *World)

// Run calls f(w).
func (f SystemFunc) Run(w *World) { f(w) }

// Disposer is implemented by systems holding resources that must be
// released when the dispatcher shuts down.
type Disposer interface {
	Dispose(w *World)
}

// Bundle registers a group of related systems.
type Bundle interface {
	Build(b *DispatcherBuilder) error
}

type registration struct {
	name   string
	system System
	deps   []string
}

// DispatcherBuilder collects systems and their named dependencies.
type DispatcherBuilder struct {
	systems []registration
	err     error
}

// NewDispatcherBuilder returns an empty builder.
func NewDispatcherBuilder() *DispatcherBuilder {
	return &DispatcherBuilder{}
}

// With registers a system that runs after every system named in deps.
func (b *DispatcherBuilder) With(s System, name string, deps ...string) *DispatcherBuilder {
	if b.err != nil {
		return b
	}
	for _, r := range b.systems {
		if r.name == name {
			b.err = fmt.Errorf("%w: %q", ErrDuplicateSystem, name)
			return b
		}
	}
	b.systems = append(b.systems, registration{name: name, system: s, deps: deps})
	return b
}

// WithBundle lets a bundle register its systems.
func (b *DispatcherBuilder) WithBundle(bundle Bundle) *DispatcherBuilder {
	if b.err != nil {
		return b
	}
	if err := bundle.Build(b); err != nil && b.err == nil {
		b.err = fmt.Errorf("building bundle: %w", err)
	}
	return b
}

// Build validates dependencies and orders systems so every system runs
// after its dependencies. Independent systems keep registration order.
func (b *DispatcherBuilder) Build() (*Dispatcher, error) {
	if b.err != nil {
		return nil, b.err
	}

	index := make(map[string]int, len(b.systems))
	for i, r := range b.systems {
		index[r.name] = i
	}

	indegree := make([]int, len(b.systems))
	dependents := make([][]int, len(b.systems))
	for i, r := range b.systems {
		for _, dep := range r.deps {
			j, ok := index[dep]
			if !ok {
				return nil, fmt.Errorf("%w: %q needs %q", ErrUnknownDependency, r.name, dep)
			}
			indegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	ordered := make([]registration, 0, len(b.systems))
	done := make([]bool, len(b.systems))
	for len(ordered) < len(b.systems) {
		next := -1
		for i := range b.systems {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			var stuck []string
			for i, r := range b.systems {
				if !done[i] {
					stuck = append(stuck, r.name)
				}
			}
			return nil, fmt.Errorf("%w: %s", ErrDependencyCycle, strings.Join(stuck, ", "))
		}
		done[next] = true
		ordered = append(ordered, b.systems[next])
		for _, d := range dependents[next] {
			indegree[d]--
		}
	}

	return &Dispatcher{systems: ordered}, nil
}

// Dispatcher runs systems in dependency order.
type Dispatcher struct {
	systems []registration
}

// Dispatch runs every system once.
func (d *Dispatcher) Dispatch(w *World) {
	for _, r := range d.systems {
		r.system.Run(w)
	}
}

// Names returns system names in execution order.
func (d *Dispatcher) Names() []string {
	names := make([]string, len(d.systems))
	for i, r := range d.systems {
		names[i] = r.name
	}
	return names
}

// Dispose releases resources of systems implementing Disposer, in reverse order.
func (d *Dispatcher) Dispose(w *World) {
	for i := len(d.systems) - 1; i >= 0; i-- {
		if disp, ok := d.systems[i].system.(Disposer); ok {
			disp.Dispose(w)
		}
	}
}
