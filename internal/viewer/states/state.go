// Package states holds the viewer's lifecycle states and the stack machine
// driving them.
package states

import (
	"github.com/Faultbox/flyview/internal/engine/assets"
	"github.com/Faultbox/flyview/internal/engine/ecs"
	"github.com/Faultbox/flyview/internal/engine/input"
)

// StateData is what states work with.
type StateData struct {
	World    *ecs.World
	Loader   *assets.Loader
	Bindings *input.Bindings // may be nil

	// ScreenshotRequested asks the application to capture the next frame.
	ScreenshotRequested bool
}

// Action reports whether ev presses the key bound to action. Key repeats
// do not count.
func (d *StateData) Action(ev input.Event, action string) bool {
	return d.Bindings != nil && ev.Type == input.EventKeyDown && !ev.Repeat &&
		d.Bindings.IsAction(action, ev.Key)
}

// State is one lifecycle state.
type State interface {
	OnStart(data *StateData)
	OnStop(data *StateData)
	Update(data *StateData) Trans
	HandleEvent(data *StateData, ev input.Event) Trans
}

// TransKind tells the machine what to do after a callback.
type TransKind int

const (
	TransNone TransKind = iota
	TransQuit
	TransSwitch
	TransPush
	TransPop
)

func (k TransKind) String() string {
	switch k {
	case TransQuit:
		return "quit"
	case TransSwitch:
		return "switch"
	case TransPush:
		return "push"
	case TransPop:
		return "pop"
	default:
		return "none"
	}
}

// Trans is a state transition. Next is set for Switch and Push.
type Trans struct {
	Kind TransKind
	Next State
}

// None keeps the current state.
func None() Trans { return Trans{} }

// Quit stops every state.
func Quit() Trans { return Trans{Kind: TransQuit} }

// Switch replaces the current state.
func Switch(next State) Trans { return Trans{Kind: TransSwitch, Next: next} }

// Push pauses the current state under next.
func Push(next State) Trans { return Trans{Kind: TransPush, Next: next} }

// Pop returns to the state below.
func Pop() Trans { return Trans{Kind: TransPop} }

// Machine is a stack of states; only the top one receives callbacks.
type Machine struct {
	stack   []State
	initial State
}

// NewMachine creates a machine that starts with initial.
func NewMachine(initial State) *Machine {
	return &Machine{initial: initial}
}

// Start pushes the initial state.
func (m *Machine) Start(data *StateData) {
	if m.initial == nil {
		return
	}
	m.stack = append(m.stack, m.initial)
	m.initial.OnStart(data)
	m.initial = nil
}

// Running reports whether any state is left.
func (m *Machine) Running() bool {
	return len(m.stack) > 0
}

// Current returns the top state, or nil.
func (m *Machine) Current() State {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// HandleEvent passes ev to the top state.
func (m *Machine) HandleEvent(data *StateData, ev input.Event) {
	if s := m.Current(); s != nil {
		m.apply(data, s.HandleEvent(data, ev))
	}
}

// Update runs the top state's Update.
func (m *Machine) Update(data *StateData) {
	if s := m.Current(); s != nil {
		m.apply(data, s.Update(data))
	}
}

// Stop stops every state, top first.
func (m *Machine) Stop(data *StateData) {
	for len(m.stack) > 0 {
		m.pop(data)
	}
}

func (m *Machine) pop(data *StateData) {
	top := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	top.OnStop(data)
}

func (m *Machine) apply(data *StateData, t Trans) {
	switch t.Kind {
	case TransQuit:
		m.Stop(data)
	case TransSwitch:
		m.pop(data)
		m.stack = append(m.stack, t.Next)
		t.Next.OnStart(data)
	case TransPush:
		m.stack = append(m.stack, t.Next)
		t.Next.OnStart(data)
	case TransPop:
		m.pop(data)
	}
}
