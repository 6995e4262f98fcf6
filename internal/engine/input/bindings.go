package input

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/veandco/go-sdl2/sdl"
	"gopkg.in/yaml.v3"
)

// ErrUnknownKey is returned when a bindings file names a key SDL does not know.
var ErrUnknownKey = errors.New("unknown key name")

// AxisBinding maps keys to the positive and negative ends of an axis.
type AxisBinding struct {
	Pos []string `yaml:"pos"`
	Neg []string `yaml:"neg"`
}

// BindingsFile is the on-disk form of input bindings.
//
//	axes:
//	  move_z: {pos: [S], neg: [W]}
//	actions:
//	  quit: [Escape]
type BindingsFile struct {
	Axes    map[string]AxisBinding `yaml:"axes"`
	Actions map[string][]string    `yaml:"actions"`
}

// KeyResolver turns a key name into a scancode.
type KeyResolver func(name string) (sdl.Scancode, bool)

// SDLKeys resolves names with SDL's own key name table ("W", "Left Shift", "F12").
func SDLKeys(name string) (sdl.Scancode, bool) {
	sc := sdl.GetScancodeFromName(name)
	return sc, sc != sdl.SCANCODE_UNKNOWN
}

type axis struct {
	pos, neg []sdl.Scancode
}

// Bindings are resolved axes and actions.
type Bindings struct {
	axes    map[string]axis
	actions map[string][]sdl.Scancode
}

// LoadBindings reads a bindings file and resolves its key names with SDL.
func LoadBindings(path string) (*Bindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bindings: %w", err)
	}
	b, err := ParseBindings(data, SDLKeys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// ParseBindings decodes bindings YAML and resolves key names.
func ParseBindings(data []byte, resolve KeyResolver) (*Bindings, error) {
	var f BindingsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing bindings: %w", err)
	}
	return f.Resolve(resolve)
}

// Resolve converts key names to scancodes.
func (f *BindingsFile) Resolve(resolve KeyResolver) (*Bindings, error) {
	b := &Bindings{
		axes:    make(map[string]axis, len(f.Axes)),
		actions: make(map[string][]sdl.Scancode, len(f.Actions)),
	}
	keys := func(owner string, names []string) ([]sdl.Scancode, error) {
		out := make([]sdl.Scancode, 0, len(names))
		for _, n := range names {
			sc, ok := resolve(n)
			if !ok {
				return nil, fmt.Errorf("%s: %w %q", owner, ErrUnknownKey, n)
			}
			out = append(out, sc)
		}
		return out, nil
	}

	for name, ab := range f.Axes {
		pos, err := keys("axis "+name, ab.Pos)
		if err != nil {
			return nil, err
		}
		neg, err := keys("axis "+name, ab.Neg)
		if err != nil {
			return nil, err
		}
		b.axes[name] = axis{pos: pos, neg: neg}
	}
	for name, names := range f.Actions {
		sc, err := keys("action "+name, names)
		if err != nil {
			return nil, err
		}
		b.actions[name] = sc
	}
	return b, nil
}

// HasAxis reports whether an axis is bound.
func (b *Bindings) HasAxis(name string) bool {
	_, ok := b.axes[name]
	return ok
}

// IsAction reports whether sc is bound to action.
func (b *Bindings) IsAction(action string, sc sdl.Scancode) bool {
	for _, k := range b.actions[action] {
		if k == sc {
			return true
		}
	}
	return false
}

// AxisNames returns bound axis names, sorted.
func (b *Bindings) AxisNames() []string {
	names := make([]string, 0, len(b.axes))
	for n := range b.axes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ActionNames returns bound action names, sorted.
func (b *Bindings) ActionNames() []string {
	names := make([]string, 0, len(b.actions))
	for n := range b.actions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
