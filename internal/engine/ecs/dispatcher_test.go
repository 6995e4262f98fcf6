package ecs

import (
	"errors"
	"slices"
	"testing"
)

type recorder struct {
	name string
	log  *[]string
}

func (r recorder) Run(*World) { *r.log = append(*r.log, r.name) }

func TestDispatcherOrder(t *testing.T) {
	var log []string
	rec := func(name string) System { return recorder{name, &log} }

	d, err := NewDispatcherBuilder().
		With(rec("show_fov"), "show_fov", "auto_fov").
		With(rec("prefab"), "prefab").
		With(rec("input_system"), "input_system").
		With(rec("fly_movement"), "fly_movement", "input_system").
		With(rec("auto_fov"), "auto_fov", "prefab").
		With(rec("ui_system"), "ui_system").
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []string{"prefab", "input_system", "fly_movement", "auto_fov", "show_fov", "ui_system"}
	if got := d.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	d.Dispatch(NewWorld())
	if !slices.Equal(log, want) {
		t.Errorf("run order = %v, want %v", log, want)
	}
}

func TestDispatcherErrors(t *testing.T) {
	nop := SystemFunc(func(*World) {})
	tests := []struct {
		name  string
		build func() *DispatcherBuilder
		want  error
	}{
		{
			name: "unknown dependency",
			build: func() *DispatcherBuilder {
				return NewDispatcherBuilder().With(nop, "a", "missing")
			},
			want: ErrUnknownDependency,
		},
		{
			name: "duplicate",
			build: func() *DispatcherBuilder {
				return NewDispatcherBuilder().With(nop, "a").With(nop, "a")
			},
			want: ErrDuplicateSystem,
		},
		{
			name: "cycle",
			build: func() *DispatcherBuilder {
				return NewDispatcherBuilder().With(nop, "a", "b").With(nop, "b", "a")
			},
			want: ErrDependencyCycle,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build().Build()
			if !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
		})
	}
}

type pairBundle struct{ fail bool }

func (p pairBundle) Build(b *DispatcherBuilder) error {
	if p.fail {
		return errors.New("boom")
	}
	nop := SystemFunc(func(*World) {})
	b.With(nop, "first").With(nop, "second", "first")
	return nil
}

func TestDispatcherBundle(t *testing.T) {
	d, err := NewDispatcherBuilder().WithBundle(pairBundle{}).Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Names(); !slices.Equal(got, []string{"first", "second"}) {
		t.Errorf("Names() = %v", got)
	}

	if _, err := NewDispatcherBuilder().WithBundle(pairBundle{fail: true}).Build(); err == nil {
		t.Error("expected bundle error")
	}
}

type disposable struct {
	disposed *[]string
	name     string
}

func (d disposable) Run(*World)     {}
func (d disposable) Dispose(*World) { *d.disposed = append(*d.disposed, d.name) }

func TestDispatcherDispose(t *testing.T) {
	var disposed []string
	d, err := NewDispatcherBuilder().
		With(disposable{&disposed, "a"}, "a").
		With(SystemFunc(func(*World) {}), "plain").
		With(disposable{&disposed, "b"}, "b", "a").
		Build()
	if err != nil {
		t.Fatal(err)
	}
	d.Dispose(NewWorld())
	if !slices.Equal(disposed, []string{"b", "a"}) {
		t.Errorf("dispose order = %v, want [b a]", disposed)
	}
}
