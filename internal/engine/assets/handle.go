package assets

import (
	"context"
	"sync"
)

// Handle is the pending or finished result of a load.
type Handle[T any] struct {
	path string
	done chan struct{}

	mu    sync.Mutex
	value T
	err   error
}

func newHandle[T any](path string) *Handle[T] {
	return &Handle[T]{path: path, done: make(chan struct{})}
}

// Loaded returns a handle that is already resolved with v.
func Loaded[T any](path string, v T) *Handle[T] {
	h := newHandle[T](path)
	h.resolve(v, nil)
	return h
}

// Pending returns an unresolved handle and the function that resolves it,
// for values produced outside a Loader.
func Pending[T any](path string) (*Handle[T], func(T, error)) {
	h := newHandle[T](path)
	return h, h.resolve
}

func (h *Handle[T]) resolve(v T, err error) {
	h.mu.Lock()
	h.value, h.err = v, err
	h.mu.Unlock()
	close(h.done)
}

// Path returns the asset path the handle was created for.
func (h *Handle[T]) Path() string {
	return h.path
}

// Done is closed once the load finished, successfully or not.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// Ready reports whether the load finished.
func (h *Handle[T]) Ready() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Get returns the value if the load finished successfully.
func (h *Handle[T]) Get() (T, bool) {
	if !h.Ready() {
		var zero T
		return zero, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.value, h.err == nil
}

// Err returns the load error, or nil while loading or on success.
func (h *Handle[T]) Err() error {
	if !h.Ready() {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Wait blocks until the load finishes or ctx is done.
func (h *Handle[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-h.done:
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.value, h.err
}
