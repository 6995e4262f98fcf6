// Package assets loads files from asset directories in background
// goroutines and tracks their progress.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/flyview/internal/logger"
)

// ErrNotFound is returned when no asset root holds the requested path.
var ErrNotFound = errors.New("asset not found")

// Loader reads assets relative to one or more root directories.
// Roots are searched in reverse order (last added = highest priority).
type Loader struct {
	roots []string
	cache *Cache
	mu    sync.RWMutex
	log   *zap.Logger
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{
		roots: []string{dir},
		cache: NewCache(),
		log:   logger.Named("assets"),
	}
}

// AddRoot adds another asset directory with higher priority.
func (l *Loader) AddRoot(dir string) {
	l.mu.Lock()
	l.roots = append(l.roots, dir)
	l.mu.Unlock()
}

// Resolve returns the filesystem path of an asset. Paths are relative to
// the roots; ".." segments are allowed.
func (l *Loader) Resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return path, nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := len(l.roots) - 1; i >= 0; i-- {
		full := filepath.Join(l.roots[i], filepath.FromSlash(path))
		if _, err := os.Stat(full); err == nil {
			return full, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Read returns the contents of an asset, caching them.
func (l *Loader) Read(path string) ([]byte, error) {
	full, err := l.Resolve(path)
	if err != nil {
		return nil, err
	}
	if data, ok := l.cache.Get(full); ok {
		return data, nil
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	l.cache.Set(full, data)
	return data, nil
}

// Cache returns the loader's file cache.
func (l *Loader) Cache() *Cache {
	return l.cache
}

// Load reads path and decodes it in a new goroutine. progress may be nil.
func Load[T any](l *Loader, path string, decode func([]byte) (T, error), progress *ProgressCounter) *Handle[T] {
	return start(l, path, progress, func() (T, error) {
		data, err := l.Read(path)
		if err != nil {
			var zero T
			return zero, err
		}
		return decode(data)
	})
}

// LoadFile resolves path and hands the filesystem path to open in a new
// goroutine, for decoders that read files themselves.
func LoadFile[T any](l *Loader, path string, open func(string) (T, error), progress *ProgressCounter) *Handle[T] {
	return start(l, path, progress, func() (T, error) {
		full, err := l.Resolve(path)
		if err != nil {
			var zero T
			return zero, err
		}
		return open(full)
	})
}

func start[T any](l *Loader, path string, progress *ProgressCounter, work func() (T, error)) *Handle[T] {
	h := newHandle[T](path)
	if progress != nil {
		progress.Add(1)
	}
	go func() {
		v, err := work()
		h.resolve(v, err)
		switch {
		case err != nil:
			l.log.Error("asset failed", zap.String("path", path), zap.Error(err))
			if progress != nil {
				progress.Fail(path, err)
			}
		default:
			l.log.Debug("asset loaded", zap.String("path", path))
			if progress != nil {
				progress.Succeed()
			}
		}
	}()
	return h
}
