package assets

import (
	"errors"
	"fmt"
	"sync"
)

// Completion is the overall state of a ProgressCounter.
type Completion int

const (
	Loading Completion = iota
	Failed
	Complete
)

func (c Completion) String() string {
	switch c {
	case Failed:
		return "failed"
	case Complete:
		return "complete"
	default:
		return "loading"
	}
}

// ProgressCounter tracks a group of loads. Safe for concurrent use.
type ProgressCounter struct {
	mu       sync.Mutex
	total    int
	finished int
	failed   int
	errs     []error
}

// NewProgressCounter creates an empty counter.
func NewProgressCounter() *ProgressCounter {
	return &ProgressCounter{}
}

// Add registers n more loads.
func (p *ProgressCounter) Add(n int) {
	p.mu.Lock()
	p.total += n
	p.mu.Unlock()
}

// Succeed records one finished load.
func (p *ProgressCounter) Succeed() {
	p.mu.Lock()
	p.finished++
	p.mu.Unlock()
}

// Fail records one failed load.
func (p *ProgressCounter) Fail(path string, err error) {
	p.mu.Lock()
	p.failed++
	p.errs = append(p.errs, fmt.Errorf("%s: %w", path, err))
	p.mu.Unlock()
}

// Complete returns Failed as soon as any load failed, Complete when every
// registered load finished and Loading otherwise.
func (p *ProgressCounter) Complete() Completion {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.failed > 0:
		return Failed
	case p.finished == p.total:
		return Complete
	default:
		return Loading
	}
}

// NumAssets returns the number of registered loads.
func (p *ProgressCounter) NumAssets() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// NumFinished returns the number of successful loads.
func (p *ProgressCounter) NumFinished() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.finished
}

// NumFailed returns the number of failed loads.
func (p *ProgressCounter) NumFailed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failed
}

// NumLoading returns the number of loads still running.
func (p *ProgressCounter) NumLoading() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total - p.finished - p.failed
}

// Err joins the errors of failed loads, or returns nil.
func (p *ProgressCounter) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return errors.Join(p.errs...)
}
