package ui

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// State is a snapshot of an overlay
type State[T any] struct {
	Open    bool
	Loading bool
	Data    T
	Err     error
}

// Overlay is a modal that loads its content when opened. Every Open or Close
// starts a new generation; a fetch that finishes for an older generation is
// dropped, so a slow response can never replace the content of a later open.
type Overlay[T any] struct {
	name   string
	logger *zap.Logger

	mu     sync.Mutex
	state  State[T]
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}

	// fetches tracks every fetch goroutine, including superseded ones
	fetches sync.WaitGroup
}

// NewOverlay creates a closed overlay
func NewOverlay[T any](name string, logger *zap.Logger) *Overlay[T] {
	return &Overlay[T]{name: name, logger: logger.Named(name)}
}

// Open shows the overlay and starts fetch in the background. A fetch still
// running from a previous open is cancelled.
func (o *Overlay[T]) Open(ctx context.Context, fetch func(context.Context) (T, error)) {
	fetchCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	o.mu.Lock()
	gen := o.reset(true)
	o.state.Loading = true
	o.cancel = cancel
	o.done = done
	o.mu.Unlock()

	o.fetches.Add(1)
	go func() {
		defer o.fetches.Done()
		defer close(done)
		defer cancel()

		data, err := fetch(fetchCtx)

		o.mu.Lock()
		defer o.mu.Unlock()
		if gen != o.gen {
			o.logger.Debug("Discarding stale result", zap.Uint64("generation", gen))
			return
		}
		o.state.Loading = false
		o.state.Data = data
		o.state.Err = err
		if err != nil {
			o.logger.Error("Error loading overlay", zap.Error(err))
		}
	}()
}

// Show opens the overlay with content that needs no fetch
func (o *Overlay[T]) Show(data T) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.reset(true)
	o.state.Data = data
}

// Close hides the overlay, cancels any fetch in flight and clears its content
func (o *Overlay[T]) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.reset(false)
}

// reset cancels the current fetch and starts a new generation. Callers hold mu.
func (o *Overlay[T]) reset(open bool) uint64 {
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.done = nil
	o.gen++
	o.state = State[T]{Open: open}
	return o.gen
}

// Wait blocks until the fetch of the current open has been applied, or ctx ends
func (o *Overlay[T]) Wait(ctx context.Context) error {
	o.mu.Lock()
	done := o.done
	o.mu.Unlock()
	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns a snapshot of the overlay
func (o *Overlay[T]) State() State[T] {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// IsOpen reports whether the overlay is shown
func (o *Overlay[T]) IsOpen() bool {
	return o.State().Open
}
