package estimator

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Handle is a read-only reference to an estimator that may still be
// training. Resolve is called exactly once; later calls are ignored.
type Handle struct {
	done  chan struct{}
	once  sync.Once
	ready atomic.Bool
	est   *Estimator
	err   error
}

func NewHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

// Resolved wraps an already trained estimator.
func Resolved(est *Estimator) *Handle {
	h := NewHandle()
	h.Resolve(est, nil)
	return h
}

func (h *Handle) Resolve(est *Estimator, err error) {
	h.once.Do(func() {
		h.est, h.err = est, err
		if err == nil && est != nil {
			h.ready.Store(true)
		}
		close(h.done)
	})
}

// Ready reports whether training finished successfully.
func (h *Handle) Ready() bool {
	return h.ready.Load()
}

// Done is closed when training has finished, successfully or not.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until training finishes or ctx ends.
func (h *Handle) Wait(ctx context.Context) (*Estimator, error) {
	select {
	case <-h.done:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrNotReady, ctx.Err())
	}
	if h.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotReady, h.err)
	}
	if h.est == nil {
		return nil, ErrNotReady
	}
	return h.est, nil
}
