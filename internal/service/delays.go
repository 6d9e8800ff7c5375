package service

import (
	"context"
	"time"
)

// Delays holds the simulated latency applied at the entry of each operation.
// The defaults reproduce the network feel of the original demo; tests run with
// the zero value.
type Delays struct {
	Auth   time.Duration
	List   time.Duration
	Get    time.Duration
	Create time.Duration
	Save   time.Duration
	Delete time.Duration
	Move   time.Duration
}

// DefaultDelays returns the per-operation latencies of the original demo.
func DefaultDelays() Delays {
	return Delays{
		Auth:   120 * time.Millisecond,
		List:   200 * time.Millisecond,
		Get:    160 * time.Millisecond,
		Create: 180 * time.Millisecond,
		Save:   160 * time.Millisecond,
		Delete: 120 * time.Millisecond,
		Move:   120 * time.Millisecond,
	}
}

// sleep waits for d or until the context is done. Operations themselves run to
// completion once past this point; only the artificial suspension is
// interruptible.
func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
