package common

import (
	"context"
	"time"
)

// Latency emulates the network round trip of the future REST backend so
// loading states stay observable. A zero delay disables it.
type Latency struct {
	delay time.Duration
}

func NewLatency(delay time.Duration) *Latency {
	return &Latency{delay: delay}
}

// Wait blocks for the configured delay or until ctx is done, whichever comes
// first. A cancelled caller gets ctx.Err() and must not apply its write.
func (l *Latency) Wait(ctx context.Context) error {
	if l == nil || l.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(l.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
