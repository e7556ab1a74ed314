package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttle caps batch throughput in documents per second. Downstream
// intake systems that consume decision output cannot always absorb a
// full-speed batch run.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a throttle; docsPerSecond <= 0 disables throttling
func NewThrottle(docsPerSecond float64, burst int) *Throttle {
	if docsPerSecond <= 0 {
		return &Throttle{}
	}
	if burst <= 0 {
		burst = 1
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Limit(docsPerSecond), burst)}
}

// Wait blocks until the next document may be processed
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil || t.limiter == nil {
		return nil
	}
	return t.limiter.Wait(ctx)
}

// Allow reports whether a document may be processed without waiting
func (t *Throttle) Allow() bool {
	if t == nil || t.limiter == nil {
		return true
	}
	return t.limiter.Allow()
}
