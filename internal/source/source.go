package source

import (
	"context"
	"math/rand"
	"sync"
)

// Source produces temperature readings in degrees Celsius. Implementations
// may block (e.g. a network probe); callers pass a context for cancellation.
// A Source reports read failures to the caller — retry policy belongs to the
// polling loop, not to the source or the monitor.
type Source interface {
	Sample(ctx context.Context) (float64, error)
}

// Func adapts a plain function to the Source interface
type Func func(ctx context.Context) (float64, error)

// Sample calls f
func (f Func) Sample(ctx context.Context) (float64, error) {
	return f(ctx)
}

// Simulated generates a mean-reverting random walk around a base temperature.
// With a fixed seed the sequence is deterministic, which the tests rely on.
type Simulated struct {
	mu      sync.Mutex
	rng     *rand.Rand
	base    float64
	step    float64
	current float64
}

// NewSimulated creates a simulated sensor starting at base. step bounds the
// per-sample movement.
func NewSimulated(base, step float64, seed int64) *Simulated {
	return &Simulated{
		rng:     rand.New(rand.NewSource(seed)),
		base:    base,
		step:    step,
		current: base,
	}
}

// Sample returns the next simulated reading. It never fails.
func (s *Simulated) Sample(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Random step plus a gentle pull back toward the base temperature
	delta := (s.rng.Float64()*2 - 1) * s.step
	reversion := (s.base - s.current) * 0.1
	s.current += delta + reversion

	return s.current, nil
}
