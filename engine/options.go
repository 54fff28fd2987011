// SPDX-License-Identifier: MIT

package engine

import "context"

// DefaultWorkers evaluates the sparse products on the calling goroutine.
const DefaultWorkers = 1

const panicWorkersInvalid = "engine: WithWorkers: workers must be >= 1"

// Options configures Evolve, EvolveNumbers and EvolveExact.
type Options struct {
	ctx     context.Context // cancellation for row-block workers and exact evaluation
	workers int             // >1 switches to row-block parallel products
	metrics *Metrics        // nil disables instrumentation
}

// Option mutates Options.
type Option func(*Options)

// WithWorkers splits the fixed-precision products into row blocks evaluated
// by n goroutines. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithMetrics records every evolution in m.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.metrics = m }
}

// WithContext sets the cancellation context. A nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

func gatherOptions(user ...Option) Options {
	o := Options{ctx: context.Background(), workers: DefaultWorkers}
	for _, fn := range user {
		fn(&o)
	}

	return o
}
