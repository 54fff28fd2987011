// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for sparse constructors and kernels.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion.
	DefaultValidateNaNInf = true

	// DefaultDropZeros removes explicit zeros when building from triplets or
	// converting rational storage to float64.
	DefaultDropZeros = true

	// DefaultWorkers is the number of row blocks used by MulVecParallel.
	DefaultWorkers = 1
)

const panicWorkersInvalid = "matrix: WithWorkers: workers must be >= 1"

// Option mutates Options during gatherOptions.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Public entry points accept `...Option` and resolve them via gatherOptions.
type Options struct {
	validateNaNInf bool // DefaultValidateNaNInf
	dropZeros      bool // DefaultDropZeros
	workers        int  // DefaultWorkers
}

// WithValidateNaNInf enables rejection of NaN/±Inf values on ingestion (default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables NaN/Inf validation (use with care).
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithKeepZeros keeps explicit zero entries in compressed storage.
func WithKeepZeros() Option {
	return func(o *Options) { o.dropZeros = false }
}

// WithWorkers sets the number of contiguous row blocks processed
// concurrently by MulVecParallel.
//
// Errors:
//   - Panics with a stable message when workers < 1.
//
// Notes:
//   - The effective count is capped by the number of rows.
func WithWorkers(workers int) Option {
	if workers < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = workers }
}

// gatherOptions applies user setters on top of the defaults, in order.
func gatherOptions(user ...Option) Options {
	o := Options{
		validateNaNInf: DefaultValidateNaNInf,
		dropZeros:      DefaultDropZeros,
		workers:        DefaultWorkers,
	}
	for _, set := range user {
		if set != nil {
			set(&o) // last-writer-wins
		}
	}

	return o
}
