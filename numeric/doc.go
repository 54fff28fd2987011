// SPDX-License-Identifier: MIT

// Package numeric provides the two number kinds used throughout decaychain:
//
//   - Fixed: an IEEE-754 binary64 value (float64).
//   - Exact: an arbitrary-precision rational (*big.Rat).
//
// A Value is a small tagged union over both kinds. Arithmetic between two
// Exact values stays exact; as soon as a Fixed operand is involved the result
// is Fixed. Values are immutable: every operation returns a new Value and
// never aliases the caller's *big.Rat.
//
// The package also carries the arbitrary-precision kernels needed by the
// exact decay engine:
//
//	Ln2(prec)          ln 2 to prec bits (cached per precision)
//	Exp(x, prec)       e^x for a *big.Float argument
//	Pow2Neg(x, prec)   2^(−x) for an exact rational exponent
//	RoundSig(f, sig)   round to sig significant decimal figures
//
// Exponentials are evaluated by argument reduction followed by a Taylor
// series. Results underflowing the big.Float exponent range saturate to zero;
// overflow is reported as ErrExponentOverflow.
package numeric
