// SPDX-License-Identifier: MIT

package numeric

import (
	"math"
	"math/big"
	"sync"
)

const (
	// guardBits are added to every intermediate computation on top of the
	// requested precision.
	guardBits = 64

	// halvings is the number of argument halvings applied before the Taylor
	// series in expReduced; the sum is squared back the same number of times.
	halvings = 16

	// maxShift bounds the binary exponent of a result. Anything smaller than
	// 2^(−maxShift) saturates to zero, anything larger overflows.
	maxShift = 1 << 30
)

var (
	ln2Mu    sync.Mutex
	ln2Cache = make(map[uint]*big.Float)
)

// Ln2 returns ln 2 rounded to prec bits. Values are cached per precision and
// every call returns a fresh copy.
//
// Implementation:
//   - ln 2 = 2·atanh(1/3) = 2·Σ_k 1 / ((2k+1)·3^(2k+1)), about 3.17 bits per term.
//
// Complexity: O(prec) big.Float operations on first use for a given prec.
func Ln2(prec uint) *big.Float {
	ln2Mu.Lock()
	defer ln2Mu.Unlock()

	if v, ok := ln2Cache[prec]; ok {
		return new(big.Float).Copy(v)
	}

	w := prec + guardBits
	var (
		sum   = new(big.Float).SetPrec(w)
		term  = new(big.Float).SetPrec(w).Quo(big.NewFloat(1).SetPrec(w), big.NewFloat(3).SetPrec(w))
		ninth = new(big.Float).SetPrec(w).Quo(big.NewFloat(1).SetPrec(w), big.NewFloat(9).SetPrec(w))
		part  = new(big.Float).SetPrec(w)
		k     int64
	)
	for k = 0; ; k++ {
		part.Quo(term, new(big.Float).SetPrec(w).SetInt64(2*k+1))
		sum.Add(sum, part)
		term.Mul(term, ninth)
		if term.MantExp(nil) < -int(w) {
			break
		}
	}
	sum.Mul(sum, big.NewFloat(2))

	v := new(big.Float).SetPrec(prec).Set(sum)
	ln2Cache[prec] = v

	return new(big.Float).Copy(v)
}

// expReduced evaluates e^r for |r| ≲ 1 at working precision w.
//
// Stage 1: scale r by 2^(−halvings) so the series converges in a few dozen terms.
// Stage 2: Taylor series Σ x^n/n! until the term drops below the working ulp.
// Stage 3: square the sum halvings times.
func expReduced(r *big.Float, w uint) *big.Float {
	x := new(big.Float).SetPrec(w).Set(r)
	x.SetMantExp(x, -halvings)

	var (
		sum  = new(big.Float).SetPrec(w).SetInt64(1)
		term = new(big.Float).SetPrec(w).SetInt64(1)
		n    int64
	)
	for n = 1; ; n++ {
		term.Mul(term, x)
		term.Quo(term, new(big.Float).SetPrec(w).SetInt64(n))
		if term.Sign() == 0 {
			break
		}
		sum.Add(sum, term)
		if term.MantExp(nil) < sum.MantExp(nil)-int(w)-2 {
			break
		}
	}

	var i int
	for i = 0; i < halvings; i++ {
		sum.Mul(sum, sum)
	}

	return sum
}

// Exp returns e^x rounded to prec bits.
//
// Implementation:
//   - Stage 1: reduce x = n·ln2 + r with n = round(x / ln2), |r| ≤ ln2/2.
//   - Stage 2: e^r via expReduced, then scale by 2^n exactly.
//
// A result below 2^(−maxShift) saturates to zero; one above 2^maxShift
// fails with ErrExponentOverflow.
func Exp(x *big.Float, prec uint) (*big.Float, error) {
	if x == nil {
		return nil, numericErrorf("Exp", ErrInvalidValue)
	}
	if x.IsInf() {
		if x.Sign() < 0 {
			return new(big.Float).SetPrec(prec), nil
		}

		return nil, numericErrorf("Exp", ErrExponentOverflow)
	}
	if x.Sign() == 0 {
		return new(big.Float).SetPrec(prec).SetInt64(1), nil
	}

	w := prec + guardBits
	ln2 := Ln2(w)

	q := new(big.Float).SetPrec(w).Quo(x, ln2)
	// round half away from zero
	half := big.NewFloat(0.5)
	if q.Sign() < 0 {
		q.Sub(q, half)
	} else {
		q.Add(q, half)
	}
	nBig, _ := q.Int(nil)
	if !nBig.IsInt64() || nBig.Int64() > maxShift {
		if nBig.Sign() < 0 {
			return new(big.Float).SetPrec(prec), nil
		}

		return nil, numericErrorf("Exp", ErrExponentOverflow)
	}
	n := nBig.Int64()
	if n < -maxShift {
		return new(big.Float).SetPrec(prec), nil
	}

	r := new(big.Float).SetPrec(w).SetInt64(n)
	r.Mul(r, ln2)
	r.Sub(new(big.Float).SetPrec(w).Set(x), r)

	y := expReduced(r, w)
	y.SetMantExp(y, int(n))

	return new(big.Float).SetPrec(prec).Set(y), nil
}

// Pow2Neg returns 2^(−x) rounded to prec bits for an exact rational exponent.
//
// Implementation:
//   - Stage 1: split x = n + f with n = ⌊x⌋ and f ∈ [0, 1), both exact.
//   - Stage 2: 2^(−f) = e^(−f·ln2) via expReduced; 2^(−n) is applied exactly.
//
// Integer exponents therefore produce exact powers of two. Results below
// 2^(−maxShift) saturate to zero; results above 2^maxShift fail with
// ErrExponentOverflow.
func Pow2Neg(x *big.Rat, prec uint) (*big.Float, error) {
	if x == nil {
		return nil, numericErrorf("Pow2Neg", ErrInvalidValue)
	}
	if x.Sign() == 0 {
		return new(big.Float).SetPrec(prec).SetInt64(1), nil
	}

	// big.Int.Div is Euclidean; with a positive denominator that is the floor.
	n := new(big.Int).Div(x.Num(), x.Denom())
	if n.Cmp(big.NewInt(maxShift)) > 0 {
		return new(big.Float).SetPrec(prec), nil
	}
	if n.Cmp(big.NewInt(-maxShift)) < 0 {
		return nil, numericErrorf("Pow2Neg", ErrExponentOverflow)
	}

	w := prec + guardBits
	f := new(big.Rat).Sub(x, new(big.Rat).SetInt(n))

	y := new(big.Float).SetPrec(w).SetInt64(1)
	if f.Sign() != 0 {
		arg := new(big.Float).SetPrec(w).SetRat(f)
		arg.Mul(arg, Ln2(w))
		arg.Neg(arg)
		y = expReduced(arg, w)
	}
	y.SetMantExp(y, -int(n.Int64()))

	return new(big.Float).SetPrec(prec).Set(y), nil
}

// SigBits returns the number of mantissa bits that carry sig decimal digits.
func SigBits(sig int) uint {
	return uint(math.Ceil(float64(sig) * math.Log2(10)))
}
