// SPDX-License-Identifier: MIT

package numeric

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Kind tells which representation a Value carries.
type Kind uint8

const (
	// KindFixed marks a float64 value.
	KindFixed Kind = iota
	// KindExact marks an exact rational value.
	KindExact
)

// String returns "fixed" or "exact".
func (k Kind) String() string {
	if k == KindExact {
		return "exact"
	}

	return "fixed"
}

// Value is an immutable number that is either Fixed (float64) or Exact (*big.Rat).
// The zero Value is Fixed(0).
type Value struct {
	kind Kind
	f    float64
	r    *big.Rat // non-nil iff kind == KindExact; never shared with callers
}

// Fixed wraps a float64.
func Fixed(f float64) Value { return Value{kind: KindFixed, f: f} }

// Exact wraps a copy of r. A nil r is treated as zero.
func Exact(r *big.Rat) Value {
	c := new(big.Rat)
	if r != nil {
		c.Set(r)
	}

	return Value{kind: KindExact, r: c}
}

// ExactInt returns the exact integer n.
func ExactInt(n int64) Value { return Value{kind: KindExact, r: new(big.Rat).SetInt64(n)} }

// ExactFrac returns the exact fraction p/q. It fails with ErrDivideByZero when q == 0.
func ExactFrac(p, q int64) (Value, error) {
	if q == 0 {
		return Value{}, numericErrorf("ExactFrac", ErrDivideByZero)
	}

	return Value{kind: KindExact, r: big.NewRat(p, q)}, nil
}

// ParseExact parses a decimal ("12.32", "1.5e-3") or fraction ("1/3") literal
// into an Exact value.
func ParseExact(s string) (Value, error) {
	r, err := ParseRat(s)
	if err != nil {
		return Value{}, err
	}

	return Value{kind: KindExact, r: r}, nil
}

// ParseRat parses s as an exact rational.
func ParseRat(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, numericErrorf("ParseRat", fmt.Errorf("%q: %w", s, ErrInvalidValue))
	}

	return r, nil
}

// FromFloatDecimal converts f to the exact rational of its shortest decimal
// representation, so 12.32 becomes 1232/100 rather than the nearest binary64.
func FromFloatDecimal(f float64) (Value, error) {
	r, err := RatFromFloat(f)
	if err != nil {
		return Value{}, err
	}

	return Value{kind: KindExact, r: r}, nil
}

// RatFromFloat is the *big.Rat form of FromFloatDecimal.
func RatFromFloat(f float64) (*big.Rat, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, numericErrorf("RatFromFloat", ErrInvalidValue)
	}
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, 64))
	if !ok {
		return nil, numericErrorf("RatFromFloat", ErrInvalidValue)
	}

	return r, nil
}

// Kind reports the representation of v.
func (v Value) Kind() Kind { return v.kind }

// IsExact reports whether v is an exact rational.
func (v Value) IsExact() bool { return v.kind == KindExact }

// Float64 returns v as the nearest float64.
func (v Value) Float64() float64 {
	if v.kind == KindExact {
		f, _ := v.r.Float64()

		return f
	}

	return v.f
}

// Rat returns v as a fresh exact rational. Fixed values convert through their
// shortest decimal representation; NaN and ±Inf fail with ErrInvalidValue.
func (v Value) Rat() (*big.Rat, error) {
	if v.kind == KindExact {
		return new(big.Rat).Set(v.r), nil
	}

	return RatFromFloat(v.f)
}

// Valid reports whether v is a finite number.
func (v Value) Valid() bool {
	if v.kind == KindExact {
		return v.r != nil
	}

	return !math.IsNaN(v.f) && !math.IsInf(v.f, 0)
}

// Sign returns -1, 0 or +1.
func (v Value) Sign() int {
	if v.kind == KindExact {
		return v.r.Sign()
	}
	switch {
	case v.f > 0:
		return 1
	case v.f < 0:
		return -1
	}

	return 0
}

// IsZero reports whether v equals zero.
func (v Value) IsZero() bool {
	if v.kind == KindExact {
		return v.r.Sign() == 0
	}

	return v.f == 0
}

// String formats fixed values in shortest 'g' form and exact values as "p/q"
// (or "p" for integers).
func (v Value) String() string {
	if v.kind == KindExact {
		return v.r.RatString()
	}

	return strconv.FormatFloat(v.f, 'g', -1, 64)
}

// Add returns v + w.
func (v Value) Add(w Value) Value {
	if v.kind == KindExact && w.kind == KindExact {
		return Value{kind: KindExact, r: new(big.Rat).Add(v.r, w.r)}
	}

	return Fixed(v.Float64() + w.Float64())
}

// Sub returns v − w.
func (v Value) Sub(w Value) Value {
	if v.kind == KindExact && w.kind == KindExact {
		return Value{kind: KindExact, r: new(big.Rat).Sub(v.r, w.r)}
	}

	return Fixed(v.Float64() - w.Float64())
}

// Mul returns v · w.
func (v Value) Mul(w Value) Value {
	if v.kind == KindExact && w.kind == KindExact {
		return Value{kind: KindExact, r: new(big.Rat).Mul(v.r, w.r)}
	}

	return Fixed(v.Float64() * w.Float64())
}

// Quo returns v / w, or ErrDivideByZero when w is zero.
func (v Value) Quo(w Value) (Value, error) {
	if w.IsZero() {
		return Value{}, numericErrorf("Quo", ErrDivideByZero)
	}
	if v.kind == KindExact && w.kind == KindExact {
		return Value{kind: KindExact, r: new(big.Rat).Quo(v.r, w.r)}, nil
	}

	return Fixed(v.Float64() / w.Float64()), nil
}

// Neg returns −v.
func (v Value) Neg() Value {
	if v.kind == KindExact {
		return Value{kind: KindExact, r: new(big.Rat).Neg(v.r)}
	}

	return Fixed(-v.f)
}

// Equal reports whether v and w have the same kind and the same value.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	if v.kind == KindExact {
		return v.r.Cmp(w.r) == 0
	}

	return v.f == w.f
}
