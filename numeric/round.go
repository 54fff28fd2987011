// SPDX-License-Identifier: MIT

package numeric

import (
	"fmt"
	"math/big"
	"strconv"
)

const (
	// MinSignificantFigures is the smallest accepted significant-figure count.
	MinSignificantFigures = 1

	// MaxSignificantFigures is the largest accepted significant-figure count.
	MaxSignificantFigures = 300
)

// ValidateSignificantFigures fails with ErrInvalidSignificantFigures unless
// MinSignificantFigures ≤ sig ≤ MaxSignificantFigures.
func ValidateSignificantFigures(sig int) error {
	if sig < MinSignificantFigures || sig > MaxSignificantFigures {
		return fmt.Errorf("%w: %d not in [%d, %d]",
			ErrInvalidSignificantFigures, sig, MinSignificantFigures, MaxSignificantFigures)
	}

	return nil
}

// FormatSig renders f in scientific notation with sig significant figures,
// e.g. FormatSig(5, 3) == "5.00e+00".
func FormatSig(f *big.Float, sig int) (string, error) {
	if err := ValidateSignificantFigures(sig); err != nil {
		return "", err
	}
	if f == nil || f.IsInf() {
		return "", numericErrorf("FormatSig", ErrInvalidValue)
	}

	return f.Text('e', sig-1), nil
}

// RoundSig rounds f to sig significant decimal figures and returns the exact
// rational of the rounded decimal.
func RoundSig(f *big.Float, sig int) (*big.Rat, error) {
	s, err := FormatSig(f, sig)
	if err != nil {
		return nil, err
	}

	return ParseRat(s)
}

// RoundRatSig rounds an exact rational to sig significant decimal figures.
func RoundRatSig(r *big.Rat, sig int) (*big.Rat, error) {
	if r == nil {
		return nil, numericErrorf("RoundRatSig", ErrInvalidValue)
	}
	if err := ValidateSignificantFigures(sig); err != nil {
		return nil, err
	}
	if r.Sign() == 0 {
		return new(big.Rat), nil
	}
	prec := SigBits(sig) + guardBits + uint(r.Num().BitLen()+r.Denom().BitLen())

	return RoundSig(new(big.Float).SetPrec(prec).SetRat(r), sig)
}

// FormatValue renders v in %g style with at most sig significant figures;
// trailing zeros are dropped, so FormatValue(ExactInt(5), 15) == "5".
// A sig outside [1, 300] renders v.String().
func FormatValue(v Value, sig int) string {
	if ValidateSignificantFigures(sig) != nil {
		return v.String()
	}
	if v.kind != KindExact {
		return strconv.FormatFloat(v.f, 'g', sig, 64)
	}
	prec := SigBits(sig) + guardBits + uint(v.r.Num().BitLen()+v.r.Denom().BitLen())

	return new(big.Float).SetPrec(prec).SetRat(v.r).Text('g', sig)
}
