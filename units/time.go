// SPDX-License-Identifier: MIT

package units

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/katalvlaran/decaychain/numeric"
)

// DefaultYearDays is the mean tropical year used when a dataset does not
// specify its own year length.
const DefaultYearDays = 365.2422

const secondsPerDay = 86400

// TimeConverter converts times between units for one year length.
type TimeConverter struct {
	year factor // seconds per year
}

// NewTimeConverter returns a converter for a year of yearDays days. When
// yearDaysExact is nil the exact year length is the shortest decimal form of
// yearDays.
func NewTimeConverter(yearDays float64, yearDaysExact *big.Rat) (*TimeConverter, error) {
	if !(yearDays > 0) || math.IsInf(yearDays, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYearLength, yearDays)
	}
	r := yearDaysExact
	if r == nil {
		var err error
		if r, err = numeric.RatFromFloat(yearDays); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYearLength, err)
		}
	} else {
		if r.Sign() <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidYearLength, r.RatString())
		}
		r = new(big.Rat).Set(r)
	}
	r.Mul(r, big.NewRat(secondsPerDay, 1))

	return &TimeConverter{year: factor{f: yearDays * secondsPerDay, r: r}}, nil
}

// YearSeconds returns the length of a year in seconds.
func (c *TimeConverter) YearSeconds() float64 { return c.year.f }

func (c *TimeConverter) lookup(unit string) (factor, error) {
	fc, err := timeTable.lookup(unit)
	if err == nil {
		return fc, nil
	}
	if !errors.Is(err, ErrUnknownUnit) {
		return factor{}, err
	}
	yf, yerr := yearTable.lookup(unit)
	if yerr != nil {
		return factor{}, err
	}

	return factor{f: yf.f * c.year.f, r: new(big.Rat).Mul(yf.r, c.year.r)}, nil
}

// ToSeconds converts v expressed in unit to seconds.
func (c *TimeConverter) ToSeconds(v numeric.Value, unit string) (numeric.Value, error) {
	return c.Convert(v, unit, "s")
}

// FromSeconds converts v seconds to unit.
func (c *TimeConverter) FromSeconds(v numeric.Value, unit string) (numeric.Value, error) {
	return c.Convert(v, "s", unit)
}

// Convert scales a time between units. Exact values stay exact.
func (c *TimeConverter) Convert(v numeric.Value, from, to string) (numeric.Value, error) {
	src, err := c.lookup(from)
	if err != nil {
		return numeric.Value{}, err
	}
	dst, err := c.lookup(to)
	if err != nil {
		return numeric.Value{}, err
	}

	return scale(v, src, dst), nil
}

// readableUnits are tried from largest to smallest by Readable.
var readableUnits = []string{"Py", "Ty", "Gy", "My", "ky", "y", "d", "h", "m", "s", "ms", "μs", "ns", "ps"}

// Readable renders a half-life in seconds with the largest unit that keeps
// the number at or above one, to four significant figures: "12.32 y",
// "6.007 h", "2.552 m". Infinite half-lives render as "stable".
func (c *TimeConverter) Readable(seconds float64) string {
	if math.IsInf(seconds, 1) {
		return "stable"
	}
	if math.IsNaN(seconds) || seconds <= 0 {
		return strconv.FormatFloat(seconds, 'g', 4, 64) + " s"
	}
	var (
		unit string
		fc   factor
		err  error
	)
	for _, unit = range readableUnits {
		if fc, err = c.lookup(unit); err != nil {
			continue
		}
		if seconds/fc.f >= 1 {
			break
		}
	}

	return strconv.FormatFloat(seconds/fc.f, 'g', 4, 64) + " " + unit
}
