// SPDX-License-Identifier: MIT

package units

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/katalvlaran/decaychain/numeric"
)

// Quantity names a family of units.
type Quantity string

const (
	// Time units; base unit is the second.
	Time Quantity = "time"
	// Activity units; base unit is the becquerel.
	Activity Quantity = "activity"
	// Mass units; base unit is the gram.
	Mass Quantity = "mass"
	// Moles units; base unit is the mole.
	Moles Quantity = "moles"
	// Energy units; base unit is the electronvolt.
	Energy Quantity = "energy"
)

// factor is a unit's size in base units, held in both representations.
type factor struct {
	f float64
	r *big.Rat
}

// table maps normalised unit symbols to their factors.
type table struct {
	quantity Quantity
	factors  map[string]factor
}

// newTable builds a table from decimal literals. It panics on a malformed
// literal, which can only be a programming error in this package.
func newTable(q Quantity, defs map[string]string) *table {
	t := &table{quantity: q, factors: make(map[string]factor, len(defs))}
	for unit, lit := range defs {
		r, ok := new(big.Rat).SetString(lit)
		if !ok {
			panic(fmt.Sprintf("units: bad factor %q for %s", lit, unit))
		}
		f, _ := r.Float64()
		t.factors[normalize(unit)] = factor{f: f, r: r}
	}

	return t
}

// normalize trims and NFKC-normalises a unit symbol (µ U+00B5 → μ U+03BC).
func normalize(unit string) string {
	return norm.NFKC.String(strings.TrimSpace(unit))
}

func (t *table) lookup(unit string) (factor, error) {
	u := normalize(unit)
	if fc, ok := t.factors[u]; ok {
		return fc, nil
	}
	if strings.HasPrefix(u, "u") {
		if fc, ok := t.factors["μ"+u[1:]]; ok {
			return fc, nil
		}
	}

	return factor{}, fmt.Errorf("%w: %q is not a %s unit", ErrUnknownUnit, unit, t.quantity)
}

// convert scales v from one unit to another; exact values stay exact.
func (t *table) convert(v numeric.Value, from, to string) (numeric.Value, error) {
	src, err := t.lookup(from)
	if err != nil {
		return numeric.Value{}, err
	}
	dst, err := t.lookup(to)
	if err != nil {
		return numeric.Value{}, err
	}

	return scale(v, src, dst), nil
}

func scale(v numeric.Value, src, dst factor) numeric.Value {
	if v.IsExact() {
		r, _ := v.Rat()
		r.Mul(r, src.r)
		r.Quo(r, dst.r)

		return numeric.Exact(r)
	}

	return numeric.Fixed(v.Float64() * src.f / dst.f)
}

// Units lists the symbols known for q in ascending order.
func Units(q Quantity) []string {
	var tables []*table
	switch q {
	case Time:
		tables = []*table{timeTable, yearTable}
	case Activity:
		tables = []*table{activityTable}
	case Mass:
		tables = []*table{massTable}
	case Moles:
		tables = []*table{molesTable}
	case Energy:
		tables = []*table{energyTable}
	default:
		return nil
	}
	var out []string
	for _, t := range tables {
		for u := range t.factors {
			out = append(out, u)
		}
	}
	sort.Strings(out)

	return out
}

var timeTable = newTable(Time, map[string]string{
	"ps": "1e-12", "ns": "1e-9", "μs": "1e-6", "ms": "1e-3",
	"s": "1", "sec": "1", "second": "1", "seconds": "1",
	"m": "60", "min": "60", "minute": "60", "minutes": "60",
	"h": "3600", "hr": "3600", "hour": "3600", "hours": "3600",
	"d": "86400", "day": "86400", "days": "86400",
})

// yearTable holds year-based units in years; the year length in seconds is
// supplied by a TimeConverter.
var yearTable = newTable(Time, map[string]string{
	"y": "1", "yr": "1", "year": "1", "years": "1",
	"ky": "1e3", "My": "1e6", "By": "1e9", "Gy": "1e9", "Ty": "1e12", "Py": "1e15",
})

var activityTable = newTable(Activity, map[string]string{
	"pBq": "1e-12", "nBq": "1e-9", "μBq": "1e-6", "mBq": "1e-3",
	"Bq": "1", "kBq": "1e3", "MBq": "1e6", "GBq": "1e9", "TBq": "1e12", "PBq": "1e15", "EBq": "1e18",
	"pCi": "3.7e-2", "nCi": "3.7e1", "μCi": "3.7e4", "mCi": "3.7e7",
	"Ci": "3.7e10", "kCi": "3.7e13", "MCi": "3.7e16", "GCi": "3.7e19", "TCi": "3.7e22", "PCi": "3.7e25", "ECi": "3.7e28",
	"dpm": "1/60",
})

var massTable = newTable(Mass, map[string]string{
	"pg": "1e-12", "ng": "1e-9", "μg": "1e-6", "mg": "1e-3",
	"g": "1", "kg": "1e3", "Mg": "1e6", "t": "1e6", "ton": "1e6",
})

var molesTable = newTable(Moles, map[string]string{
	"pmol": "1e-12", "nmol": "1e-9", "μmol": "1e-6", "mmol": "1e-3",
	"mol": "1", "kmol": "1e3", "Mmol": "1e6",
})

// energyTable is in eV; 1 eV = 1.602176634e-19 J exactly.
var energyTable = newTable(Energy, map[string]string{
	"meV": "1e-3", "eV": "1", "keV": "1e3", "MeV": "1e6", "GeV": "1e9",
	"J":   "10000000000000000000000000000/1602176634",
	"Wh":  "36000000000000000000000000000000/1602176634",
	"kWh": "36000000000000000000000000000000000/1602176634",
})

// ConvertActivity converts an activity between units.
func ConvertActivity(v numeric.Value, from, to string) (numeric.Value, error) {
	return activityTable.convert(v, from, to)
}

// ConvertMass converts a mass between units.
func ConvertMass(v numeric.Value, from, to string) (numeric.Value, error) {
	return massTable.convert(v, from, to)
}

// ConvertMoles converts an amount of substance between units.
func ConvertMoles(v numeric.Value, from, to string) (numeric.Value, error) {
	return molesTable.convert(v, from, to)
}

// ConvertEnergy converts an energy between units.
func ConvertEnergy(v numeric.Value, from, to string) (numeric.Value, error) {
	return energyTable.convert(v, from, to)
}
