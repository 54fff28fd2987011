// SPDX-License-Identifier: MIT

package dataset

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// StableHalfLife marks a stable nuclide in a Source.
const StableHalfLife = "stable"

// DefaultEnergyUnit is the unit of decay energies when a Source names none.
const DefaultEnergyUnit = "keV"

// Source is the human-maintained description a dataset is compiled from.
//
// Numeric fields are kept as strings so decimal literals such as "12.32"
// reach the compiler exactly, not as the nearest float64.
//
//	name: demo
//	version: "1"
//	year_days: 365.2422
//	nuclides:
//	  - name: H-3
//	    half_life: 12.32
//	    unit: y
//	    atomic_mass: 3.01604928
//	    progeny:
//	      - {name: He-3, fraction: 1, mode: β-}
//	    decay_energies: {β-: 18.591}
//	  - {name: He-3, half_life: stable, atomic_mass: 3.01602932}
type Source struct {
	Name       string          `yaml:"name"`
	Version    string          `yaml:"version"`
	YearDays   string          `yaml:"year_days"`
	EnergyUnit string          `yaml:"energy_unit"` // unit of every decay_energies value, default keV
	Nuclides   []SourceNuclide `yaml:"nuclides"`
}

// SourceNuclide is one nuclide of a Source.
type SourceNuclide struct {
	Name       string          `yaml:"name"`
	HalfLife   string          `yaml:"half_life"` // decimal, p/q, or "stable"
	Unit       string          `yaml:"unit"`      // time unit of HalfLife, default "s"
	AtomicMass string          `yaml:"atomic_mass"`
	Progeny    []SourceProgeny `yaml:"progeny"`

	// DecayEnergies maps a decay mode to the energy released per decay.
	// An "IT" entry is the isomeric transition energy of a metastable state.
	DecayEnergies map[string]string `yaml:"decay_energies"`
}

// SourceProgeny is one direct decay of a SourceNuclide.
type SourceProgeny struct {
	Name     string `yaml:"name"`
	Fraction string `yaml:"fraction"`
	Mode     string `yaml:"mode"`
}

// ParseSource decodes a YAML Source. Unknown fields are rejected.
func ParseSource(r io.Reader) (*Source, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var src Source
	if err := dec.Decode(&src); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, loadError("ParseSource", "empty document")
		}
		return nil, loadErrorf("ParseSource", err)
	}

	return &src, nil
}
