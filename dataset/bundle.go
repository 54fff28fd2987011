// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/json"
	"fmt"
	"math/big"
	"path"

	"github.com/katalvlaran/decaychain/matrix"
	"github.com/katalvlaran/decaychain/numeric"
)

// Bundle part names. A bundle named N stores part P under key "N/P".
const (
	PartManifest = "manifest.json"
	PartC        = "c.json"
	PartCInverse = "cinverse.json"
	PartExact    = "exact.json"

	// BundleFormat is the manifest format version written by EncodeBundle.
	BundleFormat = 1
)

const stageBundle = "bundle"

type manifestJSON struct {
	Format         int                  `json:"format"`
	Name           string               `json:"name"`
	Version        string               `json:"version,omitempty"`
	YearDays       float64              `json:"year_days"`
	Nuclides       []string             `json:"nuclides"`
	DecayConstants []float64            `json:"decay_constants"`
	AtomicMasses   []float64            `json:"atomic_masses,omitempty"`
	Progeny        [][]branchJSON       `json:"progeny"`
	DecayEnergies  []map[string]float64 `json:"decay_energies,omitempty"` // eV per decay mode
	Exact          bool                 `json:"exact"`
}

type branchJSON struct {
	Index    int     `json:"index"`
	Fraction float64 `json:"fraction"`
	Mode     string  `json:"mode,omitempty"`
}

// sparseJSON is a column-indexed sparse matrix.
type sparseJSON[T any] struct {
	Rows   int   `json:"rows"`
	Cols   int   `json:"cols"`
	ColPtr []int `json:"col_ptr"`
	RowIdx []int `json:"row_idx"`
	Values []T   `json:"values"`
}

type exactJSON struct {
	YearDays  string             `json:"year_days"`
	Rates     []string           `json:"rates"`
	Fractions [][]string         `json:"fractions"` // aligned with the manifest progeny
	C         sparseJSON[string] `json:"c"`
	CInverse  sparseJSON[string] `json:"cinverse"`
}

// BundleKey returns the store key of a part of the bundle named name.
func BundleKey(name, part string) string { return path.Join(name, part) }

// EncodeBundle serializes d into bundle parts keyed by part name.
func EncodeBundle(d *Dataset) (map[string][]byte, error) {
	man := manifestJSON{
		Format:         BundleFormat,
		Name:           d.name,
		Version:        d.version,
		YearDays:       d.yearDays,
		Nuclides:       d.names,
		DecayConstants: d.lambda,
		AtomicMasses:   d.atomicMass,
		Progeny:        make([][]branchJSON, len(d.progeny)),
		Exact:          d.exact != nil,
	}
	for _, m := range d.energies {
		if len(m) > 0 {
			man.DecayEnergies = d.energies
			break
		}
	}
	for i, list := range d.progeny {
		man.Progeny[i] = make([]branchJSON, len(list))
		for k, b := range list {
			man.Progeny[i][k] = branchJSON{Index: b.Index, Fraction: b.Fraction, Mode: b.Mode}
		}
	}

	parts := make(map[string][]byte, 4)
	var err error
	if parts[PartManifest], err = json.MarshalIndent(man, "", "  "); err != nil {
		return nil, loadErrorf(stageBundle, err)
	}
	if parts[PartC], err = json.Marshal(floatSparse(d.c)); err != nil {
		return nil, loadErrorf(stageBundle, err)
	}
	if parts[PartCInverse], err = json.Marshal(floatSparse(d.cinv)); err != nil {
		return nil, loadErrorf(stageBundle, err)
	}
	if d.exact != nil {
		ex := exactJSON{
			YearDays:  d.exact.yearDays.RatString(),
			Rates:     ratStrings(d.exact.rates),
			Fractions: make([][]string, len(d.exact.fractions)),
			C:         ratSparse(d.exact.c),
			CInverse:  ratSparse(d.exact.cinv),
		}
		for i, list := range d.exact.fractions {
			ex.Fractions[i] = ratStrings(list)
		}
		if parts[PartExact], err = json.Marshal(ex); err != nil {
			return nil, loadErrorf(stageBundle, err)
		}
	}

	return parts, nil
}

// DecodeBundle rebuilds a Dataset from bundle parts. The exact part is
// decoded only when present in parts; a manifest announcing an exact part
// that is absent is accepted only when skipExact is set.
func DecodeBundle(parts map[string][]byte, skipExact bool) (*Dataset, error) {
	raw, ok := parts[PartManifest]
	if !ok {
		return nil, loadError(stageBundle, "missing %s", PartManifest)
	}
	var man manifestJSON
	if err := json.Unmarshal(raw, &man); err != nil {
		return nil, loadErrorf(stageBundle+": "+PartManifest, err)
	}
	if man.Format != BundleFormat {
		return nil, loadError(stageBundle, "unsupported format %d", man.Format)
	}

	c, err := decodeFloatSparse(parts, PartC)
	if err != nil {
		return nil, err
	}
	cinv, err := decodeFloatSparse(parts, PartCInverse)
	if err != nil {
		return nil, err
	}

	p := Parts{
		Name:           man.Name,
		Version:        man.Version,
		Nuclides:       man.Nuclides,
		DecayConstants: man.DecayConstants,
		AtomicMasses:   man.AtomicMasses,
		YearDays:       man.YearDays,
		C:              c,
		CInverse:       cinv,
		Progeny:        make([][]Branch, len(man.Progeny)),
		DecayEnergies:  man.DecayEnergies,
	}
	for i, list := range man.Progeny {
		for _, b := range list {
			p.Progeny[i] = append(p.Progeny[i], Branch{Index: b.Index, Fraction: b.Fraction, Mode: b.Mode})
		}
	}

	if man.Exact && !skipExact {
		raw, ok = parts[PartExact]
		if !ok {
			return nil, loadError(stageBundle, "manifest announces %s but it is missing", PartExact)
		}
		if p.Exact, err = decodeExact(raw); err != nil {
			return nil, err
		}
	}

	return New(p)
}

func decodeFloatSparse(parts map[string][]byte, part string) (*matrix.CSC, error) {
	raw, ok := parts[part]
	if !ok {
		return nil, loadError(stageBundle, "missing %s", part)
	}
	var s sparseJSON[float64]
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, loadErrorf(stageBundle+": "+part, err)
	}
	m, err := matrix.NewCSC(s.Rows, s.Cols, s.ColPtr, s.RowIdx, s.Values)
	if err != nil {
		return nil, loadErrorf(stageBundle+": "+part, err)
	}

	return m, nil
}

func decodeExact(raw []byte) (*ExactParts, error) {
	var ex exactJSON
	if err := json.Unmarshal(raw, &ex); err != nil {
		return nil, loadErrorf(stageBundle+": "+PartExact, err)
	}
	yearDays, err := numeric.ParseRat(ex.YearDays)
	if err != nil {
		return nil, loadErrorf(stageBundle+": "+PartExact, err)
	}
	rates, err := parseRats(ex.Rates)
	if err != nil {
		return nil, loadErrorf(stageBundle+": "+PartExact+" rates", err)
	}
	fractions := make([][]*big.Rat, len(ex.Fractions))
	for i, list := range ex.Fractions {
		if fractions[i], err = parseRats(list); err != nil {
			return nil, loadErrorf(fmt.Sprintf("%s: %s fractions of nuclide %d", stageBundle, PartExact, i), err)
		}
	}
	c, err := decodeRatSparse(ex.C)
	if err != nil {
		return nil, loadErrorf(stageBundle+": "+PartExact+" c", err)
	}
	cinv, err := decodeRatSparse(ex.CInverse)
	if err != nil {
		return nil, loadErrorf(stageBundle+": "+PartExact+" cinverse", err)
	}

	return &ExactParts{Rates: rates, Fractions: fractions, C: c, CInverse: cinv, YearDays: yearDays}, nil
}

func decodeRatSparse(s sparseJSON[string]) (*matrix.RatCSC, error) {
	vals, err := parseRats(s.Values)
	if err != nil {
		return nil, err
	}

	return matrix.NewRatCSC(s.Rows, s.Cols, s.ColPtr, s.RowIdx, vals)
}

func parseRats(in []string) ([]*big.Rat, error) {
	out := make([]*big.Rat, len(in))
	for i, s := range in {
		r, err := numeric.ParseRat(s)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out[i] = r
	}

	return out, nil
}

func ratStrings(in []*big.Rat) []string {
	out := make([]string, len(in))
	for i, r := range in {
		out[i] = r.RatString()
	}

	return out
}

func floatSparse(m *matrix.CSC) sparseJSON[float64] {
	ptr, idx, vals := m.Parts()

	return sparseJSON[float64]{Rows: m.Rows(), Cols: m.Cols(), ColPtr: ptr, RowIdx: idx, Values: vals}
}

func ratSparse(m *matrix.RatCSC) sparseJSON[string] {
	ptr, idx, vals := m.Parts()
	out := sparseJSON[string]{Rows: m.Rows(), Cols: m.Cols(), ColPtr: ptr, RowIdx: idx, Values: make([]string, len(vals))}
	for k, v := range vals {
		out.Values[k] = v.RatString()
	}

	return out
}
