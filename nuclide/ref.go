// SPDX-License-Identifier: MIT

package nuclide

import (
	"fmt"
	"strconv"
)

type refKind uint8

const (
	refName refKind = iota
	refID
)

// Ref is a reference to a nuclide given either as a textual identifier or
// as a canonical numeric id. Refs are comparable and may be used as map keys.
// They are resolved to dataset indices exactly once, by Resolve.
type Ref struct {
	kind refKind
	name string
	id   int
}

// Name references a nuclide by any spelling Parse accepts.
func Name(s string) Ref { return Ref{kind: refName, name: s} }

// ID references a nuclide by its canonical numeric id.
func ID(id int) Ref { return Ref{kind: refID, id: id} }

// Of references n.
func Of(n Nuclide) Ref { return ID(n.ID()) }

// String returns the raw identifier the Ref was built from.
func (r Ref) String() string {
	if r.kind == refID {
		return strconv.Itoa(r.id)
	}

	return r.name
}

// Nuclide decodes the reference.
func (r Ref) Nuclide() (Nuclide, error) {
	if r.kind == refID {
		return FromID(r.id)
	}

	return Parse(r.name)
}

// Canonical returns the canonical name, e.g. "Tc-99m".
func (r Ref) Canonical() (string, error) {
	n, err := r.Nuclide()
	if err != nil {
		return "", err
	}

	return n.Name(), nil
}

// Index is the lookup surface a dataset exposes to the resolver.
type Index interface {
	// Name identifies the dataset.
	Name() string
	// IndexOf returns the position of a canonical nuclide name.
	IndexOf(name string) (int, bool)
}

// Resolve turns r into an index of idx.
// Malformed identifiers fail with ErrInvalidNuclide; well-formed identifiers
// missing from idx fail with ErrUnknownNuclide.
func Resolve(r Ref, idx Index) (int, error) {
	name, err := r.Canonical()
	if err != nil {
		return -1, err
	}
	i, ok := idx.IndexOf(name)
	if !ok {
		return -1, fmt.Errorf("%w: %s not in dataset %s", ErrUnknownNuclide, name, idx.Name())
	}

	return i, nil
}
