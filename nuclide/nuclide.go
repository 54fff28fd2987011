// SPDX-License-Identifier: MIT

package nuclide

import (
	"fmt"
	"strconv"
	"strings"
)

// State is the nuclear energy state: ground or a metastable isomer.
type State uint8

const (
	// Ground is the ground state.
	Ground State = iota
	// Metastable1 is the first metastable state ("m").
	Metastable1
	// Metastable2 is the second metastable state ("n").
	Metastable2
	// Metastable3 is the third metastable state ("o").
	Metastable3
)

// stateLetters maps State to its suffix letter.
const stateLetters = "\x00mno"

// Suffix returns "", "m", "n" or "o".
func (s State) Suffix() string {
	if s == Ground || int(s) >= len(stateLetters) {
		return ""
	}

	return stateLetters[s : s+1]
}

func stateFromLetter(b byte) (State, bool) {
	switch b {
	case 'm':
		return Metastable1, true
	case 'n':
		return Metastable2, true
	case 'o':
		return Metastable3, true
	}

	return Ground, false
}

const (
	// MaxMassNumber bounds accepted mass numbers.
	MaxMassNumber = 999

	idZ = 10_000_000
	idA = 10_000
)

// Nuclide identifies a nuclide by atomic number, mass number and energy state.
type Nuclide struct {
	Z     int
	A     int
	State State
}

// New validates and returns the nuclide (z, a, state).
func New(z, a int, state State) (Nuclide, error) {
	if z < 1 || z > MaxZ {
		return Nuclide{}, fmt.Errorf("%w: atomic number %d", ErrInvalidNuclide, z)
	}
	if a < z || a > MaxMassNumber {
		return Nuclide{}, fmt.Errorf("%w: mass number %d for Z=%d", ErrInvalidNuclide, a, z)
	}
	if state > Metastable3 {
		return Nuclide{}, fmt.Errorf("%w: state %d", ErrInvalidNuclide, state)
	}

	return Nuclide{Z: z, A: a, State: state}, nil
}

// Name returns the canonical "Symbol-A[state]" form, e.g. "Tc-99m".
func (n Nuclide) Name() string {
	return Symbol(n.Z) + "-" + strconv.Itoa(n.A) + n.State.Suffix()
}

// String implements fmt.Stringer.
func (n Nuclide) String() string { return n.Name() }

// ID returns the canonical numeric id Z·10000000 + A·10000 + state,
// e.g. Tc-99m → 430990001.
func (n Nuclide) ID() int { return n.Z*idZ + n.A*idA + int(n.State) }

// FromID decodes a canonical numeric id.
func FromID(id int) (Nuclide, error) {
	if id <= 0 {
		return Nuclide{}, fmt.Errorf("%w: id %d", ErrInvalidNuclide, id)
	}
	z := id / idZ
	a := (id / idA) % (idZ / idA)
	s := id % idA

	return New(z, a, State(s))
}

// Parse accepts the common spellings of a nuclide and returns it in
// canonical form: "Tc-99m", "Tc99m", "99mTc", "99m-Tc", "tc99m", "3H", "H3".
func Parse(s string) (Nuclide, error) {
	t := strings.ReplaceAll(strings.TrimSpace(s), "-", "")
	if t == "" {
		return Nuclide{}, fmt.Errorf("%w: %q", ErrInvalidNuclide, s)
	}

	var (
		n   Nuclide
		err error
	)
	if isDigit(t[0]) {
		n, err = parseMassFirst(t)
	} else {
		n, err = parseSymbolFirst(t)
	}
	if err != nil {
		return Nuclide{}, fmt.Errorf("%w: %q", ErrInvalidNuclide, s)
	}

	return n, nil
}

// Canonical returns the canonical name of s, or an ErrInvalidNuclide error.
func Canonical(s string) (string, error) {
	n, err := Parse(s)
	if err != nil {
		return "", err
	}

	return n.Name(), nil
}

// parseSymbolFirst handles "Tc99m" style identifiers.
func parseSymbolFirst(t string) (Nuclide, error) {
	i := 0
	for i < len(t) && isLetter(t[i]) {
		i++
	}
	sym := t[:i]
	j := i
	for j < len(t) && isDigit(t[j]) {
		j++
	}
	if j == i {
		return Nuclide{}, ErrInvalidNuclide
	}
	a, _ := strconv.Atoi(t[i:j])

	state := Ground
	switch rest := t[j:]; len(rest) {
	case 0:
	case 1:
		st, ok := stateFromLetter(lower(rest[0]))
		if !ok {
			return Nuclide{}, ErrInvalidNuclide
		}
		state = st
	default:
		return Nuclide{}, ErrInvalidNuclide
	}

	z, ok := AtomicNumber(canonicalSymbol(sym))
	if !ok {
		return Nuclide{}, ErrInvalidNuclide
	}

	return New(z, a, state)
}

// parseMassFirst handles "99mTc" style identifiers.
func parseMassFirst(t string) (Nuclide, error) {
	i := 0
	for i < len(t) && isDigit(t[i]) {
		i++
	}
	a, _ := strconv.Atoi(t[:i])
	rest := t[i:]
	if rest == "" {
		return Nuclide{}, ErrInvalidNuclide
	}

	// "mTc": a state letter followed by an upper-case symbol.
	if len(rest) >= 2 && !isUpper(rest[0]) && isUpper(rest[1]) {
		if st, ok := stateFromLetter(rest[0]); ok {
			if z, ok := AtomicNumber(canonicalSymbol(rest[1:])); ok {
				return New(z, a, st)
			}
		}
	}
	if z, ok := AtomicNumber(canonicalSymbol(rest)); ok {
		return New(z, a, Ground)
	}
	// all lower-case input such as "99mtc"
	if st, ok := stateFromLetter(lower(rest[0])); ok && len(rest) > 1 {
		if z, ok := AtomicNumber(canonicalSymbol(rest[1:])); ok {
			return New(z, a, st)
		}
	}

	return Nuclide{}, ErrInvalidNuclide
}

func canonicalSymbol(s string) string {
	if s == "" {
		return ""
	}

	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func isDigit(b byte) bool  { return b >= '0' && b <= '9' }
func isUpper(b byte) bool  { return b >= 'A' && b <= 'Z' }
func isLetter(b byte) bool { return isUpper(b) || (b >= 'a' && b <= 'z') }
func lower(b byte) byte {
	if isUpper(b) {
		return b + ('a' - 'A')
	}

	return b
}
