// SPDX-License-Identifier: MIT

package nuclide

// symbols maps atomic number Z (index) to element symbol. Index 0 is unused.
var symbols = [...]string{
	"",
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm",
	"Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

// MaxZ is the largest supported atomic number.
const MaxZ = len(symbols) - 1

var atomicNumbers = func() map[string]int {
	m := make(map[string]int, len(symbols))
	var z int
	for z = 1; z < len(symbols); z++ {
		m[symbols[z]] = z
	}

	return m
}()

// Symbol returns the element symbol for z, or "" when z is out of range.
func Symbol(z int) string {
	if z < 1 || z > MaxZ {
		return ""
	}

	return symbols[z]
}

// AtomicNumber returns Z for an element symbol (case-sensitive, e.g. "Tc").
func AtomicNumber(symbol string) (int, bool) {
	z, ok := atomicNumbers[symbol]

	return z, ok
}
