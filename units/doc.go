// SPDX-License-Identifier: MIT

// Package units converts time, activity, mass and amount-of-substance
// quantities between units, in fixed (float64) and exact (*big.Rat)
// arithmetic, and converts activities, masses and moles to atom counts.
//
// Unit symbols are NFKC-normalised before lookup so the micro sign (U+00B5)
// and the Greek letter mu (U+03BC) are interchangeable; "u" is accepted as an
// ASCII spelling of the micro prefix.
//
// The length of a year is dataset specific (e.g. 365.2422 days), so year
// based time units are handled by a TimeConverter bound to a year length.
package units
