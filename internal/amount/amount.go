// Package amount parses monetary cell text as it appears in bank
// statement tables, e.g. "1 234,56" or "1.234,56" or "26.198,31 *".
package amount

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parse reports whether raw is a parseable amount and its decimal value.
// Dots are treated as thousands separators and commas as the decimal
// separator; embedded spaces and asterisk markers are stripped. Empty or
// non-numeric input yields (false, 0) — never an error, because the
// boolean doubles as a row-classification signal during extraction.
//
// The replacement order matters: dots become spaces first, commas become
// the decimal dot, then all spaces (including the thousands separators
// just produced) are removed.
func Parse(raw string) (bool, decimal.Decimal) {
	s := strings.ReplaceAll(raw, ".", " ")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "*", "")
	if s == "" {
		return false, decimal.Zero
	}
	value, err := decimal.NewFromString(s)
	if err != nil {
		return false, decimal.Zero
	}
	return true, value
}
