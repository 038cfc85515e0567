// Package numparse interprets user- and CSV-supplied text as IEEE-754 doubles.
//
// Reference data arrives from spreadsheets exported under several locales, so
// the parser tolerates decimal commas and thousands separators written as
// spaces (including non-breaking spaces). It is deliberately not a full
// locale-aware parser: once whitespace is stripped, every comma is treated as
// a decimal point.
package numparse

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// stripSpace removes every Unicode whitespace rune, which covers NBSP and
// narrow NBSP thousands separators such as "1 234,56".
var stripSpace = runes.Remove(runes.In(unicode.White_Space))

// Float parses v as a real number, returning fallback when v is empty or
// unparseable. It never returns an error and never returns a non-finite
// value unless the fallback itself is non-finite.
func Float(v string, fallback float64) float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}

	stripped, _, err := transform.String(stripSpace, v)
	if err != nil {
		return fallback
	}
	stripped = strings.ReplaceAll(stripped, ",", ".")

	f, err := strconv.ParseFloat(stripped, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}

// Finite returns v when it is a finite number, otherwise fallback. It is the
// already-numeric counterpart of Float for callers that hold a float64.
func Finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
