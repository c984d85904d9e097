package services

import (
	"math"
	"strconv"
	"strings"
)

// ToFiniteNumber normalizes a value for financial arithmetic: NaN and ±Inf
// become 0, anything else passes through. Every numeric read in the pricing
// and KPI layer goes through this helper so the zero-default policy stays in
// one place.
func ToFiniteNumber(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// ParseNumeric parses a form field into a float64. Comma decimal separators
// are accepted, surrounding whitespace is ignored, and anything unparseable
// (or non-finite) yields 0 rather than an error.
func ParseNumeric(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return ToFiniteNumber(v)
}
