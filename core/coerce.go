package core

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// numericPrefix matches the longest leading decimal literal, mirroring how browsers read
// a number out of free-form input ("7.5kg" reads as 7.5).
var numericPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// CoerceNumber converts raw user input to a weight or rating.
// Input without a numeric prefix, NaN and non-finite values all become 0;
// malformed input is never rejected.
func CoerceNumber(raw string) float64 {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	lit := numericPrefix.FindString(s)
	if lit == "" {
		return 0
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
