package rules

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// numberPattern splits text into prefix, number and suffix.
var numberPattern = regexp.MustCompile(`^(.*?)([+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?)(.*)$`)

// ParseNumber extracts the numeric value of a raw cell or label text.
//
// Thousands separators are ignored. A prefix made only of symbols (currency
// signs) and a suffix without digits (a unit such as "m²") are tolerated.
// Anything else, including letters before the number, is not numeric.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return 0, false
	}

	m := numberPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	prefix, num, suffix := strings.TrimSpace(m[1]), m[2], strings.TrimSpace(m[3])

	if !isSymbolRun(prefix) || !isUnitSuffix(suffix) {
		return 0, false
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	// "-$5": the sign sits before the currency symbol.
	if strings.Contains(prefix, "-") && !strings.HasPrefix(num, "-") {
		v = -v
	}
	return v, true
}

// isSymbolRun reports whether s holds only currency-like symbols.
func isSymbolRun(s string) bool {
	for _, r := range s {
		if r == '-' || r == '+' {
			continue
		}
		if !unicode.IsSymbol(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// isUnitSuffix reports whether s can be a unit after a number.
func isUnitSuffix(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return false
		}
	}
	return true
}
