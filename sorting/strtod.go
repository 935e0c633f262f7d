package sorting

import (
	"math"
	"strconv"
	"strings"
)

// ParseScore converts the longest numeric prefix of s to a float64 the way C's strtod does:
// leading white space, an optional sign, then digits with an optional fraction and exponent,
// or "inf", "infinity", "nan". Strings without a numeric prefix are 0.
func ParseScore(s string) float64 {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	start := i
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	rest := strings.ToLower(s[i:])
	switch {
	case strings.HasPrefix(rest, "inf"):
		if neg {
			return math.Inf(-1)
		}
		return math.Inf(1)
	case strings.HasPrefix(rest, "nan"):
		return math.NaN()
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	// Out of range values come back as ±Inf or 0 alongside an error, matching strtod.
	f, _ := strconv.ParseFloat(s[start:i], 64)
	return f
}

func isSpace(c byte) bool {
	return c == ' ' || (c >= '\t' && c <= '\r')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
