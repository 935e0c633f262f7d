package command

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sharedcode/meshin"
)

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, meshin.Error{Code: meshin.NotAnInteger, Err: fmt.Errorf("value is not an integer or out of range"), UserData: s}
	}
	return n, nil
}

func parseFloat(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "+inf", "inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, meshin.Error{Code: meshin.NotAFloat, Err: fmt.Errorf("value is not a valid float"), UserData: s}
	}
	return f, nil
}

// parseScoreBound reads a range bound: a float, -inf, +inf, optionally prefixed by '(' to
// make it exclusive.
func parseScoreBound(s string) (float64, bool, error) {
	exclusive := strings.HasPrefix(s, "(")
	if exclusive {
		s = s[1:]
	}
	f, err := parseFloat(s)
	if err != nil {
		return 0, false, meshin.Error{Code: meshin.NotAFloat, Err: fmt.Errorf("min or max is not a float"), UserData: s}
	}
	return f, exclusive, nil
}

func formatScore(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
