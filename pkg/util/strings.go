package util

import (
	"errors"
	"strconv"
	"strings"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

// ParseInt parses a base-10 integer, ignoring surrounding whitespace.
func ParseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// ParseFloat parses a 64-bit float, ignoring surrounding whitespace.
// "nan", "inf" and exponent forms are accepted; out-of-range values saturate to ±Inf.
func ParseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && errors.Is(err, strconv.ErrRange) {
		return v, nil
	}
	return v, err
}

// SplitPair splits s on the first two sep-separated fields.
// Fields after the second are ignored; ok is false when s has no separator.
func SplitPair(s, sep string) (left, right string, ok bool) {
	parts := strings.Split(s, sep)
	if len(parts) < 2 {
		return parts[0], "", false
	}
	return parts[0], parts[1], true
}
