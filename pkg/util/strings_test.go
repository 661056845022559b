package util

import (
	"math"
	"testing"
)

func TestParseIntTrimsWhitespace(t *testing.T) {
	got, err := ParseInt(" 4 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
	if _, err := ParseInt("1.0"); err == nil {
		t.Fatalf("expected error for 1.0")
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("", 7); got != 7 {
		t.Fatalf("expected default, got %d", got)
	}
	if got := ParseIntDefault("x", 7); got != 7 {
		t.Fatalf("expected default, got %d", got)
	}
	if got := ParseIntDefault("3", 7); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestParseFloat(t *testing.T) {
	got, err := ParseFloat("1e-1")
	if err != nil || got != 0.1 {
		t.Fatalf("unexpected %v %v", got, err)
	}
	nan, err := ParseFloat("nan")
	if err != nil || !math.IsNaN(nan) {
		t.Fatalf("expected NaN, got %v %v", nan, err)
	}
	if _, err := ParseFloat("x"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSplitPair(t *testing.T) {
	l, r, ok := SplitPair("3,0.5,extra", ",")
	if !ok || l != "3" || r != "0.5" {
		t.Fatalf("unexpected split %q %q %v", l, r, ok)
	}
	l, _, ok = SplitPair("3", ",")
	if ok || l != "3" {
		t.Fatalf("expected no pair, got %q %v", l, ok)
	}
}
