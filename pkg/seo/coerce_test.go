package seo

import (
	"math"
	"testing"
)

func TestToInt(t *testing.T) {
	tests := map[string]int{
		"42":     42,
		" 7 ":    7,
		"-3":     -3,
		"12.9":   12,
		"15abc":  15,
		"abc":    0,
		"":       0,
		"1e3":    1000,
		"+8":     8,
		"3.5e":   3,
		"n/a":    0,
		"-":      0,
		"0.0001": 0,
	}
	for raw, want := range tests {
		if got := toInt(raw); got != want {
			t.Errorf("toInt(%q) = %d, want %d", raw, got, want)
		}
	}
}

func TestToInt64(t *testing.T) {
	if got := toInt64("1700000000"); got != 1700000000 {
		t.Errorf("toInt64 timestamp = %d", got)
	}
	if got := toInt64("9007199254740993"); got != 9007199254740993 {
		t.Errorf("toInt64 lost precision: %d", got)
	}
	if got := toInt64("1e30"); got != math.MaxInt64 {
		t.Errorf("toInt64 overflow = %d, want MaxInt64", got)
	}
	if got := toInt64("-1e30"); got != math.MinInt64 {
		t.Errorf("toInt64 underflow = %d, want MinInt64", got)
	}
}

func TestToFloat(t *testing.T) {
	tests := map[string]float64{
		"1.25":  1.25,
		"0.5 ":  0.5,
		"3":     3,
		"2.5x":  2.5,
		"x2.5":  0,
		"":      0,
		"NaN":   0,
		"Inf":   0,
		"-0.75": -0.75,
		"7.":    7,
	}
	for raw, want := range tests {
		if got := toFloat(raw); got != want {
			t.Errorf("toFloat(%q) = %v, want %v", raw, got, want)
		}
	}
}
