package util

import (
	"math"
	"testing"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3, "3.0"},
		{0, "0.0"},
		{0.5, "0.5"},
		{-2.25, "-2.25"},
		{1048576, "1048576.0"},
		{123.456, "123.456"},
		{1e16, "1e+16"},
		{0.00001, "1e-05"},
		{math.NaN(), "nan"},
		{math.Inf(-1), "-inf"},
	}

	for _, test := range tests {
		if got := FormatFloat(test.in); got != test.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"rodada_1", "Rodada 1"},
		{"cpu_3", "CPU 3"},
		{"udp_100M", "Udp 100M"},
		{"tcp-baseline", "Tcp-Baseline"},
	}

	for _, test := range tests {
		if got := FormatLabel(test.in); got != test.want {
			t.Errorf("FormatLabel(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	f, err := ParseDecimal(" 97,53 ")
	if err != nil || f != 97.53 {
		t.Errorf("ParseDecimal = %v, %v", f, err)
	}
	if _, err := ParseDecimal("abc"); err == nil {
		t.Error("expected error for non-numeric input")
	}
}
