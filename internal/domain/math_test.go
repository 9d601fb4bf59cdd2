package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSafeParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid integer", "100", "100"},
		{"valid decimal", "3.14", "3.14"},
		{"zero", "0", "0"},
		{"negative", "-5.5", "-5.5"},
		{"empty string", "", "0"},
		{"invalid string", "abc", "0"},
		{"whitespace", "  ", "0"},
		{"large number", "999999999999.1234567", "999999999999.1234567"},
		{"small fraction", "0.0000001", "0.0000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeParse(tt.input)
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("SafeParse(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestSafeMultiply(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"normal", "10", "5", "50"},
		{"decimal", "3.5", "2", "7"},
		{"orderbook offer", "3.84724", "0.2", "0.769448"},
		{"zero a", "0", "100", "0"},
		{"invalid a", "abc", "5", "0"},
		{"invalid b", "5", "abc", "0"},
		{"both invalid", "abc", "def", "0"},
		{"empty a", "", "5", "0"},
		{"high precision", "1.2345678", "1", "1.2345678"},
		{"negative", "-3", "4", "-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeMultiply(tt.a, tt.b)
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("SafeMultiply(%q, %q) = %s, want %s", tt.a, tt.b, got, want)
			}
		})
	}
}

func TestSafeSum(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"integers", "10", "5", "15"},
		{"decimals", "0.5", "0.25", "0.75"},
		{"zero", "0", "0", "0"},
		{"negative", "-3", "4", "1"},
		{"high precision", "1.2345678", "0.0000001", "1.2345679"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := decimal.NewFromString(tt.a)
			b, _ := decimal.NewFromString(tt.b)
			got := SafeSum(a, b)
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("SafeSum(%s, %s) = %s, want %s", tt.a, tt.b, got, want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"integer", "50", "50"},
		{"rounds to seven places", "1.23456789", "1.2345679"},
		{"trailing zeros stripped", "1.1000000", "1.1"},
		{"exact seven places", "0.0000001", "0.0000001"},
		{"zero", "0", "0"},
		{"negative", "-7.25", "-7.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := decimal.NewFromString(tt.input)
			if got := FormatAmount(d); got != tt.want {
				t.Errorf("FormatAmount(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
