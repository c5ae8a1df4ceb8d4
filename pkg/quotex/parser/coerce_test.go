package parser

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCoercerNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"123", "123"},
		{"123.45", "123.45"},
		{"-100", "-100"},
		{"1,234.56", "1234.56"},
		{"€ 1,250.00", "1250"},
		{"$99.90", "99.9"},
		{"5%", "0.05"},
		{"  42  ", "42"},
		{"", "0"},
		{"n/a", "0"},
		{"N/A", "0"},
		{"-", "0"},
		{"none", "0"},
	}

	for _, tt := range tests {
		co := &Coercer{}
		got := co.Number(tt.input, decimal.Zero)
		want, _ := decimal.NewFromString(tt.expected)
		if !got.Equal(want) {
			t.Errorf("Number(%q): expected %s, got %s", tt.input, want, got)
		}
		if len(co.Warnings()) != 0 {
			t.Errorf("Number(%q): unexpected warnings %v", tt.input, co.Warnings())
		}
	}
}

func TestCoercerNumberMalformed(t *testing.T) {
	co := &Coercer{}
	def := decimal.NewFromInt(7)
	got := co.Number("not a number", def)
	if !got.Equal(def) {
		t.Errorf("Expected default %s, got %s", def, got)
	}
	if len(co.Warnings()) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(co.Warnings()))
	}
}

func TestCoercerInt(t *testing.T) {
	tests := []struct {
		input    string
		def      int
		expected int
	}{
		{"3", 1, 3},
		{"2.0", 1, 2},
		{"", 1, 1},
		{"abc", 1, 1},
		{"-4", 0, -4},
	}

	for _, tt := range tests {
		co := &Coercer{}
		if got := co.Int(tt.input, tt.def); got != tt.expected {
			t.Errorf("Int(%q, %d): expected %d, got %d", tt.input, tt.def, tt.expected, got)
		}
	}
}

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "EUR"},
		{"euro", "EUR"},
		{"EURO", "EUR"},
		{"€", "EUR"},
		{"Dollars", "USD"},
		{"$", "USD"},
		{"GBP", "GBP"},
		{"chf", "CHF"},
	}

	for _, tt := range tests {
		if got := NormalizeCurrency(tt.input); got != tt.expected {
			t.Errorf("NormalizeCurrency(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestAfterColon(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Customer: ACME Corp", "ACME Corp"},
		{"Project:X-123", "X-123"},
		{"no colon here", "no colon here"},
		{"  padded  ", "padded"},
		{"trailing:", ""},
	}

	for _, tt := range tests {
		if got := afterColon(tt.input); got != tt.expected {
			t.Errorf("afterColon(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}
