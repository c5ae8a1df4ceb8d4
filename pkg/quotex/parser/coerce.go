package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// placeholders are cell values that mean "no value" rather than a malformed
// number; they coerce to the default without recording a warning.
var placeholders = map[string]bool{
	"n/a":  true,
	"na":   true,
	"null": true,
	"none": true,
	"-":    true,
}

// Coercer converts raw cell text into typed values, defaulting on failure so
// a malformed cell never aborts an extraction. Failures that look like real
// data (non-empty, non-placeholder text that does not parse) are recorded as
// warnings.
type Coercer struct {
	warnings []string
}

// Number parses raw as a decimal after stripping currency symbols, thousands
// separators and whitespace. A trailing % divides the value by 100. On
// failure it records a warning and returns def.
func (c *Coercer) Number(raw string, def decimal.Decimal) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" || placeholders[strings.ToLower(s)] {
		return def
	}
	s = strings.NewReplacer("€", "", "$", "", ",", "").Replace(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	percent := false
	if strings.HasSuffix(s, "%") {
		percent = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		c.warnf("cannot parse %q as number, using %s", raw, def)
		return def
	}
	if percent {
		return d.Div(decimal.NewFromInt(100))
	}
	return d
}

// Int parses raw as an integer, accepting decimal notation for whole
// numbers. On failure it returns def without a warning, matching the
// tolerant handling of count-like cells.
func (c *Coercer) Int(raw string, def int) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return def
}

// Text returns the trimmed cell value, or def when the cell is empty.
func (c *Coercer) Text(raw, def string) string {
	if s := strings.TrimSpace(raw); s != "" {
		return s
	}
	return def
}

// Warnings returns the accumulated coercion warnings in occurrence order.
func (c *Coercer) Warnings() []string {
	return c.warnings
}

func (c *Coercer) warnf(format string, args ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

// currencyAliases maps common spellings and symbols to ISO currency codes.
var currencyAliases = map[string]string{
	"EURO":    "EUR",
	"EUROS":   "EUR",
	"€":       "EUR",
	"DOLLAR":  "USD",
	"DOLLARS": "USD",
	"$":       "USD",
	"POUND":   "GBP",
	"POUNDS":  "GBP",
	"£":       "GBP",
	"YEN":     "JPY",
	"¥":       "JPY",
}

// NormalizeCurrency maps raw currency text to an ISO code, defaulting to EUR
// for empty input.
func NormalizeCurrency(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return "EUR"
	}
	if code, ok := currencyAliases[s]; ok {
		return code
	}
	return s
}

// afterColon extracts the text after the first colon in a labelled cell like
// "Project: X-123", or the whole trimmed value when no colon is present.
func afterColon(raw string) string {
	if i := strings.Index(raw, ":"); i >= 0 {
		return strings.TrimSpace(raw[i+1:])
	}
	return strings.TrimSpace(raw)
}
