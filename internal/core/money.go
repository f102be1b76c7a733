// Package core holds the ledger domain: transactions, canonical categories,
// money and calendar periods.
package core

import (
	"strconv"
	"strings"
)

// maxUnits keeps units*100 inside int64.
const maxUnits = (1<<63 - 1) / 100

// ParseDecimalToCents converts a user or spreadsheet amount to cents.
//
// Accepted forms: "12.34", "12,34", "$1,350.50", "1.350,50", "1,350,000".
// When both separators appear the rightmost one is the decimal mark and the
// other must group digits by three. A lone comma is a decimal mark unless
// exactly three digits follow it. A lone dot is always a decimal mark, and
// the third fractional digit rounds half-up. Signs, exponents and amounts that
// round to zero are rejected with ErrInvalidAmount.
//
//	ParseDecimalToCents("12.345") -> 1235
//	ParseDecimalToCents("12,34") -> 1234
//	ParseDecimalToCents("12,345") -> 1234500
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, ErrInvalidAmount
	}

	intPart, fracPart, ok := splitAmount(s)
	if !ok || !allDigits(intPart) || !allDigits(fracPart) {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || units > maxUnits {
		return 0, ErrInvalidAmount
	}

	cents := units * 100
	for i, weight := range []int64{10, 1} {
		if i < len(fracPart) {
			cents += int64(fracPart[i]-'0') * weight
		}
	}
	if len(fracPart) > 2 && fracPart[2] >= '5' {
		cents++
	}
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// splitAmount separates the integer digits from the fraction, dropping
// thousands separators.
func splitAmount(s string) (intPart, fracPart string, ok bool) {
	dot, comma := strings.LastIndexByte(s, '.'), strings.LastIndexByte(s, ',')
	switch {
	case dot >= 0 && comma >= 0:
		decimal, group := byte('.'), ","
		if comma > dot {
			decimal, group = ',', "."
		}
		i := strings.LastIndexByte(s, decimal)
		if strings.IndexByte(s, decimal) != i || !grouped(s[:i], group) {
			return "", "", false
		}
		return strings.ReplaceAll(s[:i], group, ""), s[i+1:], true
	case comma >= 0:
		if strings.Count(s, ",") > 1 {
			if !grouped(s, ",") {
				return "", "", false
			}
			return strings.ReplaceAll(s, ",", ""), "", true
		}
		if len(s)-comma-1 == 3 {
			return s[:comma] + s[comma+1:], "", true
		}
		return s[:comma], s[comma+1:], true
	case dot >= 0:
		if strings.Count(s, ".") > 1 {
			return "", "", false
		}
		return s[:dot], s[dot+1:], true
	default:
		return s, "", true
	}
}

// grouped reports whether s is digits grouped by three with sep, or has no
// separator at all.
func grouped(s, sep string) bool {
	groups := strings.Split(s, sep)
	if len(groups) == 1 {
		return true
	}
	if n := len(groups[0]); n == 0 || n > 3 {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Units returns the amount in whole currency units for display and chart
// geometry. Sums and comparisons stay in cents.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}
