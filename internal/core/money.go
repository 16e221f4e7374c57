// Package core holds the pure domain of the ledger: transactions, money and
// date normalization, filtering and aggregation. Nothing in this package does
// I/O; every function is deterministic over its inputs.
package core

import (
	"strconv"
	"strings"
)

// Money is an amount in minor currency units (cents). The sign encodes the
// direction: positive cents are income, negative cents are expense. Zero is
// not a valid transaction amount.
type Money struct {
	Cents int64
}

func (m Money) IsIncome() bool  { return m.Cents > 0 }
func (m Money) IsExpense() bool { return m.Cents < 0 }

func (m Money) Validate() error {
	if m.Cents == 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ParseSignedDecimalToCents converts a decimal string to signed cents.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators, an
// optional leading + or -, and performs half-up rounding on the third decimal
// place of the magnitude. Returns ErrInvalidAmount for inputs without digits,
// malformed numbers, zero amounts, and values that would overflow int64.
//
// Examples:
//
//	ParseSignedDecimalToCents("12.34")  -> 1234, nil
//	ParseSignedDecimalToCents("-12,34") -> -1234, nil
//	ParseSignedDecimalToCents("12.345") -> 1234, nil (rounds down)
//	ParseSignedDecimalToCents("12.346") -> 1235, nil (rounds up)
func ParseSignedDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	// Split into integer and fractional part
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	// ASCII digits only: the byte arithmetic below assumes '0'..'9'
	for _, r := range intPart {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}

	// Take first two fractional digits; then half-up rounding on third
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 {
				if fracPart[2] >= '5' {
					fracCents++
				}
			}
		}
	}

	cents := iv*100 + fracCents
	if cents < 0 {
		// iv*100 + fracCents wrapped past the int64 maximum
		return 0, ErrInvalidAmount
	}
	if cents == 0 {
		return 0, ErrInvalidAmount
	}
	if negative {
		cents = -cents
	}
	return cents, nil
}

// FormatCents formats signed cents as a currency string, e.g. "R$ 1.234,56"
// or "-R$ 0,50". The sign is preserved as a leading marker.
func FormatCents(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := cents / 100
	rem := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	s := "R$ " + b.String() + "," + pad2(rem)
	if neg {
		return "-" + s
	}
	return s
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
