// Package money handles monetary amounts as integer cents to keep sums exact.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Cents is a non-negative monetary amount in hundredths of the currency unit.
type Cents int64

// Parse converts a decimal string to cents with half-up rounding on the third
// decimal place. Both dot (12.34) and comma (12,34) separators are accepted.
// Negative amounts are rejected; zero is allowed.
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, " ", "")
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
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
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return Cents(iv*100 + fracCents), nil
}

// ParseFloat converts a float amount (as found in JSON payloads) to cents with
// half-up rounding. Negative amounts are rejected.
func ParseFloat(v float64) (Cents, error) {
	if v < 0 {
		return 0, ErrInvalidAmount
	}
	return Cents(v*100 + 0.5), nil
}

// String formats the amount with exactly two fraction digits, e.g. 4520 -> "45.20".
func (c Cents) String() string {
	return fmt.Sprintf("%d.%02d", c/100, c%100)
}

// Float returns the amount in currency units for JSON payloads. Calculations
// should stay on cents.
func (c Cents) Float() float64 {
	return float64(c) / 100.0
}
