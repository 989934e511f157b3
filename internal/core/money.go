// Package core holds the ledger domain model: records, civil dates, money
// amounts and the fixed category taxonomy of the shop.
package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is an NT$ amount held in cents so aggregation stays in integer math.
type Money struct {
	Cents int64
}

var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount converts a decimal string to cents with half-up rounding on the
// third decimal place. Sign is preserved; positivity is the caller's concern
// (rows from the remote store may legitimately carry odd values).
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
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
	if intPart == "0" && fracPart == "" && len(parts) == 2 {
		return 0, ErrInvalidAmount
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
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if neg {
		cents = -cents
	}
	return cents, nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Dollars returns the NT$ value as a float64 for display purposes only.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Dollars() float64 {
	return float64(m.Cents) / 100.0
}

// decimalString renders the amount as a plain decimal number, the form the
// remote store and the rendering collaborator both expect.
func (m Money) decimalString() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10)
	if rem := cents % 100; rem != 0 {
		s += "." + strings.TrimRight(fmt.Sprintf("%02d", rem), "0")
	}
	if neg {
		return "-" + s
	}
	return s
}

func (m Money) String() string {
	return "NT$ " + m.decimalString()
}

// MarshalJSON encodes the amount as a bare JSON number in dollars.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.decimalString()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		return ErrInvalidAmount
	}
	cents, err := ParseAmount(s)
	if err != nil {
		return err
	}
	m.Cents = cents
	return nil
}
