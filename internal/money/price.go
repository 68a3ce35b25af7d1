package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidPrice = errors.New("invalid price")

var cent = decimal.New(1, -2)

// ParsePrice parses a user supplied price, ignoring thousands separators and spaces, and rounds it with RoundPrice
func ParsePrice(raw string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(",", "", " ", "", "\t", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero, ErrInvalidPrice
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, ErrInvalidPrice
	}
	return RoundPrice(d)
}

// RoundPrice rounds to two decimals: the value is first normalised to three decimals, then
// a third decimal of 4 or more bumps the second decimal up, anything lower is truncated.
// 20001.203445 -> 20001.20, 20001.294 -> 20001.30
func RoundPrice(d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}

	milli := d.Round(3)
	cents := milli.Truncate(2)
	third := milli.Sub(cents).Shift(3).IntPart()
	if third >= 4 {
		cents = cents.Add(cent)
	}
	return cents, nil
}
