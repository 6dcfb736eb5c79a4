package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fraction digits money amounts carry.
const MoneyScale = 2

// MaxIntegerDigits matches the NUMERIC(19,2) amount and balance columns.
const MaxIntegerDigits = 19 - MoneyScale

// maxAmountLength caps the raw input so the coefficient stays small.
const maxAmountLength = 32

// ErrInvalidAmount is returned by ParseAmount for anything that is not a positive
// decimal with at most MoneyScale fraction digits.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses a client-supplied money amount such as "39.99".
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", ErrInvalidAmount)
	}
	if len(raw) > maxAmountLength {
		return decimal.Zero, fmt.Errorf("%w: longer than %d characters", ErrInvalidAmount, maxAmountLength)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, raw)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: must be greater than zero", ErrInvalidAmount)
	}
	// Bound the exponent before Round, which rescales the coefficient by 10^|exp|.
	exp := int(amount.Exponent())
	if exp > MaxIntegerDigits || exp < -maxAmountLength {
		return decimal.Zero, fmt.Errorf("%w: out of range", ErrInvalidAmount)
	}
	if len(amount.Coefficient().String())+exp > MaxIntegerDigits {
		return decimal.Zero, fmt.Errorf("%w: more than %d integer digits", ErrInvalidAmount, MaxIntegerDigits)
	}
	if !amount.Equal(amount.Round(MoneyScale)) {
		return decimal.Zero, fmt.Errorf("%w: at most %d fraction digits allowed", ErrInvalidAmount, MoneyScale)
	}
	return amount, nil
}

// FormatAmount renders an amount with exactly MoneyScale fraction digits ("960.01", "50.00").
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyScale)
}
