package provider

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const defaultCurrencyExponent int32 = 2

// CurrencyExponent is the number of minor-unit digits of an ISO 4217 code.
// Unrecognized codes use two digits.
func CurrencyExponent(code string) int32 {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return defaultCurrencyExponent
	}
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale)
}

// ToMinorUnit converts an amount into integer minor units of the currency,
// rounding half away from zero at the currency precision.
func ToMinorUnit(amount decimal.Decimal, code string) (int64, error) {
	exp := CurrencyExponent(code)
	minor := amount.Round(exp).Shift(exp)
	if !minor.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %s %s", ErrAmountOutOfRange, amount.String(), code)
	}
	return minor.IntPart(), nil
}

func FromMinorUnit(minor int64, code string) decimal.Decimal {
	return decimal.New(minor, -CurrencyExponent(code))
}
