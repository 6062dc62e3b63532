package analyzing

import (
	"github.com/shopspring/decimal"
)

// decimalRatio divide um valor monetário por uma contagem; nil quando a contagem é zero
func decimalRatio(num decimal.Decimal, den int) *float64 {
	if den == 0 {
		return nil
	}

	v := num.Div(decimal.NewFromInt(int64(den))).InexactFloat64()
	return &v
}

// moneyRatio divide dois valores monetários; nil quando o denominador é zero
func moneyRatio(num, den decimal.Decimal) *float64 {
	if den.IsZero() {
		return nil
	}

	v := num.Div(den).InexactFloat64()
	return &v
}
