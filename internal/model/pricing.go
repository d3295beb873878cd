package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a whole-number percentage in [0,100]
type Percent int

// Valid reports whether p lies within [0,100]
func (p Percent) Valid() bool {
	return p >= 0 && p <= 100
}

// NewPercent converts n into a Percent, rejecting values outside [0,100]
func NewPercent(n int) (Percent, error) {
	p := Percent(n)
	if !p.Valid() {
		return 0, fmt.Errorf("discount must be between 0 and 100, got %d", n)
	}
	return p, nil
}

var hundred = decimal.NewFromInt(100)

// DiscountedPrice returns price - price*discount/100
func DiscountedPrice(price decimal.Decimal, discount Percent) decimal.Decimal {
	if discount == 0 {
		return price
	}
	cut := price.Mul(decimal.NewFromInt(int64(discount))).Div(hundred)
	return price.Sub(cut)
}

// OrderTotal returns the discounted unit price multiplied by quantity,
// rounded half away from zero to the two places total_price stores
func OrderTotal(price decimal.Decimal, discount Percent, quantity int) decimal.Decimal {
	return DiscountedPrice(price, discount).Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
