package service

import (
	"github.com/shopspring/decimal"

	"bookings-backend/internal/domains/discount/model"
)

// Calculator holds the discount arithmetic.
//
// percentage: discount = base * value / 100
// fixed:      discount = value
// final:      max(base - discount, 0); a discount never drives the price
// below zero, so a fixed 30 off a base of 20 yields a final of 0.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// DiscountAmount returns the raw reduction for the given base amount,
// rounded to cents.
func (c *Calculator) DiscountAmount(d *model.Discount, base decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal

	switch d.ValueType {
	case model.ValueTypePercentage:
		amount = base.Mul(d.Value).Div(decimal.NewFromInt(100))
	case model.ValueTypeFixed:
		amount = d.Value
	default:
		return decimal.Zero
	}

	return amount.Round(2)
}

// FinalAmount clamps base - discount at zero.
func (c *Calculator) FinalAmount(base, discount decimal.Decimal) decimal.Decimal {
	final := base.Sub(discount)
	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}
