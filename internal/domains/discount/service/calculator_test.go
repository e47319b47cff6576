package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"bookings-backend/internal/domains/discount/model"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDiscountAmount(t *testing.T) {
	calc := NewCalculator()

	t.Run("percentage rounds to two decimal places", func(t *testing.T) {
		discount := &model.Discount{ValueType: model.ValueTypePercentage, Value: d("12.5")}

		amount := calc.DiscountAmount(discount, d("99.99"))

		// 99.99 * 12.5% = 12.49875 -> 12.50
		assert.True(t, amount.Equal(d("12.50")), "got %s", amount)
	})

	t.Run("percentage of zero base is zero", func(t *testing.T) {
		discount := &model.Discount{ValueType: model.ValueTypePercentage, Value: d("20")}

		amount := calc.DiscountAmount(discount, decimal.Zero)

		assert.True(t, amount.IsZero())
	})

	t.Run("fixed is the configured value even above the base", func(t *testing.T) {
		discount := &model.Discount{ValueType: model.ValueTypeFixed, Value: d("150")}

		amount := calc.DiscountAmount(discount, d("100"))

		assert.True(t, amount.Equal(d("150")), "got %s", amount)
	})
}

func TestFinalAmount(t *testing.T) {
	calc := NewCalculator()

	t.Run("subtracts the discount", func(t *testing.T) {
		final := calc.FinalAmount(d("200"), d("35.50"))

		assert.True(t, final.Equal(d("164.50")), "got %s", final)
	})

	t.Run("clamps at zero when the discount exceeds the base", func(t *testing.T) {
		final := calc.FinalAmount(d("100"), d("150"))

		assert.True(t, final.IsZero(), "got %s", final)
	})
}
