package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateDiscountRequest is the admin payload for creating a discount code.
type CreateDiscountRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`

	ValueType string          `json:"value_type"`
	Value     decimal.Decimal `json:"value"`

	ApplicableProducts []string `json:"applicable_products"`
	LimitTotalUses     *int     `json:"limit_total_uses,omitempty"`

	StartsAt  *time.Time `json:"starts_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	IsActive bool `json:"is_active"`
}

func (r CreateDiscountRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(3, 50), is.Alphanumeric),
		validation.Field(&r.Name, validation.Required, validation.Length(3, 200)),
		validation.Field(&r.ValueType, validation.Required, validation.In(
			string(ValueTypePercentage), string(ValueTypeFixed),
		)),
		validation.Field(&r.Value, validation.By(positiveDecimal)),
		validation.Field(&r.ApplicableProducts, validation.Required, validation.Length(1, 0)),
	)
}

func positiveDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok || d.LessThanOrEqual(decimal.Zero) {
		return validation.NewError("validation_positive", "must be greater than zero")
	}
	return nil
}

// ValidateCodeRequest previews a discount against a plan and product without
// creating anything.
type ValidateCodeRequest struct {
	Code        string     `json:"code"`
	PlanID      *uuid.UUID `json:"plan_id,omitempty"`
	ProductType string     `json:"product_type"`
}

func (r ValidateCodeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.ProductType, validation.Required),
	)
}

// UpdateDiscountRequest toggles or edits an existing code.
type UpdateDiscountRequest struct {
	Name           *string    `json:"name,omitempty"`
	LimitTotalUses *int       `json:"limit_total_uses,omitempty"`
	StartsAt       *time.Time `json:"starts_at,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	IsActive       *bool      `json:"is_active,omitempty"`
}
