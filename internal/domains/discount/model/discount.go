package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ValueType represents valid discount value types.
type ValueType string

const (
	ValueTypePercentage ValueType = "percentage"
	ValueTypeFixed      ValueType = "fixed"
)

func (vt ValueType) IsValid() bool {
	switch vt {
	case ValueTypePercentage, ValueTypeFixed:
		return true
	}
	return false
}

func (vt ValueType) String() string {
	return string(vt)
}

// Discount is a time-bounded, product-scoped price reduction rule with an
// optional global usage cap. Either validity bound may be nil (open-ended).
type Discount struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Code        string    `json:"code" db:"code"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`

	ValueType ValueType       `json:"value_type" db:"value_type"`
	Value     decimal.Decimal `json:"value" db:"value"`

	// Products this code can be applied to (booking product tags).
	ApplicableProducts pq.StringArray `json:"applicable_products" db:"applicable_products"`

	// Global cap across all bookings; nil means unlimited.
	LimitTotalUses *int `json:"limit_total_uses,omitempty" db:"limit_total_uses"`

	StartsAt  *time.Time `json:"starts_at,omitempty" db:"starts_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" db:"expires_at"`

	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AppliesTo reports whether the discount targets the given product tag.
func (d *Discount) AppliesTo(product string) bool {
	for _, p := range d.ApplicableProducts {
		if p == product {
			return true
		}
	}
	return false
}

// NotYetActive reports whether the validity window has not opened yet.
func (d *Discount) NotYetActive(now time.Time) bool {
	return d.StartsAt != nil && now.Before(*d.StartsAt)
}

// Expired reports whether the validity window has closed.
func (d *Discount) Expired(now time.Time) bool {
	return d.ExpiresAt != nil && now.After(*d.ExpiresAt)
}

// NormalizeCode uppercases and trims the code before persisting.
func (d *Discount) NormalizeCode() {
	d.Code = strings.ToUpper(strings.TrimSpace(d.Code))
}
