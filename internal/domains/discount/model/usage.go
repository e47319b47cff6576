package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountUsage is the audit row written when a discount was applied to a
// booking and the charge succeeded. It backs the global usage cap.
type DiscountUsage struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	DiscountID uuid.UUID       `json:"discount_id" db:"discount_id"`
	BookingID  uuid.UUID       `json:"booking_id" db:"booking_id"`
	Amount     decimal.Decimal `json:"amount" db:"amount"`
	UsedAt     time.Time       `json:"used_at" db:"used_at"`
}
