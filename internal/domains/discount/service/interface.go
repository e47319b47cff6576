package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bookings-backend/internal/domains/discount/model"
)

// Quote is the priced outcome of resolving a plan and an optional discount.
type Quote struct {
	BaseAmount     decimal.Decimal `json:"base_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`

	// Discount is nil when no code was applied.
	Discount *model.Discount `json:"discount,omitempty"`
}

type ServiceInterface interface {
	// Quote resolves the plan price and validates/applies the discount for
	// the given product tag. Read-only: one usage-count query, no writes.
	Quote(ctx context.Context, planID, discountID *uuid.UUID, product string) (*Quote, error)

	// QuoteByCode is the preview variant used by the validate endpoint.
	QuoteByCode(ctx context.Context, planID *uuid.UUID, code, product string) (*Quote, error)

	// RecordUsage writes the audit row for an applied discount. Called inside
	// the finalize transaction, only after a successful charge.
	RecordUsage(ctx context.Context, discountID, bookingID uuid.UUID, amount decimal.Decimal) error

	CreateDiscount(ctx context.Context, req *model.CreateDiscountRequest) (*model.Discount, error)
	UpdateDiscount(ctx context.Context, id uuid.UUID, req *model.UpdateDiscountRequest) (*model.Discount, error)
}
