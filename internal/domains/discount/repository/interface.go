package repository

import (
	"context"

	"github.com/google/uuid"

	"bookings-backend/internal/domains/discount/model"
)

type DiscountRepository interface {
	// FindByID and FindByCode only see active discounts; they back the
	// booking and quote paths.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Discount, error)
	FindByCode(ctx context.Context, code string) (*model.Discount, error)

	// FindByIDAny ignores the is_active filter. The admin update path needs
	// it so a deactivated code can still be edited and re-enabled.
	FindByIDAny(ctx context.Context, id uuid.UUID) (*model.Discount, error)

	// CountUsage returns the number of usage rows recorded for a discount,
	// backing the global limit_total_uses cap.
	CountUsage(ctx context.Context, discountID uuid.UUID) (int, error)

	// CreateUsage writes the audit row. Runs inside the caller's transaction
	// when one is carried by ctx.
	CreateUsage(ctx context.Context, usage *model.DiscountUsage) error

	Create(ctx context.Context, discount *model.Discount) error
	Update(ctx context.Context, discount *model.Discount) error
}
