package repository

import (
	"context"

	"github.com/google/uuid"

	"bookings-backend/internal/domains/plan/model"
)

type PlanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.PaymentPlan, error)
	ListActive(ctx context.Context, productType string) ([]*model.PaymentPlan, error)
}
