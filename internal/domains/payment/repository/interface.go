package repository

import (
	"context"

	"github.com/google/uuid"

	"bookings-backend/internal/domains/payment/model"
)

type PaymentRepository interface {
	// Create writes the payment record. Runs inside the caller's transaction
	// when one is carried by ctx.
	Create(ctx context.Context, record *model.PaymentRecord) error

	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*model.PaymentRecord, error)

	// MarkPaid flips a failed record after a successful reconciliation charge.
	MarkPaid(ctx context.Context, id uuid.UUID, reference string) error
}
