package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bookings-backend/internal/domains/booking/model"
)

// TaskEnqueuer is the slice of the queue client the booking flow needs.
type TaskEnqueuer interface {
	EnqueuePaymentReconcile(bookingID string, delay time.Duration) error
}

type ServiceInterface interface {
	// Create runs the full priced flow for the product described by cfg:
	// duplicate guard, quote, capacity check, persist pending, charge,
	// finalize. A failed charge is not an error; the response carries the
	// payment status.
	Create(ctx context.Context, cfg model.ProductConfig, req *model.CreateBookingRequest) (*model.CreateBookingResponse, error)

	// CreateWaitingList stores a holiday-camp booking against a full class.
	// No payment is collected.
	CreateWaitingList(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingResponse, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.BookingResponse, error)

	// Cancel moves the booking to cancelled and, for an active holiday camp,
	// returns its seats.
	Cancel(ctx context.Context, id uuid.UUID) error

	// Renew reactivates a cancelled booking, re-taking seats for products
	// with finite capacity.
	Renew(ctx context.Context, id uuid.UUID) error

	// Reconcile retries the charge for a pending booking whose payment
	// failed, using the gateway references stored on the payment record.
	Reconcile(ctx context.Context, bookingID uuid.UUID) error

	// ScanStalePending enqueues reconciliation for pending bookings whose
	// failed charge is older than the configured threshold.
	ScanStalePending(ctx context.Context) error
}
