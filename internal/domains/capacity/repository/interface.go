package repository

import (
	"context"

	"github.com/google/uuid"

	"bookings-backend/internal/domains/capacity/model"
)

type CapacityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.ClassSchedule, error)

	// RemainingSeats reads the seat counter. Inside a transaction the row is
	// locked (FOR UPDATE) so concurrent bookings against the same class
	// serialize on the adjustment.
	RemainingSeats(ctx context.Context, id uuid.UUID) (int, error)

	// Decrement reduces the counter by seats, flooring at zero.
	Decrement(ctx context.Context, id uuid.UUID, seats int) error

	// Restore gives seats back on cancellation.
	Restore(ctx context.Context, id uuid.UUID, seats int) error
}
