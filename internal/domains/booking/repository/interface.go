package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bookings-backend/internal/domains/booking/model"
)

// Aggregate is everything persisted together when a booking is created.
// Parents and Emergency are attached to the first student by the repository.
type Aggregate struct {
	Booking   *model.Booking
	Parents   []model.Parent
	Emergency *model.EmergencyContact
}

type BookingRepository interface {
	// ExistsByLead backs the duplicate guard: true when a booking already
	// references the lead.
	ExistsByLead(ctx context.Context, leadID uuid.UUID) (bool, error)

	// CreateAggregate inserts the booking with its students, parents and
	// emergency contact. The database unique constraint on lead_id closes
	// the guard's check-then-insert race: a concurrent duplicate surfaces
	// as ErrDuplicateBooking.
	CreateAggregate(ctx context.Context, agg *Aggregate) error

	// GetByID loads the booking with its students.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)

	// UpdateStatus persists a status change. The transition itself is
	// validated by the service against the transition table.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error

	// ListStalePending returns pending bookings older than the cutoff whose
	// payment record failed, or that have no payment record at all (process
	// died between the persist and outcome transactions).
	ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]uuid.UUID, error)
}
