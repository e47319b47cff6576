package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"bookings-backend/internal/domains/booking/model"
)

func TestCreateAggregateRequiresStudent(t *testing.T) {
	repo := NewPostgresRepository(nil)

	leadID := uuid.New()
	agg := &Aggregate{
		Booking: &model.Booking{
			ID:          uuid.New(),
			LeadID:      &leadID,
			ProductType: model.ProductBirthdayParty,
			Status:      model.StatusPending,
		},
	}

	// Must fail before any statement runs, so no database is needed.
	err := repo.CreateAggregate(context.Background(), agg)
	assert.ErrorIs(t, err, model.ErrNoStudents)
}
