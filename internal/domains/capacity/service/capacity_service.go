package service

import (
	"context"

	"github.com/google/uuid"

	"bookings-backend/internal/domains/capacity/model"
	"bookings-backend/internal/domains/capacity/repository"
)

type ServiceInterface interface {
	// CheckCapacity fails with ErrInsufficientCapacity when the class cannot
	// seat the requested count. Runs before any charge is attempted.
	CheckCapacity(ctx context.Context, classID uuid.UUID, seats int) error

	// CheckFull is the waiting-list precondition: the class must have zero
	// seats left, otherwise ErrCapacityStillAvailable.
	CheckFull(ctx context.Context, classID uuid.UUID) error

	// Decrement takes seats after a successful charge.
	Decrement(ctx context.Context, classID uuid.UUID, seats int) error

	// Restore returns seats on cancellation.
	Restore(ctx context.Context, classID uuid.UUID, seats int) error
}

type CapacityService struct {
	repo repository.CapacityRepository
}

func NewCapacityService(repo repository.CapacityRepository) ServiceInterface {
	return &CapacityService{repo: repo}
}

func (s *CapacityService) CheckCapacity(ctx context.Context, classID uuid.UUID, seats int) error {
	if seats <= 0 {
		return model.ErrInvalidSeatCount
	}

	remaining, err := s.repo.RemainingSeats(ctx, classID)
	if err != nil {
		return err
	}
	if seats > remaining {
		return model.ErrInsufficientCapacity
	}
	return nil
}

func (s *CapacityService) CheckFull(ctx context.Context, classID uuid.UUID) error {
	remaining, err := s.repo.RemainingSeats(ctx, classID)
	if err != nil {
		return err
	}
	if remaining > 0 {
		return model.ErrCapacityStillAvailable
	}
	return nil
}

func (s *CapacityService) Decrement(ctx context.Context, classID uuid.UUID, seats int) error {
	if seats <= 0 {
		return model.ErrInvalidSeatCount
	}
	return s.repo.Decrement(ctx, classID, seats)
}

func (s *CapacityService) Restore(ctx context.Context, classID uuid.UUID, seats int) error {
	if seats <= 0 {
		return model.ErrInvalidSeatCount
	}
	return s.repo.Restore(ctx, classID, seats)
}
