package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrClassNotFound          = errors.New("class schedule not found")
	ErrInsufficientCapacity   = errors.New("not enough seats remaining for this class")
	ErrCapacityStillAvailable = errors.New("class still has seats; waiting list not available")
	ErrInvalidSeatCount       = errors.New("seat count must be greater than zero")
)

// ClassSchedule is a scheduled holiday-camp class with a finite seat pool.
// Capacity is the number of seats remaining, not the original size.
type ClassSchedule struct {
	ID        uuid.UUID `json:"id" db:"id"`
	VenueID   uuid.UUID `json:"venue_id" db:"venue_id"`
	Name      string    `json:"name" db:"name"`
	StartsOn  time.Time `json:"starts_on" db:"starts_on"`
	EndsOn    time.Time `json:"ends_on" db:"ends_on"`
	Capacity  int       `json:"capacity" db:"capacity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
