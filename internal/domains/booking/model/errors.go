package model

import "errors"

var (
	ErrDuplicateBooking        = errors.New("lead already has a booking")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrInvalidStatusTransition = errors.New("illegal booking status transition")
	ErrClassScheduleRequired   = errors.New("class schedule is required for this product")
	ErrInvalidProductType      = errors.New("invalid product type")
	ErrNoStudents              = errors.New("booking must have at least one student")
)
