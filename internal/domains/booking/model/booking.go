package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductType discriminates the three activity products a booking can be for.
type ProductType string

const (
	ProductBirthdayParty ProductType = "birthday_party"
	ProductOneToOne      ProductType = "one_to_one"
	ProductHolidayCamp   ProductType = "holiday_camp"
)

func (p ProductType) IsValid() bool {
	switch p {
	case ProductBirthdayParty, ProductOneToOne, ProductHolidayCamp:
		return true
	}
	return false
}

// Status of a booking, with an explicit transition table. A booking starts
// pending and becomes active only after a successful charge; a failed charge
// leaves it pending for manual reconciliation.
type Status string

const (
	StatusPending     Status = "pending"
	StatusActive      Status = "active"
	StatusCancelled   Status = "cancelled"
	StatusWaitingList Status = "waiting_list"
)

// allowedTransitions: pending to active, pending to cancelled, active to cancelled,
// cancelled to active (renewal), waiting_list to active (promotion when a seat
// frees up), waiting_list to cancelled.
var allowedTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusActive:    true,
		StatusCancelled: true,
	},
	StatusActive: {
		StatusCancelled: true,
	},
	StatusCancelled: {
		StatusActive: true,
	},
	StatusWaitingList: {
		StatusActive:    true,
		StatusCancelled: true,
	},
}

// CanTransitionTo reports whether moving from s to target is legal.
func (s Status) CanTransitionTo(target Status) bool {
	return allowedTransitions[s][target]
}

// ProductConfig is the capability descriptor that parameterizes the single
// booking orchestrator per product: the discount target tag and whether the
// product is backed by a finite class schedule.
type ProductConfig struct {
	Type           ProductType
	DiscountTarget string
	HasCapacity    bool
}

var (
	BirthdayPartyProduct = ProductConfig{
		Type:           ProductBirthdayParty,
		DiscountTarget: string(ProductBirthdayParty),
	}
	OneToOneProduct = ProductConfig{
		Type:           ProductOneToOne,
		DiscountTarget: string(ProductOneToOne),
	}
	HolidayCampProduct = ProductConfig{
		Type:           ProductHolidayCamp,
		DiscountTarget: string(ProductHolidayCamp),
		HasCapacity:    true,
	}
)

// Booking is the aggregate root for a purchased or pending session/camp slot.
type Booking struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	LeadID      *uuid.UUID  `json:"lead_id,omitempty" db:"lead_id"`
	ProductType ProductType `json:"product_type" db:"product_type"`
	Status      Status      `json:"status" db:"status"`

	PlanID          *uuid.UUID `json:"plan_id,omitempty" db:"plan_id"`
	DiscountID      *uuid.UUID `json:"discount_id,omitempty" db:"discount_id"`
	VenueID         *uuid.UUID `json:"venue_id,omitempty" db:"venue_id"`
	ClassScheduleID *uuid.UUID `json:"class_schedule_id,omitempty" db:"class_schedule_id"`

	Students []Student `json:"students,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SeatCount is the number of seats this booking occupies in a class.
func (b *Booking) SeatCount() int {
	return len(b.Students)
}

// Student belongs to exactly one booking. The first student is the anchor
// the parent and emergency records attach to, even when several students are
// booked.
type Student struct {
	ID          uuid.UUID `json:"id" db:"id"`
	BookingID   uuid.UUID `json:"booking_id" db:"booking_id"`
	FirstName   string    `json:"first_name" db:"first_name"`
	LastName    string    `json:"last_name" db:"last_name"`
	DateOfBirth time.Time `json:"date_of_birth" db:"date_of_birth"`
	Age         int       `json:"age" db:"age"`
	Gender      string    `json:"gender" db:"gender"`
	MedicalInfo *string   `json:"medical_info,omitempty" db:"medical_info"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Parent is attached to a student; a booking flow can carry several.
type Parent struct {
	ID              uuid.UUID `json:"id" db:"id"`
	StudentID       uuid.UUID `json:"student_id" db:"student_id"`
	FirstName       string    `json:"first_name" db:"first_name"`
	LastName        string    `json:"last_name" db:"last_name"`
	Email           string    `json:"email" db:"email"`
	Phone           string    `json:"phone" db:"phone"`
	RelationToChild string    `json:"relation_to_child" db:"relation_to_child"`
	HowHeard        string    `json:"how_heard" db:"how_heard"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// EmergencyContact: at most one stored per booking flow; further contacts
// arrive through later update operations.
type EmergencyContact struct {
	ID        uuid.UUID `json:"id" db:"id"`
	StudentID uuid.UUID `json:"student_id" db:"student_id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Phone     string    `json:"phone" db:"phone"`
	Relation  string    `json:"relation" db:"relation"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
